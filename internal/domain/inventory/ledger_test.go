package inventory_test

import (
	"testing"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestSignedDelta(t *testing.T) {
	cases := []struct {
		name      string
		movType   string
		qty       decimal.Decimal
		direction int
		want      decimal.Decimal
		wantErr   error
	}{
		{"entrada suma", entity.MovementTypeIN, dec(5), 0, dec(5), nil},
		{"devolución suma", entity.MovementTypeRETURN, dec(2), 0, dec(2), nil},
		{"salida resta", entity.MovementTypeOUT, dec(4), 0, dec(-4), nil},
		{"ajuste positivo", entity.MovementTypeADJUSTMENT, dec(3), entity.DirectionIncrease, dec(3), nil},
		{"ajuste negativo", entity.MovementTypeADJUSTMENT, dec(3), entity.DirectionDecrease, dec(-3), nil},
		{"ajuste sin sentido", entity.MovementTypeADJUSTMENT, dec(3), 0, decimal.Zero, domain.ErrInvalidInput},
		{"cantidad cero", entity.MovementTypeIN, dec(0), 0, decimal.Zero, domain.ErrInvalidQuantity},
		{"cantidad negativa", entity.MovementTypeOUT, dec(-1), 0, decimal.Zero, domain.ErrInvalidQuantity},
		{"tipo desconocido", "TRANSFER", dec(1), 0, decimal.Zero, domain.ErrInvalidMovementType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := inventory.SignedDelta(tc.movType, tc.qty, tc.direction)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "esperado %s, obtenido %s", tc.want, got)
		})
	}
}

func TestApply_SalidaDeDiezACuatro(t *testing.T) {
	next, err := inventory.Apply(dec(10), entity.MovementTypeOUT, dec(4), 0)
	require.NoError(t, err)
	assert.True(t, dec(6).Equal(next))
}

func TestApply_RechazaStockNegativo(t *testing.T) {
	_, err := inventory.Apply(dec(3), entity.MovementTypeOUT, dec(4), 0)
	assert.ErrorIs(t, err, domain.ErrNegativeStock)

	_, err = inventory.Apply(dec(3), entity.MovementTypeADJUSTMENT, dec(5), entity.DirectionDecrease)
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
}

func TestVerifyRecord(t *testing.T) {
	ok := &entity.StockMovement{ID: "m1", Type: entity.MovementTypeOUT, Quantity: dec(4), PreviousStock: dec(10), NewStock: dec(6)}
	assert.NoError(t, inventory.VerifyRecord(ok))

	broken := &entity.StockMovement{ID: "m2", Type: entity.MovementTypeIN, Quantity: dec(4), PreviousStock: dec(10), NewStock: dec(13)}
	assert.Error(t, inventory.VerifyRecord(broken))
}

func TestReplay_ReconstruyeStockDesdeCero(t *testing.T) {
	movs := []*entity.StockMovement{
		{ID: "1", Type: entity.MovementTypeIN, Quantity: dec(10)},
		{ID: "2", Type: entity.MovementTypeOUT, Quantity: dec(4)},
		{ID: "3", Type: entity.MovementTypeRETURN, Quantity: dec(1)},
		{ID: "4", Type: entity.MovementTypeADJUSTMENT, Quantity: dec(2), Direction: entity.DirectionDecrease},
	}
	got, err := inventory.Replay(decimal.Zero, movs)
	require.NoError(t, err)
	assert.True(t, dec(5).Equal(got), "obtenido %s", got)
}

func TestReplay_FallaConMovimientoCorrupto(t *testing.T) {
	movs := []*entity.StockMovement{{ID: "x", Type: "BOGUS", Quantity: dec(1)}}
	_, err := inventory.Replay(decimal.Zero, movs)
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
}
