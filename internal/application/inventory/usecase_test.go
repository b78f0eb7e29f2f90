package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
)

const (
	companyA = "company-a"
	companyB = "company-b"
	actorID  = "user-1"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newProduct(t *testing.T, s *memory.Store, companyID string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		SKU:       "SKU-" + uuid.New().String()[:8],
		Name:      "Producto",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, s.Products().Create(context.Background(), p))
	return p
}

func newRecorder(s *memory.Store) *inventory.RecordMovementUseCase {
	return inventory.NewRecordMovementUseCase(s, s.StockMovements(), zerolog.Nop())
}

func record(t *testing.T, uc *inventory.RecordMovementUseCase, productID, typ string, qty int64, dir int) *entity.StockMovement {
	t.Helper()
	m, err := uc.RecordMovement(context.Background(), inventory.MovementInputDTO{
		CompanyID: companyA,
		ActorID:   actorID,
		ProductID: productID,
		Type:      typ,
		Quantity:  dec(qty),
		Direction: dir,
	})
	require.NoError(t, err)
	return m
}

func stockOf(t *testing.T, s *memory.Store, companyID, productID string) decimal.Decimal {
	t.Helper()
	p, err := s.Products().GetByID(context.Background(), companyID, productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement
// ──────────────────────────────────────────────────────────────────────────────

// OUT 4 sobre stock 10: entrada previo 10 / nuevo 6 y producto en 6.
func TestRecordMovement_OutUpdatesLedgerAndProduct(t *testing.T) {
	s := memory.New()
	uc := newRecorder(s)
	p := newProduct(t, s, companyA)
	record(t, uc, p.ID, entity.MovementTypeIN, 10, 0)

	m := record(t, uc, p.ID, entity.MovementTypeOUT, 4, 0)

	assert.True(t, m.PreviousStock.Equal(dec(10)))
	assert.True(t, m.NewStock.Equal(dec(6)))
	assert.Equal(t, entity.DirectionDecrease, m.Direction)
	assert.Equal(t, int64(2), m.Sequence)
	assert.True(t, stockOf(t, s, companyA, p.ID).Equal(dec(6)))
}

// Cantidad -1: ErrInvalidQuantity, sin entrada y sin cambio de stock.
func TestRecordMovement_NegativeQuantityRejected(t *testing.T) {
	s := memory.New()
	uc := newRecorder(s)
	p := newProduct(t, s, companyA)
	record(t, uc, p.ID, entity.MovementTypeIN, 5, 0)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInputDTO{
		CompanyID: companyA, ProductID: p.ID, Type: entity.MovementTypeIN, Quantity: dec(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	list, err := uc.ListMovements(context.Background(), companyA, p.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.True(t, stockOf(t, s, companyA, p.ID).Equal(dec(5)))
}

func TestRecordMovement_NegativeStockRejected(t *testing.T) {
	s := memory.New()
	uc := newRecorder(s)
	p := newProduct(t, s, companyA)
	record(t, uc, p.ID, entity.MovementTypeIN, 3, 0)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInputDTO{
		CompanyID: companyA, ProductID: p.ID, Type: entity.MovementTypeADJUSTMENT,
		Quantity: dec(5), Direction: entity.DirectionDecrease,
	})
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.True(t, stockOf(t, s, companyA, p.ID).Equal(dec(3)))
}

func TestRecordMovement_Validation(t *testing.T) {
	s := memory.New()
	uc := newRecorder(s)
	p := newProduct(t, s, companyA)

	cases := []struct {
		name string
		in   inventory.MovementInputDTO
		want error
	}{
		{"tipo desconocido", inventory.MovementInputDTO{CompanyID: companyA, ProductID: p.ID, Type: "TRANSFER", Quantity: dec(1)}, domain.ErrInvalidMovementType},
		{"cantidad cero", inventory.MovementInputDTO{CompanyID: companyA, ProductID: p.ID, Type: entity.MovementTypeIN, Quantity: decimal.Zero}, domain.ErrInvalidQuantity},
		{"ajuste sin dirección", inventory.MovementInputDTO{CompanyID: companyA, ProductID: p.ID, Type: entity.MovementTypeADJUSTMENT, Quantity: dec(1)}, domain.ErrInvalidInput},
		{"sin producto", inventory.MovementInputDTO{CompanyID: companyA, Type: entity.MovementTypeIN, Quantity: dec(1)}, domain.ErrInvalidInput},
		{"otra empresa", inventory.MovementInputDTO{CompanyID: companyB, ProductID: p.ID, Type: entity.MovementTypeIN, Quantity: dec(1)}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RecordMovement(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRecordMovementFromRequest_ParsesDirection(t *testing.T) {
	s := memory.New()
	uc := newRecorder(s)
	p := newProduct(t, s, companyA)
	record(t, uc, p.ID, entity.MovementTypeIN, 10, 0)

	out, err := uc.RecordMovementFromRequest(context.Background(), companyA, actorID, dto.RecordMovementRequest{
		ProductID: p.ID, Type: entity.MovementTypeADJUSTMENT, Quantity: dec(2), Direction: "decrease", Reason: "conteo",
	})
	require.NoError(t, err)
	assert.True(t, out.NewStock.Equal(dec(8)))
	assert.Equal(t, "conteo", out.Reason)
	assert.Equal(t, actorID, out.ActorID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger: orden y replay
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovements_NewestFirst(t *testing.T) {
	s := memory.New()
	uc := newRecorder(s)
	p := newProduct(t, s, companyA)
	record(t, uc, p.ID, entity.MovementTypeIN, 10, 0)
	record(t, uc, p.ID, entity.MovementTypeOUT, 2, 0)
	record(t, uc, p.ID, entity.MovementTypeRETURN, 1, 0)

	list, err := uc.ListMovements(context.Background(), companyA, p.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.MovementTypeRETURN, list[0].Type)
	assert.Equal(t, entity.MovementTypeOUT, list[1].Type)

	other, err := uc.ListMovements(context.Background(), companyB, p.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestLedger_ReplayReproducesStock(t *testing.T) {
	s := memory.New()
	uc := newRecorder(s)
	p := newProduct(t, s, companyA)
	record(t, uc, p.ID, entity.MovementTypeIN, 20, 0)
	record(t, uc, p.ID, entity.MovementTypeOUT, 7, 0)
	record(t, uc, p.ID, entity.MovementTypeADJUSTMENT, 3, entity.DirectionIncrease)
	record(t, uc, p.ID, entity.MovementTypeRETURN, 2, 0)
	record(t, uc, p.ID, entity.MovementTypeADJUSTMENT, 5, entity.DirectionDecrease)

	all, err := s.StockMovements().ListAllByProduct(context.Background(), companyA, p.ID)
	require.NoError(t, err)
	for _, m := range all {
		assert.NoError(t, domaininv.VerifyRecord(m))
	}
	replayed, err := domaininv.Replay(decimal.Zero, all)
	require.NoError(t, err)
	assert.True(t, replayed.Equal(stockOf(t, s, companyA, p.ID)), "replay %s", replayed)
	assert.True(t, replayed.Equal(dec(13)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconcile
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_DetectsAndRepairsDrift(t *testing.T) {
	s := memory.New()
	uc := newRecorder(s)
	rec := inventory.NewReconcileStockUseCase(s, s.Products(), zerolog.Nop())
	p := newProduct(t, s, companyA)
	record(t, uc, p.ID, entity.MovementTypeIN, 10, 0)
	record(t, uc, p.ID, entity.MovementTypeOUT, 4, 0)

	// escritura fuera del ledger
	require.NoError(t, s.Products().UpdateStock(context.Background(), companyA, p.ID, dec(9)))

	report, err := rec.Reconcile(context.Background(), companyA, p.ID, false)
	require.NoError(t, err)
	assert.False(t, report.InSync())
	assert.True(t, report.Drift.Equal(dec(3)))
	assert.False(t, report.Repaired)
	assert.True(t, stockOf(t, s, companyA, p.ID).Equal(dec(9)))

	report, err = rec.Reconcile(context.Background(), companyA, p.ID, true)
	require.NoError(t, err)
	assert.True(t, report.Repaired)
	assert.True(t, stockOf(t, s, companyA, p.ID).Equal(dec(6)))
}

func TestReconcileCompany_AllProducts(t *testing.T) {
	s := memory.New()
	uc := newRecorder(s)
	rec := inventory.NewReconcileStockUseCase(s, s.Products(), zerolog.Nop())
	for i := 0; i < 6; i++ {
		p := newProduct(t, s, companyA)
		record(t, uc, p.ID, entity.MovementTypeIN, int64(i+1), 0)
	}
	newProduct(t, s, companyB)

	reports, err := rec.ReconcileCompany(context.Background(), companyA, false)
	require.NoError(t, err)
	require.Len(t, reports, 6)
	for _, r := range reports {
		assert.True(t, r.InSync(), r.ProductID)
		assert.Equal(t, 1, r.Movements)
	}
}

func TestReconcile_UnknownProduct(t *testing.T) {
	s := memory.New()
	rec := inventory.NewReconcileStockUseCase(s, s.Products(), zerolog.Nop())
	_, err := rec.Reconcile(context.Background(), companyA, uuid.New().String(), false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
