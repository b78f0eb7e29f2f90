package inventory

import (
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SignedDelta devuelve el cambio con signo que aplica un movimiento sobre el stock.
// IN y RETURN suman, OUT resta; ADJUSTMENT usa direction (+1 / -1).
func SignedDelta(movType string, quantity decimal.Decimal, direction int) (decimal.Decimal, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	switch movType {
	case entity.MovementTypeIN, entity.MovementTypeRETURN:
		return quantity, nil
	case entity.MovementTypeOUT:
		return quantity.Neg(), nil
	case entity.MovementTypeADJUSTMENT:
		switch direction {
		case entity.DirectionIncrease:
			return quantity, nil
		case entity.DirectionDecrease:
			return quantity.Neg(), nil
		}
		return decimal.Zero, domain.ErrInvalidInput
	}
	return decimal.Zero, domain.ErrInvalidMovementType
}

// Apply calcula el nuevo stock. Rechaza (no recorta) cualquier resultado negativo.
func Apply(previous decimal.Decimal, movType string, quantity decimal.Decimal, direction int) (decimal.Decimal, error) {
	delta, err := SignedDelta(movType, quantity, direction)
	if err != nil {
		return decimal.Zero, err
	}
	next := previous.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, domain.ErrNegativeStock
	}
	return next, nil
}

// VerifyRecord comprueba NewStock == PreviousStock + delta para una entrada ya persistida.
func VerifyRecord(m *entity.StockMovement) error {
	delta, err := SignedDelta(m.Type, m.Quantity, m.Direction)
	if err != nil {
		return fmt.Errorf("movimiento %s: %w", m.ID, err)
	}
	if !m.PreviousStock.Add(delta).Equal(m.NewStock) {
		return fmt.Errorf("movimiento %s: previo %s + %s != nuevo %s",
			m.ID, m.PreviousStock, delta, m.NewStock)
	}
	return nil
}

// Replay reconstruye el stock aplicando los deltas en orden de creación a partir de initial.
// Usa solo Type/Quantity/Direction: PreviousStock/NewStock no se consideran fuente.
func Replay(initial decimal.Decimal, movements []*entity.StockMovement) (decimal.Decimal, error) {
	stock := initial
	for _, m := range movements {
		delta, err := SignedDelta(m.Type, m.Quantity, m.Direction)
		if err != nil {
			return decimal.Zero, fmt.Errorf("replay movimiento %s: %w", m.ID, err)
		}
		stock = stock.Add(delta)
	}
	return stock, nil
}
