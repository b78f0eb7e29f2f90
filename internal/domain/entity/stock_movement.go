package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger de stock.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste (+/-)
	MovementTypeRETURN     = "RETURN"     // devolución de cliente
)

// Sentido del movimiento. IN y RETURN siempre suman, OUT siempre resta;
// ADJUSTMENT lleva el signo explícito.
const (
	DirectionIncrease = 1
	DirectionDecrease = -1
)

// StockMovement entrada inmutable del ledger. Quantity es la magnitud (> 0).
// NewStock = PreviousStock + delta con signo.
type StockMovement struct {
	ID            string
	CompanyID     string
	ProductID     string
	Type          string
	Quantity      decimal.Decimal
	Direction     int
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	Reason        string
	Notes         string
	ActorID       string
	Sequence      int64 // orden por producto, asignado al persistir
	CreatedAt     time.Time
}

// IsValidMovementType indica si t es uno de los cuatro tipos admitidos.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT, MovementTypeRETURN:
		return true
	}
	return false
}
