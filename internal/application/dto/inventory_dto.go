package dto

import (
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/inventory/stock-movements.
// Direction solo aplica a ADJUSTMENT: "increase" | "decrease".
type RecordMovementRequest struct {
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Direction string          `json:"direction,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// StockMovementResponse entrada del ledger en respuestas.
type StockMovementResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	Direction     int             `json:"direction"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	Reason        string          `json:"reason,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	ActorID       string          `json:"actor_id,omitempty"`
	Sequence      int64           `json:"sequence"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToStockMovementResponse mapea la entidad a la respuesta.
func ToStockMovementResponse(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		Direction:     m.Direction,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		Notes:         m.Notes,
		ActorID:       m.ActorID,
		Sequence:      m.Sequence,
		CreatedAt:     m.CreatedAt,
	}
}

// StockMovementListResponse página del ledger (más reciente primero).
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ReleaseCounterRequest body para POST /api/inventory/products/:id/release.
// Counter: "reserved" | "incoming".
type ReleaseCounterRequest struct {
	Counter  string          `json:"counter"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ProductCountersResponse contadores de un producto.
type ProductCountersResponse struct {
	ProductID        string          `json:"product_id"`
	Stock            decimal.Decimal `json:"stock"`
	ReservedQuantity decimal.Decimal `json:"reserved_quantity"`
	IncomingQuantity decimal.Decimal `json:"incoming_quantity"`
	Available        decimal.Decimal `json:"available"`
}

// ToProductCountersResponse mapea los contadores.
func ToProductCountersResponse(c *entity.ProductCounters) ProductCountersResponse {
	return ProductCountersResponse{
		ProductID:        c.ProductID,
		Stock:            c.Stock,
		ReservedQuantity: c.ReservedQuantity,
		IncomingQuantity: c.IncomingQuantity,
		Available:        c.Stock.Sub(c.ReservedQuantity),
	}
}

// ReconcileResponse resultado de reproducir el ledger.
type ReconcileResponse struct {
	ProductID     string          `json:"product_id"`
	RecordedStock decimal.Decimal `json:"recorded_stock"`
	ReplayedStock decimal.Decimal `json:"replayed_stock"`
	Drift         decimal.Decimal `json:"drift"`
	Movements     int             `json:"movements"`
	InSync        bool            `json:"in_sync"`
	Repaired      bool            `json:"repaired"`
}
