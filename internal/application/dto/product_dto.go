package dto

import (
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// InitialStock se registra como movimiento IN para que el ledger reproduzca el stock.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	InitialStock decimal.Decimal `json:"initial_stock"`
}

// ProductResponse producto con sus contadores.
type ProductResponse struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"company_id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Stock            decimal.Decimal `json:"stock"`
	ReservedQuantity decimal.Decimal `json:"reserved_quantity"`
	IncomingQuantity decimal.Decimal `json:"incoming_quantity"`
	Available        decimal.Decimal `json:"available"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToProductResponse mapea la entidad.
func ToProductResponse(p *entity.Product) *ProductResponse {
	return &ProductResponse{
		ID:               p.ID,
		CompanyID:        p.CompanyID,
		SKU:              p.SKU,
		Name:             p.Name,
		Stock:            p.Stock,
		ReservedQuantity: p.ReservedQuantity,
		IncomingQuantity: p.IncomingQuantity,
		Available:        p.Available(),
		UpdatedAt:        p.UpdatedAt,
	}
}
