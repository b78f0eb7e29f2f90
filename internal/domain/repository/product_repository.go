package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Toda lectura y escritura va acotada por companyID (tenant).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve (nil, nil) si no existe o pertenece a otra empresa.
	GetByID(ctx context.Context, companyID, id string) (*entity.Product, error)
	// GetForUpdate igual que GetByID pero bloquea la fila (SELECT FOR UPDATE) dentro de la tx.
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error)
	ListIDsByCompany(ctx context.Context, companyID string) ([]string, error)
	// UpdateStock escribe el stock calculado por el ledger.
	UpdateStock(ctx context.Context, companyID, id string, stock decimal.Decimal) error

	// Incrementos atómicos: una sola sentencia, nunca leer-modificar-escribir.
	IncrementReserved(ctx context.Context, companyID, id string, delta decimal.Decimal) (*entity.ProductCounters, error)
	IncrementIncoming(ctx context.Context, companyID, id string, delta decimal.Decimal) (*entity.ProductCounters, error)
	// Decrementos atómicos con guarda (contador >= qty); domain.ErrCounterUnderflow si no alcanza.
	ReleaseReserved(ctx context.Context, companyID, id string, qty decimal.Decimal) (*entity.ProductCounters, error)
	ReleaseIncoming(ctx context.Context, companyID, id string, qty decimal.Decimal) (*entity.ProductCounters, error)
}
