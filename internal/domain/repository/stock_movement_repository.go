package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// StockMovementRepository puerto del ledger de stock (solo inserción y lectura).
type StockMovementRepository interface {
	// Create persiste la entrada y asigna Sequence (siguiente valor por producto).
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct devuelve los movimientos más recientes primero.
	ListByProduct(ctx context.Context, companyID, productID string, limit, offset int) ([]*entity.StockMovement, error)
	// ListAllByProduct devuelve todos los movimientos en orden de creación (para replay).
	ListAllByProduct(ctx context.Context, companyID, productID string) ([]*entity.StockMovement, error)
}
