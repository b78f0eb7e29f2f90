package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, company_id, product_id, type, quantity, direction, previous_stock, new_stock,
	reason, notes, actor_id, sequence, created_at`

// StockMovementRepo ledger de stock sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta la entrada con sequence = máximo del producto + 1.
// Se llama con la fila del producto bloqueada; UNIQUE(product_id, sequence) cubre el resto.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		       COALESCE(MAX(sequence), 0) + 1, $12
		FROM stock_movements WHERE product_id = $3
		RETURNING sequence`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.CompanyID, m.ProductID, m.Type, m.Quantity, m.Direction,
		m.PreviousStock, m.NewStock, nullIfEmpty(m.Reason), nullIfEmpty(m.Notes),
		nullIfEmpty(m.ActorID), m.CreatedAt,
	).Scan(&m.Sequence)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct movimientos más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, companyID, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE company_id = $1 AND product_id = $2
		ORDER BY sequence DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return scanMovements(rows)
}

// ListAllByProduct todos los movimientos en orden de sequence (para replay).
func (r *StockMovementRepo) ListAllByProduct(ctx context.Context, companyID, productID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE company_id = $1 AND product_id = $2
		ORDER BY sequence ASC`
	rows, err := r.q.Query(ctx, query, companyID, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var reason, notes, actorID *string
		if err := rows.Scan(
			&m.ID, &m.CompanyID, &m.ProductID, &m.Type, &m.Quantity, &m.Direction,
			&m.PreviousStock, &m.NewStock, &reason, &notes, &actorID, &m.Sequence, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.Reason = derefString(reason)
		m.Notes = derefString(notes)
		m.ActorID = derefString(actorID)
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock movements: %w", err)
	}
	return list, nil
}
