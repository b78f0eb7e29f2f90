package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, sku, name, stock, reserved_quantity, incoming_quantity, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.CompanyID, product.SKU, product.Name,
		product.Stock, product.ReservedQuantity, product.IncomingQuantity,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID dentro de la empresa.
func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND company_id = $2`
	return r.getOne(ctx, query, id, companyID)
}

// GetForUpdate bloquea la fila hasta el fin de la tx. Solo tiene sentido con un Querier tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND company_id = $2 FOR UPDATE`
	return r.getOne(ctx, query, id, companyID)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Name,
		&p.Stock, &p.ReservedQuantity, &p.IncomingQuantity,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListIDsByCompany IDs de productos de la empresa ordenados por SKU.
func (r *ProductRepo) ListIDsByCompany(ctx context.Context, companyID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM products WHERE company_id = $1 ORDER BY sku`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateStock escribe el stock calculado por el ledger.
func (r *ProductRepo) UpdateStock(ctx context.Context, companyID, id string, stock decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET stock = $3, updated_at = NOW() WHERE id = $1 AND company_id = $2`,
		id, companyID, stock)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrNegativeStock
		}
		return fmt.Errorf("update product stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementReserved reserved_quantity += delta en una sola sentencia.
func (r *ProductRepo) IncrementReserved(ctx context.Context, companyID, id string, delta decimal.Decimal) (*entity.ProductCounters, error) {
	return r.adjust(ctx, `
		UPDATE products SET reserved_quantity = reserved_quantity + $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING id, stock, reserved_quantity, incoming_quantity`, companyID, id, delta, false)
}

// IncrementIncoming incoming_quantity += delta en una sola sentencia.
func (r *ProductRepo) IncrementIncoming(ctx context.Context, companyID, id string, delta decimal.Decimal) (*entity.ProductCounters, error) {
	return r.adjust(ctx, `
		UPDATE products SET incoming_quantity = incoming_quantity + $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING id, stock, reserved_quantity, incoming_quantity`, companyID, id, delta, false)
}

// ReleaseReserved reserved_quantity -= qty solo si alcanza.
func (r *ProductRepo) ReleaseReserved(ctx context.Context, companyID, id string, qty decimal.Decimal) (*entity.ProductCounters, error) {
	return r.adjust(ctx, `
		UPDATE products SET reserved_quantity = reserved_quantity - $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND reserved_quantity >= $3
		RETURNING id, stock, reserved_quantity, incoming_quantity`, companyID, id, qty, true)
}

// ReleaseIncoming incoming_quantity -= qty solo si alcanza.
func (r *ProductRepo) ReleaseIncoming(ctx context.Context, companyID, id string, qty decimal.Decimal) (*entity.ProductCounters, error) {
	return r.adjust(ctx, `
		UPDATE products SET incoming_quantity = incoming_quantity - $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND incoming_quantity >= $3
		RETURNING id, stock, reserved_quantity, incoming_quantity`, companyID, id, qty, true)
}

// adjust ejecuta el UPDATE atómico. Sin filas: ErrNotFound, o ErrCounterUnderflow si
// la sentencia tenía guarda y el producto existe.
func (r *ProductRepo) adjust(ctx context.Context, query, companyID, id string, qty decimal.Decimal, guarded bool) (*entity.ProductCounters, error) {
	var c entity.ProductCounters
	err := r.q.QueryRow(ctx, query, id, companyID, qty).Scan(
		&c.ProductID, &c.Stock, &c.ReservedQuantity, &c.IncomingQuantity,
	)
	if err == nil {
		return &c, nil
	}
	if isInvalidText(err) {
		return nil, domain.ErrNotFound
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("adjust product counters: %w", err)
	}
	if !guarded {
		return nil, domain.ErrNotFound
	}
	p, err := r.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrCounterUnderflow
}
