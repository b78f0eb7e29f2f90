package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, company_id, type, number, total, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.CompanyID, invoice.Type, invoice.Number, invoice.Total,
		nullIfEmpty(invoice.CreatedBy), invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de detalle.
func (r *InvoiceRepo) CreateDetail(ctx context.Context, detail *entity.InvoiceDetail) error {
	query := `
		INSERT INTO invoice_details (id, invoice_id, product_id, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		detail.ID, detail.InvoiceID, detail.ProductID, detail.Quantity, detail.UnitPrice, detail.Total,
	)
	if err != nil {
		return fmt.Errorf("insert invoice detail: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de la factura dentro de la empresa.
func (r *InvoiceRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	query := `
		SELECT id, company_id, type, number, total, shipment_id, receipt_id, created_by, created_at, updated_at
		FROM invoices WHERE id = $1 AND company_id = $2`
	var inv entity.Invoice
	var shipmentID, receiptID, createdBy *string
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&inv.ID, &inv.CompanyID, &inv.Type, &inv.Number, &inv.Total,
		&shipmentID, &receiptID, &createdBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	inv.ShipmentID = derefString(shipmentID)
	inv.ReceiptID = derefString(receiptID)
	inv.CreatedBy = derefString(createdBy)
	return &inv, nil
}

// GetDetailsByInvoiceID devuelve las líneas de una factura de la empresa.
func (r *InvoiceRepo) GetDetailsByInvoiceID(ctx context.Context, companyID, invoiceID string) ([]*entity.InvoiceDetail, error) {
	query := `
		SELECT d.id, d.invoice_id, d.product_id, d.quantity, d.unit_price, d.total
		FROM invoice_details d
		JOIN invoices i ON i.id = d.invoice_id
		WHERE d.invoice_id = $1 AND i.company_id = $2
		ORDER BY d.line_no`
	rows, err := r.q.Query(ctx, query, invoiceID, companyID)
	if err != nil {
		return nil, fmt.Errorf("list invoice details: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceDetail
	for rows.Next() {
		var d entity.InvoiceDetail
		if err := rows.Scan(&d.ID, &d.InvoiceID, &d.ProductID, &d.Quantity, &d.UnitPrice, &d.Total); err != nil {
			return nil, fmt.Errorf("scan invoice detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// SetFulfillmentLink escribe shipment_id o receipt_id según kind.
func (r *InvoiceRepo) SetFulfillmentLink(ctx context.Context, companyID, invoiceID, kind, fulfillmentID string) error {
	var column string
	switch kind {
	case entity.FulfillmentKindOutbound:
		column = "shipment_id"
	case entity.FulfillmentKindInbound:
		column = "receipt_id"
	default:
		return domain.ErrInvalidInput
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE invoices SET `+column+` = $3, updated_at = NOW() WHERE id = $1 AND company_id = $2`,
		invoiceID, companyID, fulfillmentID)
	if err != nil {
		return fmt.Errorf("link invoice fulfillment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
