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

var _ repository.FulfillmentRepository = (*FulfillmentRepo)(nil)

// FulfillmentRepo despachos (outbound_shipments) y recepciones (inbound_receipts).
// Ambas tablas tienen UNIQUE(invoice_id).
type FulfillmentRepo struct {
	q Querier
}

// NewFulfillmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFulfillmentRepository(q Querier) *FulfillmentRepo {
	return &FulfillmentRepo{q: q}
}

func fulfillmentTable(kind string) (string, error) {
	switch kind {
	case entity.FulfillmentKindOutbound:
		return "outbound_shipments", nil
	case entity.FulfillmentKindInbound:
		return "inbound_receipts", nil
	}
	return "", domain.ErrInvalidInput
}

// InsertOrGet INSERT ... ON CONFLICT (invoice_id) DO NOTHING; si no insertó, lee la fila ganadora.
func (r *FulfillmentRepo) InsertOrGet(ctx context.Context, rec *entity.FulfillmentRecord) (*entity.FulfillmentRecord, bool, error) {
	table, err := fulfillmentTable(rec.Kind)
	if err != nil {
		return nil, false, err
	}
	query := `
		INSERT INTO ` + table + ` (id, invoice_id, company_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (invoice_id) DO NOTHING
		RETURNING id`
	var id string
	err = r.q.QueryRow(ctx, query, rec.ID, rec.InvoiceID, rec.CompanyID, rec.Status, rec.CreatedAt).Scan(&id)
	if err == nil {
		stored := *rec
		return &stored, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("insert %s: %w", table, err)
	}

	existing, err := r.GetByInvoice(ctx, rec.CompanyID, rec.Kind, rec.InvoiceID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		// la factura ya tiene registro, pero de otra empresa
		return nil, false, domain.ErrDuplicateFulfillment
	}
	return existing, false, nil
}

// GetByInvoice devuelve (nil, nil) si la factura no tiene registro de ese tipo.
func (r *FulfillmentRepo) GetByInvoice(ctx context.Context, companyID, kind, invoiceID string) (*entity.FulfillmentRecord, error) {
	table, err := fulfillmentTable(kind)
	if err != nil {
		return nil, err
	}
	query := `SELECT id, invoice_id, company_id, status, created_at FROM ` + table + `
		WHERE invoice_id = $1 AND company_id = $2`
	rec := entity.FulfillmentRecord{Kind: kind}
	err = r.q.QueryRow(ctx, query, invoiceID, companyID).Scan(
		&rec.ID, &rec.InvoiceID, &rec.CompanyID, &rec.Status, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", table, err)
	}
	return &rec, nil
}
