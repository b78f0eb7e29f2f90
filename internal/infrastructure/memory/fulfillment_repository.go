package memory

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.FulfillmentRepository = (*FulfillmentRepo)(nil)

// FulfillmentRepo un registro por factura y tipo, igual que UNIQUE(invoice_id).
type FulfillmentRepo struct {
	s *Store
}

func (r *FulfillmentRepo) table(kind string) (map[string]entity.FulfillmentRecord, error) {
	switch kind {
	case entity.FulfillmentKindOutbound:
		return r.s.shipments, nil
	case entity.FulfillmentKindInbound:
		return r.s.receipts, nil
	}
	return nil, domain.ErrInvalidInput
}

func (r *FulfillmentRepo) InsertOrGet(_ context.Context, rec *entity.FulfillmentRecord) (*entity.FulfillmentRecord, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, err := r.table(rec.Kind)
	if err != nil {
		return nil, false, err
	}
	if existing, ok := t[rec.InvoiceID]; ok {
		if existing.CompanyID != rec.CompanyID {
			return nil, false, domain.ErrDuplicateFulfillment
		}
		return &existing, false, nil
	}
	t[rec.InvoiceID] = *rec
	stored := *rec
	return &stored, true, nil
}

func (r *FulfillmentRepo) GetByInvoice(_ context.Context, companyID, kind, invoiceID string) (*entity.FulfillmentRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, err := r.table(kind)
	if err != nil {
		return nil, err
	}
	rec, ok := t[invoiceID]
	if !ok || rec.CompanyID != companyID {
		return nil, nil
	}
	return &rec, nil
}
