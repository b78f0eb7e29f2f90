package memory

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo facturas en memoria, con retraso de visibilidad opcional en GetByID.
type InvoiceRepo struct {
	s *Store
}

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[inv.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.invoices {
		if existing.CompanyID == inv.CompanyID && existing.Number == inv.Number {
			return domain.ErrDuplicate
		}
	}
	r.s.invoices[inv.ID] = *inv
	if r.s.visibilityLag > 0 {
		r.s.hiddenReads[inv.ID] = r.s.visibilityLag
	}
	return nil
}

func (r *InvoiceRepo) CreateDetail(_ context.Context, d *entity.InvoiceDetail) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[d.InvoiceID]; !ok {
		return domain.ErrNotFound
	}
	r.s.details[d.InvoiceID] = append(r.s.details[d.InvoiceID], *d)
	return nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, companyID, id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok || inv.CompanyID != companyID {
		return nil, nil
	}
	if n := r.s.hiddenReads[id]; n > 0 {
		r.s.hiddenReads[id] = n - 1
		return nil, nil
	}
	return &inv, nil
}

func (r *InvoiceRepo) GetDetailsByInvoiceID(_ context.Context, companyID, invoiceID string) ([]*entity.InvoiceDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	inv, ok := r.s.invoices[invoiceID]
	if !ok || inv.CompanyID != companyID {
		return nil, nil
	}
	list := r.s.details[invoiceID]
	out := make([]*entity.InvoiceDetail, 0, len(list))
	for i := range list {
		d := list[i]
		out = append(out, &d)
	}
	return out, nil
}

func (r *InvoiceRepo) SetFulfillmentLink(_ context.Context, companyID, invoiceID, kind, fulfillmentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[invoiceID]
	if !ok || inv.CompanyID != companyID {
		return domain.ErrNotFound
	}
	switch kind {
	case entity.FulfillmentKindOutbound:
		inv.ShipmentID = fulfillmentID
	case entity.FulfillmentKindInbound:
		inv.ReceiptID = fulfillmentID
	default:
		return domain.ErrInvalidInput
	}
	inv.UpdatedAt = time.Now()
	r.s.invoices[invoiceID] = inv
	return nil
}
