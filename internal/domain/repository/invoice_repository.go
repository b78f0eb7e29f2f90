package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y detalles.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateDetail(ctx context.Context, detail *entity.InvoiceDetail) error
	// GetByID devuelve (nil, nil) si la factura aún no es visible o es de otra empresa.
	GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error)
	GetDetailsByInvoiceID(ctx context.Context, companyID, invoiceID string) ([]*entity.InvoiceDetail, error)
	// SetFulfillmentLink escribe shipment_id o receipt_id según kind.
	SetFulfillmentLink(ctx context.Context, companyID, invoiceID, kind, fulfillmentID string) error
}
