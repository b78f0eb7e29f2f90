package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// FulfillmentRepository puerto para despachos y recepciones (tablas con UNIQUE(invoice_id)).
type FulfillmentRepository interface {
	// InsertOrGet inserta el registro o, si ya existe uno para la factura, lo devuelve.
	// created indica si la fila la creó esta llamada.
	InsertOrGet(ctx context.Context, record *entity.FulfillmentRecord) (stored *entity.FulfillmentRecord, created bool, err error)
	GetByInvoice(ctx context.Context, companyID, kind, invoiceID string) (*entity.FulfillmentRecord, error)
}
