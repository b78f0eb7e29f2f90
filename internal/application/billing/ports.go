package billing

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/application/fulfillment"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// BillingTxRunner ejecuta una función dentro de una transacción con repos de productos y facturación.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// Reserver contadores comprometidos por línea de factura (implementado por inventory.QuantityReconciler).
type Reserver interface {
	ReserveForSale(ctx context.Context, companyID, productID string, qty decimal.Decimal) (*entity.ProductCounters, error)
	ReserveForPurchase(ctx context.Context, companyID, productID string, qty decimal.Decimal) (*entity.ProductCounters, error)
}

// FulfillmentEnsurer crea o encuentra el registro de cumplimiento (implementado por fulfillment.Factory).
type FulfillmentEnsurer interface {
	EnsureFulfillmentRecord(ctx context.Context, invoiceID, invoiceType, companyID string) (*fulfillment.Outcome, error)
}
