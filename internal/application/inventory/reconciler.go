package inventory

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Contadores que puede liberar Release.
const (
	CounterReserved = "reserved"
	CounterIncoming = "incoming"
)

// QuantityReconciler ajusta reserved_quantity e incoming_quantity a partir de líneas de factura.
// Cada llamada es un incremento atómico en el almacén; no deduplica (eso es del caller).
type QuantityReconciler struct {
	productRepo repository.ProductRepository
}

// NewQuantityReconciler construye el reconciliador.
func NewQuantityReconciler(productRepo repository.ProductRepository) *QuantityReconciler {
	return &QuantityReconciler{productRepo: productRepo}
}

// ReserveForSale suma qty a reserved_quantity (compromiso de despacho).
func (r *QuantityReconciler) ReserveForSale(ctx context.Context, companyID, productID string, qty decimal.Decimal) (*entity.ProductCounters, error) {
	if err := checkCounterInput(companyID, productID, qty); err != nil {
		return nil, err
	}
	return r.productRepo.IncrementReserved(ctx, companyID, productID, qty)
}

// ReserveForPurchase suma qty a incoming_quantity (mercancía por recibir).
func (r *QuantityReconciler) ReserveForPurchase(ctx context.Context, companyID, productID string, qty decimal.Decimal) (*entity.ProductCounters, error) {
	if err := checkCounterInput(companyID, productID, qty); err != nil {
		return nil, err
	}
	return r.productRepo.IncrementIncoming(ctx, companyID, productID, qty)
}

// ReleaseReserved resta qty de reserved_quantity (despacho completado o cancelado).
func (r *QuantityReconciler) ReleaseReserved(ctx context.Context, companyID, productID string, qty decimal.Decimal) (*entity.ProductCounters, error) {
	if err := checkCounterInput(companyID, productID, qty); err != nil {
		return nil, err
	}
	return r.productRepo.ReleaseReserved(ctx, companyID, productID, qty)
}

// ReleaseIncoming resta qty de incoming_quantity (recepción completada o cancelada).
func (r *QuantityReconciler) ReleaseIncoming(ctx context.Context, companyID, productID string, qty decimal.Decimal) (*entity.ProductCounters, error) {
	if err := checkCounterInput(companyID, productID, qty); err != nil {
		return nil, err
	}
	return r.productRepo.ReleaseIncoming(ctx, companyID, productID, qty)
}

// Release despacha a ReleaseReserved o ReleaseIncoming según counter.
func (r *QuantityReconciler) Release(ctx context.Context, companyID, productID, counter string, qty decimal.Decimal) (*entity.ProductCounters, error) {
	switch counter {
	case CounterReserved:
		return r.ReleaseReserved(ctx, companyID, productID, qty)
	case CounterIncoming:
		return r.ReleaseIncoming(ctx, companyID, productID, qty)
	}
	return nil, domain.ErrInvalidInput
}

func checkCounterInput(companyID, productID string, qty decimal.Decimal) error {
	if companyID == "" || productID == "" {
		return domain.ErrInvalidInput
	}
	if !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidQuantity
	}
	return nil
}
