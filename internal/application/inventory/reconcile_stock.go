package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// reconcileParallelism productos reconciliados en paralelo por ReconcileCompany.
const reconcileParallelism = 4

// ReconcileReport resultado de reproducir el ledger de un producto.
type ReconcileReport struct {
	ProductID     string
	RecordedStock decimal.Decimal // stock guardado en products
	ReplayedStock decimal.Decimal // stock reconstruido desde el ledger
	Drift         decimal.Decimal // RecordedStock - ReplayedStock
	Movements     int
	Repaired      bool
}

// InSync indica si el producto coincide con su ledger.
func (r *ReconcileReport) InSync() bool {
	return r.Drift.IsZero()
}

// ReconcileStockUseCase reconstruye el stock de un producto a partir del ledger
// y, si se pide, corrige products.stock. El ledger es la fuente de verdad.
type ReconcileStockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	log         zerolog.Logger
}

// NewReconcileStockUseCase construye el caso de uso.
func NewReconcileStockUseCase(txRunner TxRunner, productRepo repository.ProductRepository, log zerolog.Logger) *ReconcileStockUseCase {
	return &ReconcileStockUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		log:         log.With().Str("component", "stock_reconcile").Logger(),
	}
}

// Reconcile reproduce el ledger desde 0 con la fila bloqueada y compara contra products.stock.
func (uc *ReconcileStockUseCase) Reconcile(ctx context.Context, companyID, productID string, repair bool) (*ReconcileReport, error) {
	if companyID == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	var report *ReconcileReport
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, companyID, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		movs, err := movRepo.ListAllByProduct(ctx, companyID, productID)
		if err != nil {
			return err
		}
		replayed, err := inventory.Replay(decimal.Zero, movs)
		if err != nil {
			return err
		}
		report = &ReconcileReport{
			ProductID:     productID,
			RecordedStock: product.Stock,
			ReplayedStock: replayed,
			Drift:         product.Stock.Sub(replayed),
			Movements:     len(movs),
		}
		if report.InSync() || !repair {
			return nil
		}
		if replayed.IsNegative() {
			return fmt.Errorf("producto %s: %w (replay %s)", productID, domain.ErrNegativeStock, replayed)
		}
		if err := productRepo.UpdateStock(ctx, companyID, productID, replayed); err != nil {
			return err
		}
		report.Repaired = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !report.InSync() {
		uc.log.Warn().
			Str("company_id", companyID).
			Str("product_id", productID).
			Str("recorded", report.RecordedStock.String()).
			Str("replayed", report.ReplayedStock.String()).
			Bool("repaired", report.Repaired).
			Msg("stock desalineado con el ledger")
	}
	return report, nil
}

// ReconcileCompany reconcilia todos los productos de la empresa.
func (uc *ReconcileStockUseCase) ReconcileCompany(ctx context.Context, companyID string, repair bool) ([]*ReconcileReport, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	ids, err := uc.productRepo.ListIDsByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	reports := make([]*ReconcileReport, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reconcileParallelism)
	for i, id := range ids {
		g.Go(func() error {
			rep, err := uc.Reconcile(gctx, companyID, id, repair)
			if err != nil {
				return fmt.Errorf("reconciliar %s: %w", id, err)
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
