// Package bootstrap arma repositorios y casos de uso a partir de la configuración.
// Lo comparten cmd/api y cmd/stockctl.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/application/billing"
	"github.com/jhoicas/stockflow-api/internal/application/fulfillment"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/rs/zerolog"
)

// TxRunner transacciones de ledger y de facturación.
type TxRunner interface {
	inventory.TxRunner
	billing.BillingTxRunner
}

// Store repositorios de un mismo backend.
type Store struct {
	Driver       string
	Products     repository.ProductRepository
	Movements    repository.StockMovementRepository
	Invoices     repository.InvoiceRepository
	Fulfillments repository.FulfillmentRepository
	Audit        repository.AuditRepository
	Tx           TxRunner
	close        func()
}

// Close libera el pool si lo hay.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStore abre PostgreSQL o crea el almacén en memoria según STORE_DRIVER.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		return MemoryStore(memory.New()), nil
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:       config.StoreDriverPostgres,
			Products:     postgres.NewProductRepository(pool),
			Movements:    postgres.NewStockMovementRepository(pool),
			Invoices:     postgres.NewInvoiceRepository(pool),
			Fulfillments: postgres.NewFulfillmentRepository(pool),
			Audit:        postgres.NewAuditRepository(pool),
			Tx:           postgres.NewTxRunner(pool),
			close:        pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido: %s", cfg.App.StoreDriver)
}

// MemoryStore envuelve un memory.Store ya creado (los tests lo usan para inspeccionarlo).
func MemoryStore(m *memory.Store) *Store {
	return &Store{
		Driver:       config.StoreDriverMemory,
		Products:     m.Products(),
		Movements:    m.StockMovements(),
		Invoices:     m.Invoices(),
		Fulfillments: m.Fulfillments(),
		Audit:        m.Audit(),
		Tx:           m,
	}
}

// Services casos de uso listos para los handlers y el CLI.
type Services struct {
	Products       *usecase.ProductUseCase
	RecordMovement *inventory.RecordMovementUseCase
	Reconciler     *inventory.QuantityReconciler
	Reconcile      *inventory.ReconcileStockUseCase
	Fulfillment    *fulfillment.Factory
	Invoices       *billing.IngestInvoiceUseCase
}

// NewServices construye los casos de uso sobre el almacén. notifier puede ser nil.
func NewServices(st *Store, notifier fulfillment.Notifier, ingest config.IngestConfig, log zerolog.Logger) *Services {
	recordMovement := inventory.NewRecordMovementUseCase(st.Tx, st.Movements, log)
	reconciler := inventory.NewQuantityReconciler(st.Products)
	factory := fulfillment.NewFactory(st.Fulfillments, st.Invoices, st.Audit, notifier, log)

	policy := billing.DefaultVisibilityPolicy()
	if ingest.VisibilityMaxAttempts > 0 {
		policy.MaxAttempts = ingest.VisibilityMaxAttempts
	}
	if ingest.VisibilityDelay > 0 {
		policy.Delay = ingest.VisibilityDelay
	}

	return &Services{
		Products:       usecase.NewProductUseCase(st.Products, recordMovement),
		RecordMovement: recordMovement,
		Reconciler:     reconciler,
		Reconcile:      inventory.NewReconcileStockUseCase(st.Tx, st.Products, log),
		Fulfillment:    factory,
		Invoices: billing.NewIngestInvoiceUseCase(
			st.Tx, st.Products, st.Invoices, reconciler, factory, st.Audit, policy, log,
		),
	}
}
