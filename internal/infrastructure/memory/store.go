// Package memory implementa todos los puertos de persistencia en memoria, con la misma
// semántica atómica que PostgreSQL. Lo usan los tests y STORE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stockflow-api/internal/application/billing"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner      = (*Store)(nil)
	_ billing.BillingTxRunner = (*Store)(nil)
)

// Store estado compartido. mu protege todos los mapas; txMu serializa las "transacciones".
// No hay rollback: lo escrito antes de un error dentro de Run queda aplicado.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	products      map[string]entity.Product
	movements     map[string][]entity.StockMovement // por product_id, en orden de sequence
	invoices      map[string]entity.Invoice
	details       map[string][]entity.InvoiceDetail   // por invoice_id
	shipments     map[string]entity.FulfillmentRecord // por invoice_id
	receipts      map[string]entity.FulfillmentRecord // por invoice_id
	auditLog      []entity.AuditEntry
	hiddenReads   map[string]int // lecturas de factura que aún devuelven "no visible"
	visibilityLag int
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{
		products:    make(map[string]entity.Product),
		movements:   make(map[string][]entity.StockMovement),
		invoices:    make(map[string]entity.Invoice),
		details:     make(map[string][]entity.InvoiceDetail),
		shipments:   make(map[string]entity.FulfillmentRecord),
		receipts:    make(map[string]entity.FulfillmentRecord),
		auditLog:    make([]entity.AuditEntry, 0, 64),
		hiddenReads: make(map[string]int),
	}
}

// SetInvoiceVisibilityLag simula réplicas con retraso: las siguientes n lecturas de cada
// factura creada a partir de ahora devuelven (nil, nil).
func (s *Store) SetInvoiceVisibilityLag(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		n = 0
	}
	s.visibilityLag = n
}

// Products repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// StockMovements ledger de stock.
func (s *Store) StockMovements() *StockMovementRepo { return &StockMovementRepo{s: s} }

// Invoices cabeceras y detalles de factura.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s: s} }

// Fulfillments despachos y recepciones.
func (s *Store) Fulfillments() *FulfillmentRepo { return &FulfillmentRepo{s: s} }

// Audit bitácora.
func (s *Store) Audit() *AuditRepo { return &AuditRepo{s: s} }

// AuditEntries copia de la bitácora, en orden de inserción.
func (s *Store) AuditEntries() []entity.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.AuditEntry, len(s.auditLog))
	copy(out, s.auditLog)
	return out
}

// Run serializa la función con las demás transacciones del almacén.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s.StockMovements(), s.Products())
}

// RunBilling igual que Run, con repos de productos y facturación.
func (s *Store) RunBilling(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s.Products(), s.Invoices())
}
