package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockflow-api/internal/application/billing"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	RecordMovement *inventory.RecordMovementUseCase
	Reconciler     *inventory.QuantityReconciler
	ReconcileUC    *inventory.ReconcileStockUseCase
	Invoices       *billing.IngestInvoiceUseCase
	Tokens         TokenParser
	IngestTimeout  time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Tokens))
	stockRoles := RequireRole(RoleAdmin, RoleBodeguero)
	salesRoles := RequireRole(RoleAdmin, RoleVendedor, RoleBodeguero)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", stockRoles, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)

	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RecordMovement, deps.Reconciler, deps.ReconcileUC)
	invGroup.Post("/stock-movements", stockRoles, inventoryHandler.RecordMovement)
	invGroup.Get("/products/:id/stock-movements", inventoryHandler.ListMovements)
	invGroup.Post("/products/:id/release", stockRoles, inventoryHandler.Release)
	invGroup.Post("/products/:id/reconcile", RequireRole(RoleAdmin), inventoryHandler.Reconcile)

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.Invoices, deps.IngestTimeout)
	invoices.Post("/", salesRoles, invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/reprocess", salesRoles, invoiceHandler.Reprocess)
}
