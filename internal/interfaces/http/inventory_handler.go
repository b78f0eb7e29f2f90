package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
)

// InventoryHandler ledger de stock y contadores (protegido).
type InventoryHandler struct {
	movements  *inventory.RecordMovementUseCase
	reconciler *inventory.QuantityReconciler
	reconcile  *inventory.ReconcileStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	movements *inventory.RecordMovementUseCase,
	reconciler *inventory.QuantityReconciler,
	reconcile *inventory.ReconcileStockUseCase,
) *InventoryHandler {
	return &InventoryHandler{movements: movements, reconciler: reconciler, reconcile: reconcile}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "product_id, type (IN|OUT|ADJUSTMENT|RETURN), quantity, direction (solo ADJUSTMENT)"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.movements.RecordMovementFromRequest(c.UserContext(), companyID, userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Ledger de un producto (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "máx. 100, por defecto 20"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.StockMovementListResponse
// @Router       /api/inventory/products/{id}/stock-movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	page.DefaultPage()
	list, err := h.movements.ListMovements(c.UserContext(), companyID, c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.ToStockMovementResponse(m))
	}
	return c.JSON(dto.StockMovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Release godoc
// @Summary      Liberar cantidad reservada o entrante
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del producto"
// @Param        body  body  dto.ReleaseCounterRequest  true  "counter (reserved|incoming), quantity"
// @Success      200   {object}  dto.ProductCountersResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/release [post]
func (h *InventoryHandler) Release(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.ReleaseCounterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	counters, err := h.reconciler.Release(c.UserContext(), companyID, c.Params("id"), in.Counter, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToProductCountersResponse(counters))
}

// Reconcile godoc
// @Summary      Reproducir el ledger y comparar con el stock guardado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        repair  query  bool    false  "corregir el stock si hay diferencia"
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/inventory/products/{id}/reconcile [post]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	report, err := h.reconcile.Reconcile(c.UserContext(), companyID, c.Params("id"), c.QueryBool("repair"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{
		ProductID:     report.ProductID,
		RecordedStock: report.RecordedStock,
		ReplayedStock: report.ReplayedStock,
		Drift:         report.Drift,
		Movements:     report.Movements,
		InSync:        report.InSync(),
		Repaired:      report.Repaired,
	})
}
