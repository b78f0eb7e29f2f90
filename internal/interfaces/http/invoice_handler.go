package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockflow-api/internal/application/billing"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
)

// DefaultIngestTimeout plazo total de una creación de factura si no se configura otro.
const DefaultIngestTimeout = 15 * time.Second

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	uc      *billing.IngestInvoiceUseCase
	timeout time.Duration
}

// NewInvoiceHandler construye el handler. timeout <= 0 usa DefaultIngestTimeout.
func NewInvoiceHandler(uc *billing.IngestInvoiceUseCase, timeout time.Duration) *InvoiceHandler {
	if timeout <= 0 {
		timeout = DefaultIngestTimeout
	}
	return &InvoiceHandler{uc: uc, timeout: timeout}
}

// Create godoc
// @Summary      Crear factura y aplicar efectos de inventario
// @Description  Reserva por línea (ventas) o registra entrantes (compras) y crea el despacho/recepción en DRAFT.
//
//	Los fallos por línea no abortan la factura: vuelven en warnings.
//
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "type (SALES|PURCHASE), items"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	invoice, err := h.uc.CreateInvoice(ctx, companyID, userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// GetByID obtiene la factura con su detalle y enlaces de cumplimiento.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	invoice, err := h.uc.GetInvoice(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoice)
}

// Reprocess vuelve a asegurar el registro de cumplimiento sin repetir reservas.
// POST /api/invoices/:id/reprocess
func (h *InvoiceHandler) Reprocess(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	invoice, err := h.uc.Reprocess(ctx, companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoice)
}
