package dto

import (
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices.
// Type: "SALES" (genera despacho) | "PURCHASE" (genera recepción).
type CreateInvoiceRequest struct {
	Type   string               `json:"type"`
	Number string               `json:"number,omitempty"` // opcional; si va vacío se genera
	Items  []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest línea de factura (producto, cantidad, precio unitario).
type InvoiceItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// InvoiceResponse factura enriquecida con el resultado de inventario y cumplimiento.
type InvoiceResponse struct {
	ID                 string                  `json:"id"`
	CompanyID          string                  `json:"company_id"`
	Type               string                  `json:"type"`
	Number             string                  `json:"number"`
	Total              decimal.Decimal         `json:"total"`
	ShipmentID         string                  `json:"shipment_id,omitempty"`
	ReceiptID          string                  `json:"receipt_id,omitempty"`
	FulfillmentCreated bool                    `json:"fulfillment_created"`
	FulfillmentMessage string                  `json:"fulfillment_message,omitempty"`
	FulfillmentError   string                  `json:"fulfillment_error,omitempty"`
	Warnings           []WarningDTO            `json:"warnings"`
	Details            []InvoiceDetailResponse `json:"details"`
	CreatedAt          time.Time               `json:"created_at"`
}

// InvoiceDetailResponse línea de detalle en la respuesta.
type InvoiceDetailResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// WarningDTO efecto secundario fallido que no abortó la factura.
type WarningDTO struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	ProductID string `json:"product_id,omitempty"`
	ItemIndex *int   `json:"item_index,omitempty"`
}

// ToWarningDTOs mapea las advertencias de dominio. Nunca devuelve nil.
func ToWarningDTOs(ws []domain.Warning) []WarningDTO {
	out := make([]WarningDTO, 0, len(ws))
	for _, w := range ws {
		d := WarningDTO{Code: w.Code, Message: w.Message, ProductID: w.ProductID}
		if w.ItemIndex >= 0 {
			idx := w.ItemIndex
			d.ItemIndex = &idx
		}
		out = append(out, d)
	}
	return out
}
