package entity

import "time"

// Variantes del registro de cumplimiento.
const (
	FulfillmentKindOutbound = "OUTBOUND_SHIPMENT" // despacho (ventas)
	FulfillmentKindInbound  = "INBOUND_RECEIPT"   // recepción de mercancía (compras)
)

// FulfillmentStatusDraft es el único estado que produce este núcleo; las
// transiciones posteriores pertenecen al flujo de despacho externo.
const FulfillmentStatusDraft = "DRAFT"

// FulfillmentRecord despacho o recepción generado a partir de una factura (1:1).
type FulfillmentRecord struct {
	ID        string
	InvoiceID string
	CompanyID string
	Kind      string
	Status    string
	CreatedAt time.Time
}

// FulfillmentKindFor devuelve la variante que corresponde al tipo de factura.
func FulfillmentKindFor(invoiceType string) (string, bool) {
	switch invoiceType {
	case InvoiceTypeSales:
		return FulfillmentKindOutbound, true
	case InvoiceTypePurchase:
		return FulfillmentKindInbound, true
	}
	return "", false
}
