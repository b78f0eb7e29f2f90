package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de factura que disparan efectos de inventario.
const (
	InvoiceTypeSales    = "SALES"
	InvoiceTypePurchase = "PURCHASE"
)

// Invoice cabecera de factura. El ciclo de vida lo maneja el subsistema de facturación;
// este núcleo solo persiste la cabecera y enlaza el registro de cumplimiento.
type Invoice struct {
	ID         string
	CompanyID  string
	Type       string
	Number     string
	Total      decimal.Decimal
	ShipmentID string // enlace al despacho (ventas)
	ReceiptID  string // enlace a la recepción (compras)
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FulfillmentID devuelve el ID enlazado según el tipo de factura.
func (i *Invoice) FulfillmentID() string {
	if i.Type == InvoiceTypePurchase {
		return i.ReceiptID
	}
	return i.ShipmentID
}
