package domain

// Códigos de advertencia devueltos al caller cuando un efecto secundario
// de la factura falla sin abortar la creación.
const (
	WarningReservationFailed = "RESERVATION_FAILED"
	WarningOversold          = "OVERSOLD"
	WarningSkippedDeadline   = "SKIPPED_DEADLINE"
	WarningVisibilityTimeout = "VISIBILITY_TIMEOUT"
	WarningFulfillmentFailed = "FULFILLMENT_FAILED"
	WarningInvoiceLinkFailed = "INVOICE_LINK_FAILED"
	WarningAuditFailed       = "AUDIT_FAILED"
)

// Warning resultado no fatal de un efecto secundario.
// ItemIndex es -1 cuando la advertencia no corresponde a una línea.
type Warning struct {
	Code      string
	Message   string
	ProductID string
	ItemIndex int
}

// NewItemWarning construye una advertencia asociada a una línea de factura.
func NewItemWarning(code, message, productID string, index int) Warning {
	return Warning{Code: code, Message: message, ProductID: productID, ItemIndex: index}
}

// NewWarning construye una advertencia a nivel de factura.
func NewWarning(code, message string) Warning {
	return Warning{Code: code, Message: message, ItemIndex: -1}
}
