package entity

import (
	"encoding/json"
	"time"
)

// AuditSourceInvoiceEvent atribuye la entrada al evento de factura, no a un usuario.
const AuditSourceInvoiceEvent = "invoice_event"

// Acciones registradas en la bitácora.
const (
	AuditActionFulfillmentCreated = "fulfillment.created"
	AuditActionReservationBatch   = "inventory.reservation_batch"
)

// AuditEntry entrada de la bitácora de actividad.
type AuditEntry struct {
	ID         string
	CompanyID  string
	EntityType string
	EntityID   string
	Action     string
	Source     string
	Details    json.RawMessage
	CreatedAt  time.Time
}
