package fulfillment

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// AuditLogger bitácora de actividad. Un fallo al registrar nunca falla la operación.
type AuditLogger interface {
	Append(ctx context.Context, entry *entity.AuditEntry) error
}

// Notice aviso emitido tras crear un registro de cumplimiento enlazado a una factura.
type Notice struct {
	CompanyID     string `json:"company_id"`
	InvoiceID     string `json:"invoice_id"`
	InvoiceType   string `json:"invoice_type"`
	FulfillmentID string `json:"fulfillment_id"`
	Kind          string `json:"kind"`
	Status        string `json:"status"`
}

// Notifier servicio de notificaciones (best-effort, no bloqueante).
type Notifier interface {
	FulfillmentCreated(ctx context.Context, notice Notice) error
}

// NoopNotifier descarta los avisos.
type NoopNotifier struct{}

// FulfillmentCreated no hace nada.
func (NoopNotifier) FulfillmentCreated(_ context.Context, _ Notice) error { return nil }
