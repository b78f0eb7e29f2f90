package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// notifyTimeout tiempo máximo para entregar un aviso, desacoplado del request.
const notifyTimeout = 5 * time.Second

// Outcome resultado de EnsureFulfillmentRecord.
type Outcome struct {
	Record   *entity.FulfillmentRecord
	Created  bool             // false: ya existía y se devolvió sin cambios
	Warnings []domain.Warning // fallos no fatales de enlace o bitácora
}

// Factory crea exactamente un despacho (SALES) o recepción (PURCHASE) en DRAFT por factura.
// La unicidad la garantiza la restricción UNIQUE(invoice_id) del almacén (insert-or-fetch).
type Factory struct {
	records  repository.FulfillmentRepository
	invoices repository.InvoiceRepository
	audit    AuditLogger
	notifier Notifier
	log      zerolog.Logger
	now      func() time.Time
}

// NewFactory construye la fábrica. notifier puede ser nil.
func NewFactory(
	records repository.FulfillmentRepository,
	invoices repository.InvoiceRepository,
	audit AuditLogger,
	notifier Notifier,
	log zerolog.Logger,
) *Factory {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &Factory{
		records:  records,
		invoices: invoices,
		audit:    audit,
		notifier: notifier,
		log:      log.With().Str("component", "fulfillment_factory").Logger(),
		now:      time.Now,
	}
}

// EnsureFulfillmentRecord devuelve el registro de la factura, creándolo en DRAFT si no existe.
// Solo al crear: enlaza el ID en la factura, registra una entrada de bitácora atribuida al
// evento de factura y dispara la notificación.
func (f *Factory) EnsureFulfillmentRecord(ctx context.Context, invoiceID, invoiceType, companyID string) (*Outcome, error) {
	if invoiceID == "" || companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	kind, ok := entity.FulfillmentKindFor(invoiceType)
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	candidate := &entity.FulfillmentRecord{
		ID:        uuid.New().String(),
		InvoiceID: invoiceID,
		CompanyID: companyID,
		Kind:      kind,
		Status:    entity.FulfillmentStatusDraft,
		CreatedAt: f.now(),
	}
	stored, created, err := f.records.InsertOrGet(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("crear registro de cumplimiento: %w", err)
	}
	out := &Outcome{Record: stored, Created: created}
	if !created {
		return out, nil
	}

	if err := f.invoices.SetFulfillmentLink(ctx, companyID, invoiceID, kind, stored.ID); err != nil {
		f.log.Error().Err(err).
			Str("invoice_id", invoiceID).
			Str("fulfillment_id", stored.ID).
			Msg("no se pudo enlazar el registro a la factura")
		out.Warnings = append(out.Warnings, domain.NewWarning(domain.WarningInvoiceLinkFailed, err.Error()))
	}

	if w := f.appendAudit(ctx, stored, invoiceType); w != nil {
		out.Warnings = append(out.Warnings, *w)
	}

	f.notify(ctx, Notice{
		CompanyID:     companyID,
		InvoiceID:     invoiceID,
		InvoiceType:   invoiceType,
		FulfillmentID: stored.ID,
		Kind:          kind,
		Status:        stored.Status,
	})
	return out, nil
}

func (f *Factory) appendAudit(ctx context.Context, rec *entity.FulfillmentRecord, invoiceType string) *domain.Warning {
	if f.audit == nil {
		return nil
	}
	details, _ := json.Marshal(map[string]string{
		"invoice_id":   rec.InvoiceID,
		"invoice_type": invoiceType,
		"kind":         rec.Kind,
		"status":       rec.Status,
	})
	entry := &entity.AuditEntry{
		ID:         uuid.New().String(),
		CompanyID:  rec.CompanyID,
		EntityType: rec.Kind,
		EntityID:   rec.ID,
		Action:     entity.AuditActionFulfillmentCreated,
		Source:     entity.AuditSourceInvoiceEvent,
		Details:    details,
		CreatedAt:  f.now(),
	}
	if err := f.audit.Append(ctx, entry); err != nil {
		f.log.Warn().Err(err).Str("fulfillment_id", rec.ID).Msg("bitácora no registrada")
		w := domain.NewWarning(domain.WarningAuditFailed, err.Error())
		return &w
	}
	return nil
}

// notify entrega el aviso en segundo plano; los fallos solo se registran.
func (f *Factory) notify(ctx context.Context, notice Notice) {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	go func() {
		defer cancel()
		if err := f.notifier.FulfillmentCreated(nctx, notice); err != nil {
			f.log.Warn().Err(err).
				Str("invoice_id", notice.InvoiceID).
				Str("fulfillment_id", notice.FulfillmentID).
				Msg("notificación de cumplimiento fallida")
		}
	}()
}
