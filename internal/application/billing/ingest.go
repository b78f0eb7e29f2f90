package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InvoiceEvent evento emitido por facturación tras persistir la cabecera.
type InvoiceEvent struct {
	InvoiceID   string
	InvoiceType string
	CompanyID   string
	ActorID     string
	LineItems   []LineItem
}

// LineItem línea relevante para inventario.
type LineItem struct {
	ProductID string
	Quantity  decimal.Decimal
}

// IngestResult efectos aplicados por un evento de factura.
type IngestResult struct {
	Fulfillment        *entity.FulfillmentRecord
	FulfillmentCreated bool // hay registro enlazado (nuevo o existente)
	FulfillmentNew     bool // lo creó este evento
	FulfillmentError   string
	ReservedItems      int
	Warnings           []domain.Warning
}

func (r *IngestResult) warn(w domain.Warning) {
	r.Warnings = append(r.Warnings, w)
}

// Ingest aplica las reservas línea a línea y asegura el registro de cumplimiento.
// Cada línea se procesa aislada: un fallo se registra como advertencia y el ciclo continúa.
// Si ctx vence a mitad, las reservas ya aplicadas se quedan (sin compensación) y las
// líneas restantes se reportan como SKIPPED_DEADLINE.
// Un evento sin líneas no produce ningún efecto.
func (uc *IngestInvoiceUseCase) Ingest(ctx context.Context, ev InvoiceEvent) *IngestResult {
	res := &IngestResult{}
	if len(ev.LineItems) == 0 {
		return res
	}
	log := uc.log.With().
		Str("invoice_id", ev.InvoiceID).
		Str("company_id", ev.CompanyID).
		Str("invoice_type", ev.InvoiceType).
		Logger()

	reserve := uc.reserver.ReserveForSale
	if ev.InvoiceType == entity.InvoiceTypePurchase {
		reserve = uc.reserver.ReserveForPurchase
	}

	for i, item := range ev.LineItems {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(ev.LineItems); j++ {
				res.warn(domain.NewItemWarning(domain.WarningSkippedDeadline,
					"línea no procesada: "+err.Error(), ev.LineItems[j].ProductID, j))
			}
			log.Warn().Err(err).Int("pending_items", len(ev.LineItems)-i).Msg("plazo agotado durante las reservas")
			break
		}
		counters, err := reserve(ctx, ev.CompanyID, item.ProductID, item.Quantity)
		if err != nil {
			log.Error().Err(err).
				Str("product_id", item.ProductID).
				Int("item_index", i).
				Str("quantity", item.Quantity.String()).
				Msg("reserva de línea fallida")
			res.warn(domain.NewItemWarning(domain.WarningReservationFailed, err.Error(), item.ProductID, i))
			continue
		}
		res.ReservedItems++
		if ev.InvoiceType == entity.InvoiceTypeSales && counters != nil && counters.Oversold() {
			res.warn(domain.NewItemWarning(domain.WarningOversold,
				fmt.Sprintf("reservado %s supera el stock %s", counters.ReservedQuantity, counters.Stock),
				item.ProductID, i))
		}
	}

	uc.auditReservations(ctx, ev, res)

	if err := ctx.Err(); err != nil {
		res.FulfillmentError = "plazo agotado antes de crear el registro de cumplimiento: " + err.Error()
		res.warn(domain.NewWarning(domain.WarningFulfillmentFailed, res.FulfillmentError))
		return res
	}
	uc.ensureFulfillment(ctx, ev.InvoiceID, ev.InvoiceType, ev.CompanyID, res)
	return res
}

// ensureFulfillment la falla del registro no falla la factura, pero se expone en el resultado.
func (uc *IngestInvoiceUseCase) ensureFulfillment(ctx context.Context, invoiceID, invoiceType, companyID string, res *IngestResult) {
	outcome, err := uc.fulfillment.EnsureFulfillmentRecord(ctx, invoiceID, invoiceType, companyID)
	if err != nil {
		uc.log.Error().Err(err).Str("invoice_id", invoiceID).Msg("registro de cumplimiento no creado")
		res.FulfillmentError = err.Error()
		res.warn(domain.NewWarning(domain.WarningFulfillmentFailed, err.Error()))
		return
	}
	res.Fulfillment = outcome.Record
	res.FulfillmentCreated = true
	res.FulfillmentNew = outcome.Created
	res.Warnings = append(res.Warnings, outcome.Warnings...)
}

// auditReservations una entrada por lote de reservas; fire-and-forget.
func (uc *IngestInvoiceUseCase) auditReservations(ctx context.Context, ev InvoiceEvent, res *IngestResult) {
	if uc.audit == nil || res.ReservedItems == 0 || ctx.Err() != nil {
		return
	}
	details, _ := json.Marshal(map[string]any{
		"invoice_type":   ev.InvoiceType,
		"items":          len(ev.LineItems),
		"reserved_items": res.ReservedItems,
		"actor_id":       ev.ActorID,
	})
	err := uc.audit.Append(ctx, &entity.AuditEntry{
		ID:         uuid.New().String(),
		CompanyID:  ev.CompanyID,
		EntityType: "invoice",
		EntityID:   ev.InvoiceID,
		Action:     entity.AuditActionReservationBatch,
		Source:     entity.AuditSourceInvoiceEvent,
		Details:    details,
		CreatedAt:  uc.now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("invoice_id", ev.InvoiceID).Msg("bitácora de reservas no registrada")
		res.warn(domain.NewWarning(domain.WarningAuditFailed, err.Error()))
	}
}
