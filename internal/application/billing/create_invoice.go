package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/fulfillment"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Mensajes del resultado de cumplimiento.
const (
	msgFulfillmentCreated  = "registro de cumplimiento creado en DRAFT"
	msgFulfillmentExisting = "registro de cumplimiento existente reutilizado"
	msgFulfillmentNoItems  = "factura sin ítems: no se genera registro de cumplimiento"
	msgFulfillmentFailed   = "no se pudo crear el registro de cumplimiento"
)

// IngestInvoiceUseCase crea la factura y aplica sus efectos de inventario.
// Solo la escritura de la cabecera es un fallo duro; reservas, registro de cumplimiento
// y bitácora son best-effort y se reportan como advertencias.
type IngestInvoiceUseCase struct {
	txRunner    BillingTxRunner
	productRepo repository.ProductRepository
	invoiceRepo repository.InvoiceRepository
	reserver    Reserver
	fulfillment FulfillmentEnsurer
	audit       fulfillment.AuditLogger
	visibility  VisibilityPolicy
	log         zerolog.Logger
	now         func() time.Time
}

// NewIngestInvoiceUseCase construye el caso de uso.
func NewIngestInvoiceUseCase(
	txRunner BillingTxRunner,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	reserver Reserver,
	ensurer FulfillmentEnsurer,
	audit fulfillment.AuditLogger,
	visibility VisibilityPolicy,
	log zerolog.Logger,
) *IngestInvoiceUseCase {
	return &IngestInvoiceUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
		reserver:    reserver,
		fulfillment: ensurer,
		audit:       audit,
		visibility:  visibility,
		log:         log.With().Str("component", "invoice_ingestion").Logger(),
		now:         time.Now,
	}
}

// CreateInvoice valida y guarda cabecera y detalles, espera a que la cabecera sea visible,
// reserva por línea y asegura el registro de cumplimiento.
func (uc *IngestInvoiceUseCase) CreateInvoice(ctx context.Context, companyID, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.InvoiceTypeSales && in.Type != entity.InvoiceTypePurchase {
		return nil, domain.ErrInvalidInput
	}

	// Validar líneas y productos (fuera de la tx, solo lectura)
	for _, item := range in.Items {
		if item.ProductID == "" || item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidQuantity
		}
		product, err := uc.productRepo.GetByID(ctx, companyID, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := uc.now()
	inv := &entity.Invoice{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Type:      in.Type,
		Number:    in.Number,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if inv.Number == "" {
		inv.Number = fmt.Sprintf("%s-%d", numberPrefix(in.Type), now.UnixMilli())
	}
	details := make([]*entity.InvoiceDetail, 0, len(in.Items))
	total := decimal.Zero
	for _, item := range in.Items {
		lineTotal := item.Quantity.Mul(item.UnitPrice)
		total = total.Add(lineTotal)
		details = append(details, &entity.InvoiceDetail{
			ID:        uuid.New().String(),
			InvoiceID: inv.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     lineTotal,
		})
	}
	inv.Total = total

	err := uc.txRunner.RunBilling(ctx, func(
		_ repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		for _, d := range details {
			if err := invoiceRepo.CreateDetail(ctx, d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var warnings []domain.Warning
	visible, err := AwaitVisibility(ctx, uc.visibility, func(ctx context.Context) (*entity.Invoice, error) {
		return uc.invoiceRepo.GetByID(ctx, companyID, inv.ID)
	}, inv)
	if err != nil {
		uc.log.Warn().Err(err).Str("invoice_id", inv.ID).Msg("factura no visible, se usa la copia en memoria")
		warnings = append(warnings, domain.NewWarning(domain.WarningVisibilityTimeout, err.Error()))
	}

	res := uc.Ingest(ctx, toEvent(visible, userID, details))
	res.Warnings = append(warnings, res.Warnings...)
	return uc.toResponse(visible, details, res), nil
}

// GetInvoice obtiene una factura por ID con su detalle.
func (uc *IngestInvoiceUseCase) GetInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, details, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	res := &IngestResult{FulfillmentCreated: inv.FulfillmentID() != ""}
	return uc.toResponse(inv, details, res), nil
}

// Reprocess vuelve a ejecutar la creación del registro de cumplimiento de una factura existente
// (p. ej. reintento del cliente). No vuelve a aplicar reservas.
func (uc *IngestInvoiceUseCase) Reprocess(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, details, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	res := &IngestResult{}
	if len(details) == 0 {
		return uc.toResponse(inv, details, res), nil
	}
	uc.ensureFulfillment(ctx, inv.ID, inv.Type, companyID, res)
	if res.Fulfillment != nil && inv.FulfillmentID() != res.Fulfillment.ID {
		if err := uc.invoiceRepo.SetFulfillmentLink(ctx, companyID, inv.ID, res.Fulfillment.Kind, res.Fulfillment.ID); err != nil {
			res.warn(domain.NewWarning(domain.WarningInvoiceLinkFailed, err.Error()))
		}
	}
	return uc.toResponse(inv, details, res), nil
}

func (uc *IngestInvoiceUseCase) load(ctx context.Context, companyID, id string) (*entity.Invoice, []*entity.InvoiceDetail, error) {
	if companyID == "" || id == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}
	details, err := uc.invoiceRepo.GetDetailsByInvoiceID(ctx, companyID, id)
	if err != nil {
		return nil, nil, err
	}
	return inv, details, nil
}

func toEvent(inv *entity.Invoice, actorID string, details []*entity.InvoiceDetail) InvoiceEvent {
	ev := InvoiceEvent{
		InvoiceID:   inv.ID,
		InvoiceType: inv.Type,
		CompanyID:   inv.CompanyID,
		ActorID:     actorID,
		LineItems:   make([]LineItem, 0, len(details)),
	}
	for _, d := range details {
		ev.LineItems = append(ev.LineItems, LineItem{ProductID: d.ProductID, Quantity: d.Quantity})
	}
	return ev
}

func numberPrefix(invoiceType string) string {
	if invoiceType == entity.InvoiceTypePurchase {
		return "FC"
	}
	return "FV"
}

func (uc *IngestInvoiceUseCase) toResponse(inv *entity.Invoice, details []*entity.InvoiceDetail, res *IngestResult) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:                 inv.ID,
		CompanyID:          inv.CompanyID,
		Type:               inv.Type,
		Number:             inv.Number,
		Total:              inv.Total,
		ShipmentID:         inv.ShipmentID,
		ReceiptID:          inv.ReceiptID,
		FulfillmentCreated: res.FulfillmentCreated,
		FulfillmentError:   res.FulfillmentError,
		Warnings:           dto.ToWarningDTOs(res.Warnings),
		Details:            make([]dto.InvoiceDetailResponse, 0, len(details)),
		CreatedAt:          inv.CreatedAt,
	}
	if rec := res.Fulfillment; rec != nil {
		if rec.Kind == entity.FulfillmentKindInbound {
			resp.ReceiptID = rec.ID
		} else {
			resp.ShipmentID = rec.ID
		}
	}
	switch {
	case len(details) == 0:
		resp.FulfillmentMessage = msgFulfillmentNoItems
	case res.FulfillmentError != "":
		resp.FulfillmentMessage = msgFulfillmentFailed
	case res.FulfillmentNew:
		resp.FulfillmentMessage = msgFulfillmentCreated
	case res.FulfillmentCreated:
		resp.FulfillmentMessage = msgFulfillmentExisting
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.InvoiceDetailResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Total:     d.Total,
		})
	}
	return resp
}
