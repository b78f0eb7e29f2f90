package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Límites de paginación del ledger.
const (
	DefaultMovementsLimit = 20
	MaxMovementsLimit     = 100
)

// RecordMovementUseCase registra movimientos manuales del ledger (IN, OUT, ADJUSTMENT, RETURN)
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// No toca los contadores de reservado ni de entrante.
type RecordMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewRecordMovementUseCase construye el caso de uso. movRepo se usa para lecturas fuera de tx.
func NewRecordMovementUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository, log zerolog.Logger) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner: txRunner,
		movRepo:  movRepo,
		log:      log.With().Str("component", "stock_ledger").Logger(),
		now:      time.Now,
	}
}

// MovementInputDTO entrada para registrar un movimiento.
// Direction solo aplica a ADJUSTMENT (+1 / -1).
type MovementInputDTO struct {
	CompanyID string
	ActorID   string
	ProductID string
	Type      string
	Quantity  decimal.Decimal
	Direction int
	Reason    string
	Notes     string
}

func (in *MovementInputDTO) validate() error {
	if in.CompanyID == "" || in.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.IsValidMovementType(in.Type) {
		return domain.ErrInvalidMovementType
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidQuantity
	}
	switch in.Type {
	case entity.MovementTypeADJUSTMENT:
		if in.Direction != entity.DirectionIncrease && in.Direction != entity.DirectionDecrease {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeOUT:
		in.Direction = entity.DirectionDecrease
	default:
		in.Direction = entity.DirectionIncrease
	}
	return nil
}

// RecordMovement bloquea el producto, calcula el nuevo stock, guarda la entrada del ledger
// y luego el stock del producto, todo en la misma transacción.
// Si algo falla después de escribir el ledger, el ledger manda: ReconcileStockUseCase repara el stock.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInputDTO) (*entity.StockMovement, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, input.CompanyID, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		newStock, err := inventory.Apply(product.Stock, input.Type, input.Quantity, input.Direction)
		if err != nil {
			return err
		}
		mov = &entity.StockMovement{
			ID:            uuid.New().String(),
			CompanyID:     input.CompanyID,
			ProductID:     input.ProductID,
			Type:          input.Type,
			Quantity:      input.Quantity,
			Direction:     input.Direction,
			PreviousStock: product.Stock,
			NewStock:      newStock,
			Reason:        input.Reason,
			Notes:         input.Notes,
			ActorID:       input.ActorID,
			CreatedAt:     uc.now(),
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		return productRepo.UpdateStock(ctx, input.CompanyID, input.ProductID, newStock)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", mov.CompanyID).
		Str("product_id", mov.ProductID).
		Str("type", mov.Type).
		Str("previous_stock", mov.PreviousStock.String()).
		Str("new_stock", mov.NewStock.String()).
		Msg("movimiento de stock registrado")
	return mov, nil
}

// ListMovements devuelve el ledger de un producto, más reciente primero.
func (uc *RecordMovementUseCase) ListMovements(ctx context.Context, companyID, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	if companyID == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = DefaultMovementsLimit
	}
	if limit > MaxMovementsLimit {
		limit = MaxMovementsLimit
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movRepo.ListByProduct(ctx, companyID, productID, limit, offset)
}
