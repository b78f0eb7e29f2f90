package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// MovementRecorder registra movimientos del ledger (implementado por inventory.RecordMovementUseCase).
type MovementRecorder interface {
	RecordMovement(ctx context.Context, input inventory.MovementInputDTO) (*entity.StockMovement, error)
}

// ProductUseCase alta y consulta de productos. Stock solo cambia vía movimientos.
type ProductUseCase struct {
	repo     repository.ProductRepository
	recorder MovementRecorder
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, recorder MovementRecorder) *ProductUseCase {
	return &ProductUseCase{repo: repo, recorder: recorder}
}

// Create crea el producto con stock 0. Si viene InitialStock se registra como movimiento IN,
// así el ledger reproduce el stock desde 0.
func (uc *ProductUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if companyID == "" || in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialStock.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	now := time.Now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		SKU:              in.SKU,
		Name:             in.Name,
		Stock:            decimal.Zero,
		ReservedQuantity: decimal.Zero,
		IncomingQuantity: decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	if in.InitialStock.GreaterThan(decimal.Zero) {
		mov, err := uc.recorder.RecordMovement(ctx, inventory.MovementInputDTO{
			CompanyID: companyID,
			ActorID:   userID,
			ProductID: product.ID,
			Type:      entity.MovementTypeIN,
			Quantity:  in.InitialStock,
			Reason:    "stock inicial",
		})
		if err != nil {
			return nil, err
		}
		product.Stock = mov.NewStock
	}
	return dto.ToProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToProductResponse(product), nil
}
