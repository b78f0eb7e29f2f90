package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
)

func newProductUC(s *memory.Store) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(s.Products(), inventory.NewRecordMovementUseCase(s, s.StockMovements(), zerolog.Nop()))
}

func TestProductCreate_InitialStockGoesThroughLedger(t *testing.T) {
	s := memory.New()
	uc := newProductUC(s)

	p, err := uc.Create(context.Background(), "company-a", "user-1", dto.CreateProductRequest{
		SKU: "  P-1 ", Name: "Tornillo", InitialStock: decimal.NewFromInt(12),
	})
	require.NoError(t, err)
	assert.Equal(t, "P-1", p.SKU)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(12)))

	movs, err := s.StockMovements().ListAllByProduct(context.Background(), "company-a", p.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "IN", movs[0].Type)
	assert.Equal(t, "stock inicial", movs[0].Reason)
}

func TestProductCreate_Validation(t *testing.T) {
	s := memory.New()
	uc := newProductUC(s)

	_, err := uc.Create(context.Background(), "company-a", "user-1", dto.CreateProductRequest{SKU: "", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(context.Background(), "company-a", "user-1", dto.CreateProductRequest{SKU: "x", Name: "x", InitialStock: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.Create(context.Background(), "company-a", "user-1", dto.CreateProductRequest{SKU: "dup", Name: "x"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), "company-a", "user-1", dto.CreateProductRequest{SKU: "dup", Name: "y"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductGetByID_OtherTenant(t *testing.T) {
	s := memory.New()
	uc := newProductUC(s)
	p, err := uc.Create(context.Background(), "company-a", "user-1", dto.CreateProductRequest{SKU: "P-2", Name: "Tuerca"})
	require.NoError(t, err)

	_, err = uc.GetByID(context.Background(), "company-b", p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	got, err := uc.GetByID(context.Background(), "company-a", p.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.IsZero())
}
