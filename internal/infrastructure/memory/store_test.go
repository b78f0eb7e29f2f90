package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
)

const (
	companyA = "company-a"
	companyB = "company-b"
)

func seedProduct(t *testing.T, s *memory.Store, companyID string, stock int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		SKU:       "SKU-" + uuid.New().String()[:8],
		Name:      "Producto de prueba",
		Stock:     decimal.NewFromInt(stock),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, s.Products().Create(context.Background(), p))
	return p
}

func TestIncrementReserved_ConcurrentCallsSumExactly(t *testing.T) {
	s := memory.New()
	p := seedProduct(t, s, companyA, 0)
	repo := s.Products()

	var g errgroup.Group
	for i := 0; i < 100; i++ {
		g.Go(func() error {
			_, err := repo.IncrementReserved(context.Background(), companyA, p.ID, decimal.NewFromInt(1))
			return err
		})
	}
	require.NoError(t, g.Wait())

	got, err := repo.GetByID(context.Background(), companyA, p.ID)
	require.NoError(t, err)
	assert.True(t, got.ReservedQuantity.Equal(decimal.NewFromInt(100)), "reservado = %s", got.ReservedQuantity)
}

func TestCounters_CrossTenantIsNotFound(t *testing.T) {
	s := memory.New()
	p := seedProduct(t, s, companyA, 10)

	_, err := s.Products().IncrementIncoming(context.Background(), companyB, p.ID, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := s.Products().GetByID(context.Background(), companyB, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReleaseReserved_GuardRejectsUnderflow(t *testing.T) {
	s := memory.New()
	p := seedProduct(t, s, companyA, 10)
	repo := s.Products()

	_, err := repo.IncrementReserved(context.Background(), companyA, p.ID, decimal.NewFromInt(3))
	require.NoError(t, err)

	_, err = repo.ReleaseReserved(context.Background(), companyA, p.ID, decimal.NewFromInt(4))
	assert.ErrorIs(t, err, domain.ErrCounterUnderflow)

	c, err := repo.ReleaseReserved(context.Background(), companyA, p.ID, decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, c.ReservedQuantity.IsZero())
}

func TestFulfillmentInsertOrGet_ConcurrentConverge(t *testing.T) {
	s := memory.New()
	repo := s.Fulfillments()
	invoiceID := uuid.New().String()

	const n = 20
	ids := make([]string, n)
	created := make([]bool, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			rec, ok, err := repo.InsertOrGet(context.Background(), &entity.FulfillmentRecord{
				ID:        uuid.New().String(),
				InvoiceID: invoiceID,
				CompanyID: companyA,
				Kind:      entity.FulfillmentKindOutbound,
				Status:    entity.FulfillmentStatusDraft,
			})
			if err != nil {
				return err
			}
			ids[i] = rec.ID
			created[i] = ok
			return nil
		})
	}
	require.NoError(t, g.Wait())

	winners := 0
	for i := range ids {
		assert.Equal(t, ids[0], ids[i])
		if created[i] {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestInvoiceVisibilityLag(t *testing.T) {
	s := memory.New()
	s.SetInvoiceVisibilityLag(2)
	repo := s.Invoices()
	inv := &entity.Invoice{ID: uuid.New().String(), CompanyID: companyA, Type: entity.InvoiceTypeSales, Number: "FV-1"}
	require.NoError(t, repo.Create(context.Background(), inv))

	for i := 0; i < 2; i++ {
		got, err := repo.GetByID(context.Background(), companyA, inv.ID)
		require.NoError(t, err)
		assert.Nil(t, got, "lectura %d aún no visible", i+1)
	}
	got, err := repo.GetByID(context.Background(), companyA, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "FV-1", got.Number)
}

func TestStockMovements_SequenceAndOrder(t *testing.T) {
	s := memory.New()
	p := seedProduct(t, s, companyA, 0)
	repo := s.StockMovements()

	for i := 1; i <= 3; i++ {
		m := &entity.StockMovement{
			ID:        uuid.New().String(),
			CompanyID: companyA,
			ProductID: p.ID,
			Type:      entity.MovementTypeIN,
			Quantity:  decimal.NewFromInt(int64(i)),
			Direction: entity.DirectionIncrease,
		}
		require.NoError(t, repo.Create(context.Background(), m))
		assert.Equal(t, int64(i), m.Sequence)
	}

	latest, err := repo.ListByProduct(context.Background(), companyA, p.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, int64(3), latest[0].Sequence)
	assert.Equal(t, int64(2), latest[1].Sequence)

	page, err := repo.ListByProduct(context.Background(), companyA, p.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(1), page[0].Sequence)

	other, err := repo.ListAllByProduct(context.Background(), companyB, p.ID)
	require.NoError(t, err)
	assert.Empty(t, other)
}
