package memory

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo ledger en memoria; solo inserción.
type StockMovementRepo struct {
	s *Store
}

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[m.ProductID]; !ok {
		return domain.ErrNotFound
	}
	list := r.s.movements[m.ProductID]
	m.Sequence = int64(len(list)) + 1
	r.s.movements[m.ProductID] = append(list, *m)
	return nil
}

func (r *StockMovementRepo) ListByProduct(_ context.Context, companyID, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := r.s.movements[productID]
	out := make([]*entity.StockMovement, 0, limit)
	skipped := 0
	for i := len(list) - 1; i >= 0 && len(out) < limit; i-- {
		if list[i].CompanyID != companyID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		m := list[i]
		out = append(out, &m)
	}
	return out, nil
}

func (r *StockMovementRepo) ListAllByProduct(_ context.Context, companyID, productID string) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := r.s.movements[productID]
	out := make([]*entity.StockMovement, 0, len(list))
	for i := range list {
		if list[i].CompanyID != companyID {
			continue
		}
		m := list[i]
		out = append(out, &m)
	}
	return out, nil
}
