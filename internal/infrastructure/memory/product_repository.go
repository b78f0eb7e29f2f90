package memory

import (
	"context"
	"slices"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria. Cada incremento se hace bajo el lock de escritura.
type ProductRepo struct {
	s *Store
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.products {
		if existing.CompanyID == p.CompanyID && existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, companyID, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate el bloqueo lo da txMu en Store.Run.
func (r *ProductRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r *ProductRepo) ListIDsByCompany(_ context.Context, companyID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []entity.Product
	for _, p := range r.s.products {
		if p.CompanyID == companyID {
			list = append(list, p)
		}
	}
	slices.SortFunc(list, func(a, b entity.Product) int {
		switch {
		case a.SKU < b.SKU:
			return -1
		case a.SKU > b.SKU:
			return 1
		}
		return 0
	})
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, companyID, id string, stock decimal.Decimal) error {
	if stock.IsNegative() {
		return domain.ErrNegativeStock
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.CompanyID != companyID {
		return domain.ErrNotFound
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

func (r *ProductRepo) IncrementReserved(_ context.Context, companyID, id string, delta decimal.Decimal) (*entity.ProductCounters, error) {
	return r.adjust(companyID, id, func(p *entity.Product) error {
		p.ReservedQuantity = p.ReservedQuantity.Add(delta)
		return nil
	})
}

func (r *ProductRepo) IncrementIncoming(_ context.Context, companyID, id string, delta decimal.Decimal) (*entity.ProductCounters, error) {
	return r.adjust(companyID, id, func(p *entity.Product) error {
		p.IncomingQuantity = p.IncomingQuantity.Add(delta)
		return nil
	})
}

func (r *ProductRepo) ReleaseReserved(_ context.Context, companyID, id string, qty decimal.Decimal) (*entity.ProductCounters, error) {
	return r.adjust(companyID, id, func(p *entity.Product) error {
		if p.ReservedQuantity.LessThan(qty) {
			return domain.ErrCounterUnderflow
		}
		p.ReservedQuantity = p.ReservedQuantity.Sub(qty)
		return nil
	})
}

func (r *ProductRepo) ReleaseIncoming(_ context.Context, companyID, id string, qty decimal.Decimal) (*entity.ProductCounters, error) {
	return r.adjust(companyID, id, func(p *entity.Product) error {
		if p.IncomingQuantity.LessThan(qty) {
			return domain.ErrCounterUnderflow
		}
		p.IncomingQuantity = p.IncomingQuantity.Sub(qty)
		return nil
	})
}

func (r *ProductRepo) adjust(companyID, id string, apply func(p *entity.Product) error) (*entity.ProductCounters, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if err := apply(&p); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return p.Counters(), nil
}
