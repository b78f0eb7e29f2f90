package memory

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo bitácora en memoria (ver Store.AuditEntries).
type AuditRepo struct {
	s *Store
}

func (r *AuditRepo) Append(_ context.Context, e *entity.AuditEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.auditLog = append(r.s.auditLog, *e)
	return nil
}
