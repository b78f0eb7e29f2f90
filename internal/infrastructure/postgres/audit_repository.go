package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo bitácora audit_log (solo INSERT).
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Append inserta la entrada.
func (r *AuditRepo) Append(ctx context.Context, e *entity.AuditEntry) error {
	details := e.Details
	if len(details) == 0 {
		details = []byte("{}")
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_log (id, company_id, entity_type, entity_id, action, source, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.CompanyID, e.EntityType, e.EntityID, e.Action, e.Source, details, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
