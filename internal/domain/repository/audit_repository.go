package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// AuditRepository bitácora de actividad (solo inserción).
type AuditRepository interface {
	Append(ctx context.Context, entry *entity.AuditEntry) error
}
