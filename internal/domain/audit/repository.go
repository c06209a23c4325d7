package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/smeops/backend/internal/domain/shared"
)

// AuditLogRepository defines persistence for the audit trail.
// Entries are append-only.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *AuditLog) error
	FindAll(ctx context.Context, filter shared.Filter) ([]AuditLog, int64, error)
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]AuditLog, error)
}
