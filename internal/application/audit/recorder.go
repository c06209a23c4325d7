package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/smeops/backend/internal/domain/audit"
	"github.com/smeops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Recorder writes audit trail entries. Recording is best-effort and runs
// after the business transaction has committed: a failed audit write is
// logged and never surfaces to the caller.
type Recorder struct {
	repo   audit.AuditLogRepository
	logger *zap.Logger
}

// NewRecorder creates a new audit Recorder
func NewRecorder(repo audit.AuditLogRepository, logger *zap.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Record persists one audit entry. Errors are logged, not returned.
func (r *Recorder) Record(ctx context.Context, userID uuid.UUID, entityType string, entityID uuid.UUID, action string, oldValues, newValues any) {
	entry := audit.NewAuditLog(userID, entityType, entityID, action, oldValues, newValues)
	if err := r.repo.Create(context.WithoutCancel(ctx), entry); err != nil {
		r.logger.Warn("audit write failed",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID.String()),
			zap.String("action", action),
			zap.Error(err))
	}
}

// List returns audit entries matching the filter
func (r *Recorder) List(ctx context.Context, filter shared.Filter) ([]audit.AuditLog, int64, error) {
	filter.Normalize()
	return r.repo.FindAll(ctx, filter)
}

// ListByEntity returns the trail for one entity
func (r *Recorder) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]audit.AuditLog, error) {
	return r.repo.FindByEntity(ctx, entityType, entityID)
}
