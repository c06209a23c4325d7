package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditLog records who did what to which entity. Entries are written
// after the business transaction commits and are best-effort: a failed
// audit write never rolls back the action it describes.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	EntityType string    `gorm:"size:50;not null;index"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Action     string    `gorm:"size:50;not null;index"`
	OldValues  string    `gorm:"type:jsonb"`
	NewValues  string    `gorm:"type:jsonb"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditLog) TableName() string {
	return "audit_logs"
}

// NewAuditLog builds an entry, serializing the value snapshots to JSON.
// Snapshots that fail to marshal are recorded as empty rather than
// failing the entry.
func NewAuditLog(userID uuid.UUID, entityType string, entityID uuid.UUID, action string, oldValues, newValues any) *AuditLog {
	return &AuditLog{
		ID:         uuid.New(),
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		OldValues:  marshalSnapshot(oldValues),
		NewValues:  marshalSnapshot(newValues),
		CreatedAt:  time.Now(),
	}
}

func marshalSnapshot(v any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
