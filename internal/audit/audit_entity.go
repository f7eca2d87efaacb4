package audit

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActorAdmin    = "admin"
	ActorManager  = "manager"
	ActorEmployee = "employee"
)

func ValidActorType(t string) bool {
	return t == ActorAdmin || t == ActorManager || t == ActorEmployee
}

// AuditLog rows are append-only; nothing in the codebase updates or deletes
// them.
type AuditLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ActorType   string    `gorm:"type:varchar(20);not null;index:idx_audit_logs_actor"`
	ActorID     uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_logs_actor"`
	Action      string    `gorm:"type:text;not null"`
	TargetTable string    `gorm:"type:varchar(50);not null"`
	TargetID    uuid.UUID `gorm:"type:uuid;not null"`
	Timestamp   time.Time `gorm:"not null;index:idx_audit_logs_timestamp,sort:desc"`
}
