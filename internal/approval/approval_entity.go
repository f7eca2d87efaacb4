package approval

import (
	"time"

	"github.com/google/uuid"

	"leavedesk/internal/leave"
	"leavedesk/internal/manager"
)

// Approval records the single decision taken on a leave request. The unique
// index on LeaveID is the storage-level guarantee that a request is decided
// at most once, even if two deciders race past the status check.
type Approval struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LeaveID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ApprovedBy uuid.UUID `gorm:"type:uuid;not null;index"`
	Decision   string    `gorm:"type:varchar(20);not null"`
	ApprovedAt time.Time `gorm:"not null"`

	Leave   *leave.Leave     `gorm:"foreignKey:LeaveID;constraint:OnDelete:CASCADE"`
	Manager *manager.Manager `gorm:"foreignKey:ApprovedBy"`
}
