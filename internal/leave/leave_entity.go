package leave

import (
	"time"

	"github.com/google/uuid"

	"leavedesk/internal/employee"
	"leavedesk/internal/leavetype"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Leave is a single request. Status leaves "pending" exactly once, through
// the approval workflow's guarded transition; "approved" and "rejected" are
// terminal.
type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	TypeID     uuid.UUID `gorm:"type:uuid;not null;index"`
	StartTime  time.Time `gorm:"not null"`
	EndTime    time.Time `gorm:"not null"`
	Reason     *string   `gorm:"type:text"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt  time.Time

	Employee  *employee.Employee   `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	LeaveType *leavetype.LeaveType `gorm:"foreignKey:TypeID;constraint:OnDelete:CASCADE"`
}

// InclusiveDays is the debit amount for an approved request:
// whole days between start and end, counting both endpoints.
func (l Leave) InclusiveDays() int {
	return int(l.EndTime.Sub(l.StartTime).Hours()/24) + 1
}
