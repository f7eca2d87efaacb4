package balance

import (
	"time"

	"github.com/google/uuid"

	"leavedesk/internal/employee"
	"leavedesk/internal/leavetype"
)

// LeaveBalance keeps one allocation per (employee, leave type). The
// remaining column is maintained alongside total_used by the guarded debit
// so that remaining == total_allocated - total_used at all times.
type LeaveBalance struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_balance_employee_type"`
	TypeID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_balance_employee_type"`
	TotalAllocated int       `gorm:"not null"`
	TotalUsed      int       `gorm:"not null;default:0"`
	Remaining      int       `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Employee  *employee.Employee   `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	LeaveType *leavetype.LeaveType `gorm:"foreignKey:TypeID;constraint:OnDelete:CASCADE"`
}
