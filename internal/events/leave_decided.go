package events

import "time"

const LeaveDecidedTopic = "leave.request.decisions.v1"

const (
	EventTypeLeaveApproved = "leave.approved"
	EventTypeLeaveRejected = "leave.rejected"
)

// LeaveDecidedEvent is published after a decision commits, via the outbox.
type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	TypeID     string    `json:"type_id"`
	ManagerID  string    `json:"manager_id"`
	Decision   string    `json:"decision"`
	Days       int       `json:"days"`
	OccurredAt time.Time `json:"occurred_at"`
}
