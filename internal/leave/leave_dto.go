package leave

type CreateLeaveRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	TypeID     string  `json:"type_id" binding:"required,uuid"`
	StartTime  string  `json:"start_time" binding:"required"`
	EndTime    string  `json:"end_time" binding:"required"`
	Reason     *string `json:"reason" binding:"omitempty,max=500"`
}

type LeaveResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	TypeID     string  `json:"type_id"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Reason     *string `json:"reason,omitempty"`
	Status     string  `json:"status"`
	Days       int     `json:"days"`
	CreatedAt  string  `json:"created_at"`
}
