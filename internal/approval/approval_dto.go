package approval

type DecideRequest struct {
	LeaveID  string `json:"leave_id" binding:"required,uuid"`
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
}

type ApprovalResponse struct {
	ID         string `json:"id"`
	LeaveID    string `json:"leave_id"`
	ApprovedBy string `json:"approved_by"`
	Decision   string `json:"decision"`
	ApprovedAt string `json:"approved_at"`
}
