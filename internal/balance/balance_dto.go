package balance

type CreateBalanceRequest struct {
	EmployeeID     string `json:"employee_id" binding:"required,uuid"`
	TypeID         string `json:"type_id" binding:"required,uuid"`
	TotalAllocated int    `json:"total_allocated" binding:"required,gt=0"`
}

type BalanceResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	TypeID         string `json:"type_id"`
	TotalAllocated int    `json:"total_allocated"`
	TotalUsed      int    `json:"total_used"`
	Remaining      int    `json:"remaining"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}
