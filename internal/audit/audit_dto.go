package audit

type AuditLogResponse struct {
	ID          string `json:"id"`
	ActorType   string `json:"actor_type"`
	ActorID     string `json:"actor_id"`
	Action      string `json:"action"`
	TargetTable string `json:"target_table"`
	TargetID    string `json:"target_id"`
	Timestamp   string `json:"timestamp"`
}
