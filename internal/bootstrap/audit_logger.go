package bootstrap

import "context"

// AuditLogger records process lifecycle events, separate from the per-request
// audit trail kept in the database.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}
