package bootstrap

import "context"

// AuditLog is a single operational audit event.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational events such as server lifecycle changes.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
