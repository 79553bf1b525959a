package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const auditService = "leave-api"

// StdoutAuditLogger renders audit events through the process logger, tagged
// with the service name so aggregated logs can be filtered per service.
type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	zap.L().Named("audit").Info("audit event",
		zap.String("service", auditService),
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
