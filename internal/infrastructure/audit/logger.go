package audit

import (
	"context"

	"github.com/you/elearnauth/domain"
	"github.com/you/elearnauth/internal/logging"
)

// LogAuditLogger implements domain.AuditLogger on top of the structured logger
type LogAuditLogger struct {
	log logging.Logger
}

// NewLogAuditLogger creates an audit logger writing through log
func NewLogAuditLogger(log logging.Logger) domain.AuditLogger {
	return &LogAuditLogger{log: log.With("audit", true)}
}

// LogEvent implements domain.AuditLogger
func (a *LogAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	args := []any{
		"event_type", string(event.EventType),
		"success", event.Success,
		"timestamp", event.Timestamp,
	}
	if event.AccountID != "" {
		args = append(args, "account_id", event.AccountID)
	}
	if event.Email != "" {
		args = append(args, "email", event.Email)
	}
	if event.ErrorMsg != "" {
		args = append(args, "error", event.ErrorMsg)
	}
	for k, v := range event.Metadata {
		args = append(args, k, v)
	}

	if event.Success {
		a.log.Info(ctx, "audit event", args...)
		return
	}
	a.log.Warn(ctx, "audit event", args...)
}
