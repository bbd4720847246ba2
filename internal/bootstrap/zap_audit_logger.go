package bootstrap

import (
	"context"

	"leavedesk/internal/shared/contextutil"

	"go.uber.org/zap"
)

// ZapAuditLogger writes audit events through the process logger. Lifecycle
// events raised inside a request carry the request id from the context;
// operational events (startup, shutdown) have none.
type ZapAuditLogger struct {
	logger *zap.Logger
}

func NewZapAuditLogger(logger ...*zap.Logger) *ZapAuditLogger {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit")
	}
	return &ZapAuditLogger{logger: l}
}

func (l *ZapAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}

	l.logger.Info("audit event", fields...)
}
