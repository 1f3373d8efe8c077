// Package logsink writes audit events as structured log lines.
package logsink

import (
	"context"
	"log/slog"

	audit "samiti/pkg/platform/audit"
)

// Sink is an audit.Store backed by slog.
type Sink struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Sink {
	return &Sink{logger: logger}
}

func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	s.logger.InfoContext(ctx, event.Action,
		"log_type", "audit",
		"category", string(event.Category),
		"actor_id", event.ActorID,
		"subject_type", event.SubjectType,
		"subject_id", event.SubjectID,
		"reason", event.Reason,
		"client_ip", event.ClientIP,
		"user_agent", event.UserAgent,
		"trace_id", event.TraceID,
		"request_id", event.RequestID,
	)
	return nil
}
