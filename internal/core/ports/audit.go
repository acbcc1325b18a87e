package ports

import (
	"context"

	"github.com/mongotech/users-api/internal/core/domain"
)

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditRecorder accepts lifecycle events for asynchronous recording.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}
