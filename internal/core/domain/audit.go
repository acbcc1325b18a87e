package domain

import "time"

// AuditAction identifies the lifecycle event being recorded.
type AuditAction string

const (
	AuditUserCreated AuditAction = "user.created"
	AuditUserLogin   AuditAction = "user.login"
	AuditUserUpdated AuditAction = "user.updated"
	AuditUserDeleted AuditAction = "user.deleted"
)

// AuditEvent is an append-only record of a user lifecycle transition.
// Recording is best-effort and asynchronous; a lost event never fails
// the request that produced it.
type AuditEvent struct {
	UserID    string      `bson:"user_id"`
	Action    AuditAction `bson:"action"`
	Actor     string      `bson:"actor,omitempty"`
	Timestamp time.Time   `bson:"timestamp"`
}
