package ports

import (
	"context"
	"time"
)

// AuditEntry records the outcome of an authentication operation.
type AuditEntry struct {
	Subject   string    // normalized username the entry refers to
	Action    string    // "register" or "login"
	Outcome   string    // "success" or a short failure reason
	Timestamp time.Time
}

// AuditRecorder accepts entries for asynchronous persistence. Enqueueing
// is best effort and must never block a request path.
type AuditRecorder interface {
	Record(entry AuditEntry)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *AuditEntry) error
}
