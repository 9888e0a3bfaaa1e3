package ports

import (
	"context"
	"time"
)

// RegistrationEvent is the audit payload emitted after a registration has
// been persisted. It never flows back into the registration state machine.
type RegistrationEvent struct {
	UserID     string
	Email      string
	Role       string
	OccurredAt time.Time
}

// AuditService records registration events to the audit trail.
type AuditService interface {
	Record(ctx context.Context, event RegistrationEvent) error
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event RegistrationEvent) error
}

// AuditDispatcher decouples the registration path from audit persistence.
// Enqueue must not block the caller beyond channel buffering.
type AuditDispatcher interface {
	Enqueue(event RegistrationEvent)
}
