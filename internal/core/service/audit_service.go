package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aseds/hive-platform/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that writes registration events to
// the audit trail. Failures are surfaced to the caller (the dispatcher) and
// logged there; they never reach the registration flow.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Record(ctx context.Context, event ports.RegistrationEvent) error {
	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("record registration event: %w", err)
	}

	s.log.Debug().
		Str("user_id", event.UserID).
		Str("role", event.Role).
		Msg("registration event recorded")
	return nil
}
