package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mongotech/users-api/internal/core/domain"
	"github.com/mongotech/users-api/internal/core/ports"
)

// AuditService persists a single audit event. It sits behind the queue
// dispatcher, which owns ordering and concurrency.
type AuditService struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, logger zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

func (s *AuditService) Process(ctx context.Context, event domain.AuditEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return err
	}
	s.logger.Debug().
		Str("user_id", event.UserID).
		Str("action", string(event.Action)).
		Msg("audit event recorded")
	return nil
}
