package services

import (
	"context"

	"github.com/boxboard/apiserver/types"
	"github.com/rs/zerolog/log"
)

// AuditLogRepository defines persistence operations for the operation log.
type AuditLogRepository interface {
	Append(ctx context.Context, entry types.AuditLogEntry) (types.AuditLogEntry, error)
	List(ctx context.Context, limit int) ([]types.AuditLogEntry, error)
}

// AuditService appends immutable operation records. Recording is
// best-effort: a failed append is logged and never fails the mutation
// that triggered it.
type AuditService struct {
	repo AuditLogRepository
}

func NewAuditService(repo AuditLogRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Record appends one entry. An actorID of zero means the acting user is
// unknown and the mutation goes unlogged.
func (s *AuditService) Record(ctx context.Context, actorID int, action, entity string, entityID int, details string) {
	if actorID == 0 {
		return
	}

	entry := types.AuditLogEntry{
		UserID:  &actorID,
		Action:  action,
		Entity:  entity,
		Details: details,
	}
	if entityID != 0 {
		entry.EntityID = &entityID
	}

	if _, err := s.repo.Append(ctx, entry); err != nil {
		log.Error().Err(err).
			Str("azione", action).
			Str("entita", entity).
			Int("entitaID", entityID).
			Msg("failed to append audit log entry")
	}
}

// List returns entries newest first; limit zero means unbounded.
func (s *AuditService) List(ctx context.Context, limit int) ([]types.AuditLogEntry, error) {
	return s.repo.List(ctx, limit)
}
