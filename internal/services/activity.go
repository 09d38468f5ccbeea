package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/boxboard/apiserver/types"
)

// ActivityRepository defines persistence operations for the activity catalog.
type ActivityRepository interface {
	Get(ctx context.Context, id int) (types.Activity, error)
	List(ctx context.Context) ([]types.Activity, error)
	Create(ctx context.Context, activity types.Activity) (types.Activity, error)
	Update(ctx context.Context, activity types.Activity) (types.Activity, error)
	Delete(ctx context.Context, id int) error
}

// ActivityService encapsulates activity catalog use-cases.
type ActivityService struct {
	repo  ActivityRepository
	audit *AuditService
}

func NewActivityService(repo ActivityRepository, audit *AuditService) *ActivityService {
	return &ActivityService{repo: repo, audit: audit}
}

func (s *ActivityService) Get(ctx context.Context, id int) (types.Activity, error) {
	return s.repo.Get(ctx, id)
}

func (s *ActivityService) List(ctx context.Context) ([]types.Activity, error) {
	return s.repo.List(ctx)
}

func (s *ActivityService) Create(ctx context.Context, activity types.Activity, actorID int) (types.Activity, error) {
	activity.Name = strings.TrimSpace(activity.Name)
	if activity.Name == "" {
		return types.Activity{}, fmt.Errorf("%w: nome is required", ErrValidation)
	}

	created, err := s.repo.Create(ctx, activity)
	if err != nil {
		return types.Activity{}, err
	}

	s.audit.Record(ctx, actorID, types.AuditActionCreate, "attivita", created.ID,
		fmt.Sprintf("Aggiunta attivita %s", created.Name))
	return created, nil
}

func (s *ActivityService) Update(ctx context.Context, id int, patch types.ActivityPatch, actorID int) (types.Activity, error) {
	activity, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Activity{}, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return types.Activity{}, fmt.Errorf("%w: nome is required", ErrValidation)
		}
		activity.Name = name
	}
	if patch.Description != nil {
		activity.Description = *patch.Description
	}

	updated, err := s.repo.Update(ctx, activity)
	if err != nil {
		return types.Activity{}, err
	}

	s.audit.Record(ctx, actorID, types.AuditActionUpdate, "attivita", updated.ID,
		fmt.Sprintf("Aggiornata attivita %s", updated.Name))
	return updated, nil
}

func (s *ActivityService) Delete(ctx context.Context, id int, actorID int) error {
	activity, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, types.AuditActionDelete, "attivita", id,
		fmt.Sprintf("Eliminata attivita %s", activity.Name))
	return nil
}
