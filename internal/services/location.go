package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/boxboard/apiserver/types"
)

// LocationRepository defines persistence operations for locations.
type LocationRepository interface {
	Get(ctx context.Context, id int) (types.Location, error)
	List(ctx context.Context) ([]types.Location, error)
	Create(ctx context.Context, location types.Location) (types.Location, error)
	Update(ctx context.Context, location types.Location) (types.Location, error)
	Delete(ctx context.Context, id int) error
}

// LocationService encapsulates location use-cases.
type LocationService struct {
	repo  LocationRepository
	audit *AuditService
}

func NewLocationService(repo LocationRepository, audit *AuditService) *LocationService {
	return &LocationService{repo: repo, audit: audit}
}

func (s *LocationService) Get(ctx context.Context, id int) (types.Location, error) {
	return s.repo.Get(ctx, id)
}

func (s *LocationService) List(ctx context.Context) ([]types.Location, error) {
	return s.repo.List(ctx)
}

func (s *LocationService) Create(ctx context.Context, location types.Location, actorID int) (types.Location, error) {
	location.Name = strings.TrimSpace(location.Name)
	if location.Name == "" {
		return types.Location{}, fmt.Errorf("%w: nome is required", ErrValidation)
	}

	created, err := s.repo.Create(ctx, location)
	if err != nil {
		return types.Location{}, err
	}

	s.audit.Record(ctx, actorID, types.AuditActionCreate, "location", created.ID,
		fmt.Sprintf("Aggiunta location %s", created.Name))
	return created, nil
}

func (s *LocationService) Update(ctx context.Context, id int, patch types.LocationPatch, actorID int) (types.Location, error) {
	location, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Location{}, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return types.Location{}, fmt.Errorf("%w: nome is required", ErrValidation)
		}
		location.Name = name
	}
	if patch.Address != nil {
		location.Address = *patch.Address
	}
	if patch.Notes != nil {
		location.Notes = *patch.Notes
	}

	updated, err := s.repo.Update(ctx, location)
	if err != nil {
		return types.Location{}, err
	}

	s.audit.Record(ctx, actorID, types.AuditActionUpdate, "location", updated.ID,
		fmt.Sprintf("Aggiornata location %s", updated.Name))
	return updated, nil
}

func (s *LocationService) Delete(ctx context.Context, id int, actorID int) error {
	location, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, types.AuditActionDelete, "location", id,
		fmt.Sprintf("Eliminata location %s", location.Name))
	return nil
}
