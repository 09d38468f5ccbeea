package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/boxboard/apiserver/internal/store"
	"github.com/boxboard/apiserver/types"
)

// maxContainerDepth bounds the container-chain walk so a cycle already
// present in the data cannot hang a write.
const maxContainerDepth = 100

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	Get(ctx context.Context, id int) (types.Item, error)
	List(ctx context.Context, filter types.ItemFilter) ([]types.Item, error)
	Create(ctx context.Context, item types.Item) (types.Item, error)
	Update(ctx context.Context, item types.Item) (types.Item, error)
	SetPhoto(ctx context.Context, id int, key, mime string) error
	Delete(ctx context.Context, id int) error
}

// ItemService encapsulates item use-cases, including the containment
// invariants: a container reference must point at a container, and
// container chains must stay acyclic.
type ItemService struct {
	repo  ItemRepository
	audit *AuditService
}

func NewItemService(repo ItemRepository, audit *AuditService) *ItemService {
	return &ItemService{repo: repo, audit: audit}
}

func (s *ItemService) Get(ctx context.Context, id int) (types.Item, error) {
	return s.repo.Get(ctx, id)
}

func (s *ItemService) List(ctx context.Context, filter types.ItemFilter) ([]types.Item, error) {
	if filter.Status != "" && !types.ValidItemStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown stato %q", ErrValidation, filter.Status)
	}
	if filter.Kind != "" && !types.ValidItemKind(filter.Kind) {
		return nil, fmt.Errorf("%w: unknown tipo %q", ErrValidation, filter.Kind)
	}
	return s.repo.List(ctx, filter)
}

func (s *ItemService) Create(ctx context.Context, item types.Item, actorID int) (types.Item, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return types.Item{}, fmt.Errorf("%w: nome is required", ErrValidation)
	}
	if item.Status == "" {
		item.Status = types.ItemStatusToRemove
	}
	if !types.ValidItemStatus(item.Status) {
		return types.Item{}, fmt.Errorf("%w: unknown stato %q", ErrValidation, item.Status)
	}
	if item.Kind == "" {
		item.Kind = types.ItemKindPlain
	}
	if !types.ValidItemKind(item.Kind) {
		return types.Item{}, fmt.Errorf("%w: unknown tipo %q", ErrValidation, item.Kind)
	}
	if item.ContainerID != nil {
		if err := s.validateContainer(ctx, 0, *item.ContainerID); err != nil {
			return types.Item{}, err
		}
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return types.Item{}, err
	}

	s.audit.Record(ctx, actorID, types.AuditActionCreate, "oggetto", created.ID,
		fmt.Sprintf("Aggiunto oggetto %s (%s)", created.Name, created.Kind))
	return created, nil
}

func (s *ItemService) Update(ctx context.Context, id int, patch types.ItemPatch, actorID int) (types.Item, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Item{}, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return types.Item{}, fmt.Errorf("%w: nome is required", ErrValidation)
		}
		item.Name = name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Status != nil {
		if !types.ValidItemStatus(*patch.Status) {
			return types.Item{}, fmt.Errorf("%w: unknown stato %q", ErrValidation, *patch.Status)
		}
		item.Status = *patch.Status
	}
	if patch.Kind != nil {
		if !types.ValidItemKind(*patch.Kind) {
			return types.Item{}, fmt.Errorf("%w: unknown tipo %q", ErrValidation, *patch.Kind)
		}
		// A container cannot stop being one while items still sit inside
		// it; their contenitore_id would point at a non-container.
		if item.Kind == types.ItemKindContainer && *patch.Kind != types.ItemKindContainer {
			contents, err := s.repo.List(ctx, types.ItemFilter{ContainerID: id})
			if err != nil {
				return types.Item{}, err
			}
			if len(contents) > 0 {
				return types.Item{}, fmt.Errorf("%w: contenitore %d still holds %d items", ErrValidation, id, len(contents))
			}
		}
		item.Kind = *patch.Kind
	}
	if patch.LocationID != nil {
		if *patch.LocationID == 0 {
			item.LocationID = nil
		} else {
			locationID := *patch.LocationID
			item.LocationID = &locationID
		}
	}
	if patch.ContainerID != nil {
		if *patch.ContainerID == 0 {
			item.ContainerID = nil
		} else {
			containerID := *patch.ContainerID
			if err := s.validateContainer(ctx, id, containerID); err != nil {
				return types.Item{}, err
			}
			item.ContainerID = &containerID
		}
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return types.Item{}, err
	}

	s.audit.Record(ctx, actorID, types.AuditActionUpdate, "oggetto", updated.ID,
		fmt.Sprintf("Aggiornato oggetto %s", updated.Name))
	return updated, nil
}

// SetPhoto records the storage key of an uploaded photo.
func (s *ItemService) SetPhoto(ctx context.Context, id int, key, mime string, actorID int) error {
	if err := s.repo.SetPhoto(ctx, id, key, mime); err != nil {
		return err
	}
	s.audit.Record(ctx, actorID, types.AuditActionUpdate, "oggetto", id, "Foto aggiornata")
	return nil
}

func (s *ItemService) Delete(ctx context.Context, id int, actorID int) error {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, types.AuditActionDelete, "oggetto", id,
		fmt.Sprintf("Eliminato oggetto %s", item.Name))
	return nil
}

// validateContainer checks that containerID references an existing item
// of kind contenitore, and that placing itemID inside it does not close
// a containment cycle. itemID is zero for a not-yet-created item.
func (s *ItemService) validateContainer(ctx context.Context, itemID, containerID int) error {
	if itemID != 0 && containerID == itemID {
		return fmt.Errorf("%w: an item cannot contain itself", ErrValidation)
	}

	container, err := s.repo.Get(ctx, containerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: contenitore %d does not exist", ErrValidation, containerID)
		}
		return err
	}
	if container.Kind != types.ItemKindContainer {
		return fmt.Errorf("%w: item %d is not a contenitore", ErrValidation, containerID)
	}

	// Walk up from the proposed parent; reaching itemID means a cycle.
	current := container
	for depth := 0; current.ContainerID != nil; depth++ {
		if depth >= maxContainerDepth {
			return fmt.Errorf("%w: container chain too deep", ErrValidation)
		}
		parentID := *current.ContainerID
		if itemID != 0 && parentID == itemID {
			return fmt.Errorf("%w: container chain would form a cycle", ErrValidation)
		}
		current, err = s.repo.Get(ctx, parentID)
		if err != nil {
			return err
		}
	}
	return nil
}
