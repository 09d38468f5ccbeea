package services

import (
	"context"
	"fmt"
	"time"

	"github.com/boxboard/apiserver/types"
)

// AssignmentRepository defines persistence operations for assignments.
type AssignmentRepository interface {
	Get(ctx context.Context, id int) (types.Assignment, error)
	List(ctx context.Context) ([]types.Assignment, error)
	Create(ctx context.Context, assignment types.Assignment) (types.Assignment, error)
	Update(ctx context.Context, assignment types.Assignment) (types.Assignment, error)
	Delete(ctx context.Context, id int) error
}

// AssignmentService encapsulates item-activity assignment use-cases.
type AssignmentService struct {
	repo  AssignmentRepository
	audit *AuditService
}

func NewAssignmentService(repo AssignmentRepository, audit *AuditService) *AssignmentService {
	return &AssignmentService{repo: repo, audit: audit}
}

func (s *AssignmentService) Get(ctx context.Context, id int) (types.Assignment, error) {
	return s.repo.Get(ctx, id)
}

func (s *AssignmentService) List(ctx context.Context) ([]types.Assignment, error) {
	return s.repo.List(ctx)
}

func (s *AssignmentService) Create(ctx context.Context, assignment types.Assignment, actorID int) (types.Assignment, error) {
	if assignment.ItemID == 0 {
		return types.Assignment{}, fmt.Errorf("%w: oggetto_id is required", ErrValidation)
	}
	if assignment.ActivityID == 0 {
		return types.Assignment{}, fmt.Errorf("%w: attivita_id is required", ErrValidation)
	}

	created, err := s.repo.Create(ctx, assignment)
	if err != nil {
		return types.Assignment{}, err
	}

	s.audit.Record(ctx, actorID, types.AuditActionCreate, "oggetto_attivita", created.ID,
		fmt.Sprintf("Assegnata attivita %d a oggetto %d", created.ActivityID, created.ItemID))
	return created, nil
}

// Update applies a partial update. Completing an assignment without an
// explicit completion date stamps today; a supplied zero date or
// assignee clears the field.
func (s *AssignmentService) Update(ctx context.Context, id int, patch types.AssignmentPatch, actorID int) (types.Assignment, error) {
	assignment, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Assignment{}, err
	}

	if patch.Completed != nil {
		assignment.Completed = *patch.Completed
	}
	if patch.PlannedDate != nil {
		if patch.PlannedDate.IsZero() {
			assignment.PlannedDate = nil
		} else {
			plannedDate := *patch.PlannedDate
			assignment.PlannedDate = &plannedDate
		}
	}
	if patch.CompletedDate != nil {
		if patch.CompletedDate.IsZero() {
			assignment.CompletedDate = nil
		} else {
			completedDate := *patch.CompletedDate
			assignment.CompletedDate = &completedDate
		}
	}
	if patch.AssigneeID != nil {
		if *patch.AssigneeID == 0 {
			assignment.AssigneeID = nil
		} else {
			assigneeID := *patch.AssigneeID
			assignment.AssigneeID = &assigneeID
		}
	}
	if assignment.Completed && assignment.CompletedDate == nil {
		now := time.Now()
		assignment.CompletedDate = &now
	}

	updated, err := s.repo.Update(ctx, assignment)
	if err != nil {
		return types.Assignment{}, err
	}

	s.audit.Record(ctx, actorID, types.AuditActionUpdate, "oggetto_attivita", updated.ID,
		fmt.Sprintf("Aggiornata assegnazione %d (completata=%t)", updated.ID, updated.Completed))
	return updated, nil
}

func (s *AssignmentService) Delete(ctx context.Context, id int, actorID int) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, types.AuditActionDelete, "oggetto_attivita", id,
		fmt.Sprintf("Eliminata assegnazione %d", id))
	return nil
}
