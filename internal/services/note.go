package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/boxboard/apiserver/types"
)

// NoteRepository defines persistence operations for notes.
type NoteRepository interface {
	Get(ctx context.Context, id int) (types.Note, error)
	List(ctx context.Context, filter types.NoteFilter) ([]types.Note, error)
	Create(ctx context.Context, note types.Note) (types.Note, error)
	Update(ctx context.Context, note types.Note) (types.Note, error)
	Delete(ctx context.Context, id int) error
}

// NoteService encapsulates note use-cases.
type NoteService struct {
	repo  NoteRepository
	audit *AuditService
}

func NewNoteService(repo NoteRepository, audit *AuditService) *NoteService {
	return &NoteService{repo: repo, audit: audit}
}

func (s *NoteService) Get(ctx context.Context, id int) (types.Note, error) {
	return s.repo.Get(ctx, id)
}

func (s *NoteService) List(ctx context.Context, filter types.NoteFilter) ([]types.Note, error) {
	return s.repo.List(ctx, filter)
}

func (s *NoteService) Create(ctx context.Context, note types.Note, actorID int) (types.Note, error) {
	note.Text = strings.TrimSpace(note.Text)
	if note.Text == "" {
		return types.Note{}, fmt.Errorf("%w: testo is required", ErrValidation)
	}

	created, err := s.repo.Create(ctx, note)
	if err != nil {
		return types.Note{}, err
	}

	s.audit.Record(ctx, actorID, types.AuditActionCreate, "nota", created.ID, "Aggiunta nota")
	return created, nil
}

func (s *NoteService) Update(ctx context.Context, id int, patch types.NotePatch, actorID int) (types.Note, error) {
	note, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Note{}, err
	}

	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return types.Note{}, fmt.Errorf("%w: testo is required", ErrValidation)
		}
		note.Text = text
	}
	note.ItemID = patchReference(note.ItemID, patch.ItemID)
	note.ActivityID = patchReference(note.ActivityID, patch.ActivityID)
	note.LocationID = patchReference(note.LocationID, patch.LocationID)
	note.AuthorID = patchReference(note.AuthorID, patch.AuthorID)

	updated, err := s.repo.Update(ctx, note)
	if err != nil {
		return types.Note{}, err
	}

	s.audit.Record(ctx, actorID, types.AuditActionUpdate, "nota", updated.ID, "Aggiornata nota")
	return updated, nil
}

func (s *NoteService) Delete(ctx context.Context, id int, actorID int) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, types.AuditActionDelete, "nota", id, "Eliminata nota")
	return nil
}

// patchReference applies the partial-update convention for nullable
// references: nil leaves the value, zero clears it, anything else sets it.
func patchReference(current *int, patch *int) *int {
	if patch == nil {
		return current
	}
	if *patch == 0 {
		return nil
	}
	value := *patch
	return &value
}
