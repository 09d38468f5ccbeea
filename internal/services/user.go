package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/boxboard/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
	Delete(ctx context.Context, id int) error
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo  UserRepository
	audit *AuditService
}

func NewUserService(repo UserRepository, audit *AuditService) *UserService {
	return &UserService{repo: repo, audit: audit}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (types.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Create(ctx context.Context, user types.User, actorID int) (types.User, error) {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)
	if user.Name == "" {
		return types.User{}, fmt.Errorf("%w: nome is required", ErrValidation)
	}
	if user.Email == "" {
		return types.User{}, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if user.Role == "" {
		user.Role = types.RoleOperator
	}
	if !types.ValidRole(user.Role) {
		return types.User{}, fmt.Errorf("%w: unknown ruolo %q", ErrValidation, user.Role)
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return types.User{}, err
	}

	s.audit.Record(ctx, actorID, types.AuditActionCreate, "utente", created.ID,
		fmt.Sprintf("Aggiunto utente %s (%s) con ruolo %s", created.Name, created.Email, created.Role))
	return created, nil
}

// Update applies a partial update. Only non-nil patch fields change;
// the audit entry lists which fields changed.
func (s *UserService) Update(ctx context.Context, id int, patch types.UserPatch, actorID int) (types.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.User{}, err
	}

	var changed []string
	if patch.Name != nil && *patch.Name != user.Name {
		user.Name = *patch.Name
		changed = append(changed, "nome")
	}
	if patch.Role != nil && *patch.Role != user.Role {
		if !types.ValidRole(*patch.Role) {
			return types.User{}, fmt.Errorf("%w: unknown ruolo %q", ErrValidation, *patch.Role)
		}
		user.Role = *patch.Role
		changed = append(changed, "ruolo")
	}
	if patch.Email != nil && *patch.Email != user.Email {
		user.Email = strings.TrimSpace(*patch.Email)
		if user.Email == "" {
			return types.User{}, fmt.Errorf("%w: email is required", ErrValidation)
		}
		changed = append(changed, "email")
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return types.User{}, err
	}

	if len(changed) > 0 {
		s.audit.Record(ctx, actorID, types.AuditActionUpdate, "utente", updated.ID,
			fmt.Sprintf("Aggiornato utente %s, campi: %s", updated.Email, strings.Join(changed, ", ")))
	}
	return updated, nil
}

// SetPasswordHash replaces the stored password hash. The hash is
// computed by the caller; an empty hash disables login.
func (s *UserService) SetPasswordHash(ctx context.Context, id int, hash string, actorID int) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if _, err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, types.AuditActionUpdate, "utente", id,
		fmt.Sprintf("Password modificata per %s", user.Email))
	return nil
}

func (s *UserService) Delete(ctx context.Context, id int, actorID int) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, types.AuditActionDelete, "utente", id,
		fmt.Sprintf("Eliminato utente %s (%s)", user.Name, user.Email))
	return nil
}
