package users

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bluething/boostpo/internal/shared"
)

const (
	maxTextLength  = 500
	maxPhoneLength = 20
)

// AuditPort records user mutations.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service wires user use-cases to persistence and auditing.
type Service struct {
	repo   Repository
	audit  AuditPort
	logger *slog.Logger
}

func NewService(repo Repository, audit AuditPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// CreateUserInput carries all fields required for a new user.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Actor     string
}

// UpdateUserInput patches a user. Nil fields keep the stored value.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Actor     string
}

func (s *Service) List(ctx context.Context, req shared.PageRequest) ([]User, int64, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("user %d: %w", id, err)
	}
	return user, nil
}

func (s *Service) Create(ctx context.Context, input CreateUserInput) (User, error) {
	user := User{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
	}
	if err := validateFields(user); err != nil {
		return User{}, err
	}

	taken, err := s.repo.ExistsByEmail(ctx, user.Email, 0)
	if err != nil {
		return User{}, err
	}
	if taken {
		return User{}, fmt.Errorf("email %s: %w", user.Email, shared.ErrDuplicate)
	}

	now := time.Now().UTC()
	actor := shared.ActorOrSystem(input.Actor)
	user.CreatedBy = actor
	user.UpdatedBy = actor
	user.CreatedAt = now
	user.UpdatedAt = now

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return User{}, err
	}

	s.logger.Info("user created", slog.Int64("id", created.ID))
	s.recordAudit(ctx, "USER_CREATE", created.ID, actor, map[string]any{"email": created.Email})
	return created, nil
}

// Update merges the patch over the stored user. Unlike items and purchase
// orders this is not a full replace: absent fields survive.
func (s *Service) Update(ctx context.Context, id int64, input UpdateUserInput) (User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("user %d: %w", id, err)
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		user.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if err := validateFields(user); err != nil {
		return User{}, err
	}

	taken, err := s.repo.ExistsByEmail(ctx, user.Email, id)
	if err != nil {
		return User{}, err
	}
	if taken {
		return User{}, fmt.Errorf("email %s: %w", user.Email, shared.ErrDuplicate)
	}

	actor := shared.ActorOrSystem(input.Actor)
	user.UpdatedBy = actor
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return User{}, err
	}

	s.logger.Info("user updated", slog.Int64("id", user.ID))
	s.recordAudit(ctx, "USER_UPDATE", user.ID, actor, map[string]any{"email": user.Email})
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id int64, actor string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("user %d: %w", id, shared.ErrNotFound)
	}

	s.logger.Info("user deleted", slog.Int64("id", id))
	s.recordAudit(ctx, "USER_DELETE", id, shared.ActorOrSystem(actor), nil)
	return nil
}

func validateFields(user User) error {
	switch {
	case user.FirstName == "":
		return fmt.Errorf("first name is required: %w", shared.ErrValidation)
	case len(user.FirstName) > maxTextLength:
		return fmt.Errorf("first name exceeds %d characters: %w", maxTextLength, shared.ErrValidation)
	case user.LastName == "":
		return fmt.Errorf("last name is required: %w", shared.ErrValidation)
	case len(user.LastName) > maxTextLength:
		return fmt.Errorf("last name exceeds %d characters: %w", maxTextLength, shared.ErrValidation)
	case user.Email == "":
		return fmt.Errorf("email is required: %w", shared.ErrValidation)
	case len(user.Email) > maxTextLength:
		return fmt.Errorf("email exceeds %d characters: %w", maxTextLength, shared.ErrValidation)
	case len(user.Phone) > maxPhoneLength:
		return fmt.Errorf("phone exceeds %d characters: %w", maxPhoneLength, shared.ErrValidation)
	}
	return nil
}

func (s *Service) recordAudit(ctx context.Context, action string, id int64, actor string, meta map[string]any) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		Actor:    actor,
		Action:   action,
		Entity:   "user",
		EntityID: fmt.Sprintf("%d", id),
		Ref:      shared.EventRef("user", id),
		Meta:     meta,
	})
	if err != nil {
		s.logger.Warn("audit record failed",
			slog.String("action", action), slog.Int64("id", id), slog.Any("error", err))
	}
}
