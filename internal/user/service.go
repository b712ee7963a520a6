package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/project-dashboard/internal"
	"github.com/frahmantamala/project-dashboard/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/user"
	"github.com/frahmantamala/project-dashboard/internal/core/events"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

// RepositoryAPI lookups return (nil, nil) when no row matches.
type RepositoryAPI interface {
	Create(ctx context.Context, u *userDatamodel.User) error
	GetByID(ctx context.Context, id string) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	List(ctx context.Context) ([]*userDatamodel.User, error)
	ListByRole(ctx context.Context, role string) ([]*userDatamodel.User, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo       RepositoryAPI
	publisher  EventPublisher
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, publisher EventPublisher, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		publisher:  publisher,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func validateAccount(req AccountRequest) error {
	v := validation.NewValidator()
	v.Field("role", string(req.Role())).Required(errors.ErrCodeInvalidRole).OneOf(errors.ErrCodeInvalidRole, string(RoleEmployee), string(RoleClient))
	v.Field("email", req.Email).Required(errors.ErrCodeInvalidEmail).Email(errors.ErrCodeInvalidEmail)
	v.Field("full_name", req.FullName).Required(errors.ErrCodeValidationFailed).MaxLength(255)
	v.Field("password", req.Password).Required(errors.ErrCodePasswordTooShort).MinLength(MinPasswordLength, errors.ErrCodePasswordTooShort)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// CreateAccount registers an employee or client account.
func (s *Service) CreateAccount(ctx context.Context, req AccountRequest) (*User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	if err := validateAccount(req); err != nil {
		s.logger.Warn("account request rejected", "email", req.Email, "role", req.Role(), "error", err)
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("failed to look up email", "email", req.Email, "error", err)
		return nil, errors.NewInternalError("Failed to create user", err)
	}
	if existing != nil {
		return nil, errors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, errors.NewInternalError("Failed to create user", fmt.Errorf("hash password: %w", err))
	}

	u := &User{
		ID:           uuid.NewString(),
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         req.Role(),
		PasswordHash: string(hash),
		IsActive:     true,
	}

	row := ToDataModel(u)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to persist user", "email", req.Email, "error", err)
		return nil, errors.NewInternalError("Failed to create user", err)
	}
	created := FromDataModel(row)

	s.logger.Info("user account created", "user_id", created.ID, "role", created.Role)
	s.publish(ctx, events.NewUserCreatedEvent(created.ID, created.Email, string(created.Role)))

	return created, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	if row == nil {
		return nil, errors.ErrUserNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return fromRows(rows), nil
}

func (s *Service) ListByRole(ctx context.Context, role Role) ([]*User, error) {
	rows, err := s.repo.ListByRole(ctx, string(role))
	if err != nil {
		s.logger.Error("failed to list users by role", "role", role, "error", err)
		return nil, err
	}
	return fromRows(rows), nil
}

func fromRows(rows []*userDatamodel.User) []*User {
	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users
}
