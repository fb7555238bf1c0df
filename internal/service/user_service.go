package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/dojo-api/internal/dto"
	"github.com/noah-isme/dojo-api/internal/models"
	appErrors "github.com/noah-isme/dojo-api/pkg/errors"
)

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	UpsertRole(ctx context.Context, email, name string, role models.UserRole) (*models.User, error)
}

// UserService handles registration, role lookups and role management.
type UserService struct {
	repo      userRepository
	audit     *AuditService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, audit *AuditService, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// Register stores a user on first sign-in. Registering an existing email writes nothing.
func (s *UserService) Register(ctx context.Context, req dto.RegisterUserRequest) (*dto.RegisterUserResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	email := normalizeEmail(req.Email)
	created, err := s.repo.Create(ctx, &models.User{Email: email, Name: strings.TrimSpace(req.Name), PhotoURL: req.PhotoURL})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to register user")
	}
	if !created {
		return &dto.RegisterUserResult{Message: "user already exists"}, nil
	}
	return &dto.RegisterUserResult{InsertedID: &email, Created: true}, nil
}

// Get returns a user by email.
func (s *UserService) Get(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Internal(err, "failed to load user")
	}
	return user, nil
}

// HasRole reports whether email holds role. Unknown users hold no role.
func (s *UserService) HasRole(ctx context.Context, email string, role models.UserRole) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, appErrors.Internal(err, "failed to load user")
	}
	return user.HasRole(role), nil
}

// List returns all users ordered by role.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list users")
	}
	return users, nil
}

// ListInstructors returns every instructor.
func (s *UserService) ListInstructors(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListByRole(ctx, models.RoleInstructor)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list instructors")
	}
	return users, nil
}

// SetRole assigns a role, creating the user if needed, and records the change.
func (s *UserService) SetRole(ctx context.Context, req dto.SetRoleRequest, meta dto.RequestMeta) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid role payload")
	}
	role := models.UserRole(req.Role)
	if !role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}

	email := normalizeEmail(req.Email)
	user, err := s.repo.UpsertRole(ctx, email, strings.TrimSpace(req.Name), role)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to update role")
	}

	s.audit.Record(ctx, meta, models.AuditActionRoleChange, models.AuditResourceUser, email, map[string]interface{}{"role": role})
	s.logger.Info("user role updated", zap.String("email", email), zap.String("role", string(role)), zap.String("actor", meta.ActorEmail))
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
