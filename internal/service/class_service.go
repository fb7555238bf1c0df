package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/noah-isme/dojo-api/internal/dto"
	"github.com/noah-isme/dojo-api/internal/models"
	appErrors "github.com/noah-isme/dojo-api/pkg/errors"
)

type classRepository interface {
	Create(ctx context.Context, class *models.ClassOffering) error
	FindByID(ctx context.Context, id string) (*models.ClassOffering, error)
	List(ctx context.Context) ([]models.ClassOffering, error)
	ListApproved(ctx context.Context) ([]models.ClassOffering, error)
	ListPopular(ctx context.Context, limit int) ([]models.ClassOffering, error)
	ListByInstructor(ctx context.Context, email string) ([]models.ClassOffering, error)
	UpdateStatus(ctx context.Context, id string, status models.ClassStatus, feedback string) (*models.ClassOffering, error)
}

// ClassService manages class offerings and their public listings.
type ClassService struct {
	repo      classRepository
	cache     *CacheService
	cacheTTL  time.Duration
	audit     *AuditService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs a ClassService.
func NewClassService(repo classRepository, cache *CacheService, cacheTTL time.Duration, audit *AuditService, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ClassService{repo: repo, cache: cache, cacheTTL: cacheTTL, audit: audit, validator: validate, logger: logger}
}

// Create publishes a class for the instructor; it stays pending until an admin approves it.
func (s *ClassService) Create(ctx context.Context, req dto.CreateClassRequest, instructor *models.User) (*models.ClassOffering, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	if instructor == nil {
		return nil, appErrors.ErrForbidden
	}

	id := uuid.NewString()
	name := strings.TrimSpace(req.Name)
	class := &models.ClassOffering{
		ID:              id,
		Name:            name,
		Slug:            classSlug(name, id),
		Image:           req.Image,
		InstructorName:  instructor.Name,
		InstructorEmail: instructor.Email,
		Price:           req.Price,
		AvailableSeats:  req.AvailableSeats,
		Status:          models.ClassStatusPending,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Internal(err, "failed to create class")
	}
	s.logger.Info("class created", zap.String("class_id", class.ID), zap.String("instructor", instructor.Email))
	return class, nil
}

// Get returns a class by id.
func (s *ClassService) Get(ctx context.Context, id string) (*models.ClassOffering, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Internal(err, "failed to load class")
	}
	return class, nil
}

// ListAll returns every class regardless of status.
func (s *ClassService) ListAll(ctx context.Context) ([]models.ClassOffering, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list classes")
	}
	return classes, nil
}

// ListApproved returns approved classes, served from cache when possible.
func (s *ClassService) ListApproved(ctx context.Context) ([]models.ClassOffering, error) {
	return s.cached(ctx, CacheKeyApprovedClasses, func() ([]models.ClassOffering, error) {
		return s.repo.ListApproved(ctx)
	})
}

// ListHome returns the most popular approved classes for the landing page.
func (s *ClassService) ListHome(ctx context.Context) ([]models.ClassOffering, error) {
	return s.cached(ctx, CacheKeyHomeClasses, func() ([]models.ClassOffering, error) {
		return s.repo.ListPopular(ctx, models.HomeClassesLimit)
	})
}

// ListByInstructor returns the classes taught by email.
func (s *ClassService) ListByInstructor(ctx context.Context, email string) ([]models.ClassOffering, error) {
	classes, err := s.repo.ListByInstructor(ctx, normalizeEmail(email))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list instructor classes")
	}
	return classes, nil
}

// UpdateStatus approves, rejects or resets a class and refreshes the public listings.
func (s *ClassService) UpdateStatus(ctx context.Context, id string, req dto.UpdateClassStatusRequest, meta dto.RequestMeta) (*models.ClassOffering, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}

	class, err := s.repo.UpdateStatus(ctx, id, models.ClassStatus(req.Status), strings.TrimSpace(req.Feedback))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Internal(err, "failed to update class status")
	}

	s.InvalidateListings(ctx)
	s.audit.Record(ctx, meta, models.AuditActionClassStatus, models.AuditResourceClass, class.ID,
		map[string]interface{}{"status": class.Status, "feedback": class.Feedback})
	return class, nil
}

// InvalidateListings drops the cached public class lists.
func (s *ClassService) InvalidateListings(ctx context.Context) {
	s.cache.Invalidate(ctx, CacheKeyApprovedClasses, CacheKeyHomeClasses)
}

func (s *ClassService) cached(ctx context.Context, key string, load func() ([]models.ClassOffering, error)) ([]models.ClassOffering, error) {
	var classes []models.ClassOffering
	if s.cache.Get(ctx, key, &classes) {
		return classes, nil
	}
	classes, err := load()
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list classes")
	}
	s.cache.Set(ctx, key, classes, s.cacheTTL)
	return classes, nil
}

// classSlug derives a URL slug that stays unique by suffixing part of the id.
func classSlug(name, id string) string {
	base := slug.Make(name)
	suffix := strings.ReplaceAll(id, "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
