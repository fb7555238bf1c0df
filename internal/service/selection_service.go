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

type selectionRepository interface {
	Create(ctx context.Context, sel *models.SelectedClass) error
	ListByStudent(ctx context.Context, email string) ([]models.SelectedClass, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type classFinder interface {
	FindByID(ctx context.Context, id string) (*models.ClassOffering, error)
}

// SelectionService manages the classes students intend to buy.
type SelectionService struct {
	repo      selectionRepository
	classes   classFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSelectionService constructs a SelectionService.
func NewSelectionService(repo selectionRepository, classes classFinder, validate *validator.Validate, logger *zap.Logger) *SelectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SelectionService{repo: repo, classes: classes, validator: validate, logger: logger}
}

// Select snapshots an approved class into the student's selections.
func (s *SelectionService) Select(ctx context.Context, req dto.SelectClassRequest) (*models.SelectedClass, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection payload")
	}

	class, err := s.classes.FindByID(ctx, strings.TrimSpace(req.ClassID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Internal(err, "failed to load class")
	}
	if class.Status != models.ClassStatusApproved {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class is not open for enrollment")
	}

	sel := &models.SelectedClass{
		StudentEmail:   normalizeEmail(req.StudentEmail),
		ClassID:        class.ID,
		ClassName:      class.Name,
		Image:          class.Image,
		InstructorName: class.InstructorName,
		Price:          class.Price,
	}
	if err := s.repo.Create(ctx, sel); err != nil {
		return nil, appErrors.Internal(err, "failed to select class")
	}
	return sel, nil
}

// ListByStudent returns a student's selections.
func (s *SelectionService) ListByStudent(ctx context.Context, email string) ([]models.SelectedClass, error) {
	items, err := s.repo.ListByStudent(ctx, normalizeEmail(email))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list selected classes")
	}
	return items, nil
}

// Delete removes a selection. Unknown ids succeed with a zero count.
func (s *SelectionService) Delete(ctx context.Context, id string) (*dto.DeleteResult, error) {
	n, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to delete selected class")
	}
	return &dto.DeleteResult{DeletedCount: n}, nil
}
