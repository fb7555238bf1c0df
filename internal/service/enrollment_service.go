package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/dojo-api/internal/dto"
	"github.com/noah-isme/dojo-api/internal/models"
	"github.com/noah-isme/dojo-api/internal/repository"
	appErrors "github.com/noah-isme/dojo-api/pkg/errors"
)

type checkoutRepository interface {
	Complete(ctx context.Context, in models.Checkout) (*models.CheckoutResult, error)
}

type enrollmentRepository interface {
	ListByStudent(ctx context.Context, email string) ([]models.EnrolledClass, error)
}

type listingInvalidator interface {
	InvalidateListings(ctx context.Context)
}

// EnrollmentService completes payments into enrollments and lists them.
type EnrollmentService struct {
	checkout  checkoutRepository
	repo      enrollmentRepository
	listings  listingInvalidator
	metrics   *MetricsService
	audit     *AuditService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(checkout checkoutRepository, repo enrollmentRepository, listings listingInvalidator, metrics *MetricsService, audit *AuditService, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EnrollmentService{checkout: checkout, repo: repo, listings: listings, metrics: metrics, audit: audit, validator: validate, logger: logger}
}

// Complete runs the enrollment transaction for the authenticated caller.
func (s *EnrollmentService) Complete(ctx context.Context, req dto.PaymentRequest, meta dto.RequestMeta) (*models.CheckoutResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	caller := normalizeEmail(meta.ActorEmail)
	if caller == "" {
		return nil, appErrors.ErrUnauthorized
	}
	if req.Email != "" && normalizeEmail(req.Email) != caller {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "payment email does not match the signed-in user")
	}

	res, err := s.checkout.Complete(ctx, models.Checkout{
		StudentEmail:    caller,
		SelectedClassID: strings.TrimSpace(req.ClassItem.ID),
		ClassID:         strings.TrimSpace(req.ClassItem.ClassID),
		TransactionID:   strings.TrimSpace(req.TransactionID),
		Amount:          req.Price,
	})
	if err != nil {
		appErr := checkoutError(err)
		s.metrics.RecordEnrollment(strings.ToLower(appErr.Code))
		if appErr.Status >= 500 {
			s.logger.Error("enrollment transaction failed",
				zap.String("email", caller), zap.String("selected_class_id", req.ClassItem.ID), zap.Error(err))
		}
		return nil, appErr
	}

	s.metrics.RecordEnrollment("completed")
	if s.listings != nil {
		s.listings.InvalidateListings(ctx)
	}
	s.audit.Record(ctx, meta, models.AuditActionEnrollment, models.AuditResourceEnrollment, res.Enrollment.ID,
		map[string]interface{}{
			"classId":       res.Enrollment.ClassID,
			"transactionId": res.Payment.TransactionID,
			"amount":        res.Payment.Amount,
		})
	s.logger.Info("enrollment completed",
		zap.String("email", caller), zap.String("class_id", res.Enrollment.ClassID), zap.String("transaction_id", res.Payment.TransactionID))
	return res, nil
}

// ListByStudent returns a student's enrollments.
func (s *EnrollmentService) ListByStudent(ctx context.Context, email string) ([]models.EnrolledClass, error) {
	items, err := s.repo.ListByStudent(ctx, normalizeEmail(email))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list enrolled classes")
	}
	return items, nil
}

func checkoutError(err error) *appErrors.Error {
	switch {
	case errors.Is(err, repository.ErrSelectionNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, "selection not found")
	case errors.Is(err, repository.ErrSelectionMismatch):
		return appErrors.Clone(appErrors.ErrValidation, "selection does not match class")
	case errors.Is(err, repository.ErrNoSeatsAvailable):
		return appErrors.ErrNoSeatsAvailable
	case errors.Is(err, repository.ErrDuplicateTransaction):
		return appErrors.Clone(appErrors.ErrConflict, "transaction already recorded")
	default:
		return appErrors.Internal(err, "failed to complete payment")
	}
}
