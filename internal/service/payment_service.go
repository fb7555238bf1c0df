package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/dojo-api/internal/dto"
	"github.com/noah-isme/dojo-api/internal/models"
	appErrors "github.com/noah-isme/dojo-api/pkg/errors"
	"github.com/noah-isme/dojo-api/pkg/export"
	"github.com/noah-isme/dojo-api/pkg/payment"
)

type paymentRepository interface {
	ListByEmail(ctx context.Context, email string) ([]models.PaymentRecord, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// PaymentService talks to the payment processor and serves the payment history.
type PaymentService struct {
	gateway   payment.Gateway
	currency  string
	repo      paymentRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewPaymentService constructs a PaymentService. currency defaults to usd.
func NewPaymentService(gateway payment.Gateway, currency string, repo paymentRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if currency == "" {
		currency = "usd"
	}
	return &PaymentService{gateway: gateway, currency: currency, repo: repo, metrics: metrics, validator: validate, logger: logger, now: time.Now}
}

// CreateIntent asks the processor for a card payment intent covering price.
func (s *PaymentService) CreateIntent(ctx context.Context, req dto.PaymentIntentRequest, email string) (*models.PaymentIntent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "price must be greater than zero")
	}
	amount := payment.ToMinorUnits(req.Price)
	if amount <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "price must be greater than zero")
	}
	if s.gateway == nil {
		s.metrics.RecordPaymentIntent("unconfigured")
		return nil, appErrors.Clone(appErrors.ErrUpstream, "payment processor is not configured")
	}

	res, err := s.gateway.CreateIntent(ctx, payment.Intent{
		AmountMinor: amount,
		Currency:    s.currency,
		Email:       email,
		Reference:   "dojo-" + uuid.NewString(),
	})
	if err != nil {
		s.metrics.RecordPaymentIntent("failed")
		s.logger.Error("payment intent failed", zap.Int64("amount", amount), zap.String("currency", s.currency), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "payment processor unavailable")
	}
	s.metrics.RecordPaymentIntent("created")
	return &models.PaymentIntent{ClientSecret: res.ClientSecret}, nil
}

// History returns the caller's payments, most recent first.
func (s *PaymentService) History(ctx context.Context, email string) ([]models.PaymentRecord, error) {
	items, err := s.repo.ListByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load payment history")
	}
	return items, nil
}

// ExportHistory renders the payment history as CSV or PDF.
func (s *PaymentService) ExportHistory(ctx context.Context, email, rawFormat string) (*ExportFile, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf")
	}
	items, err := s.History(ctx, email)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{
		Title:   "Payment history for " + normalizeEmail(email),
		Headers: []string{"Date", "Class", "Amount", "Transaction"},
		Rows:    make([][]string, 0, len(items)),
	}
	for _, p := range items {
		data.Rows = append(data.Rows, []string{
			p.Date.UTC().Format(time.RFC3339),
			p.ClassName,
			strconv.FormatFloat(p.Amount, 'f', 2, 64),
			p.TransactionID,
		})
	}

	body, err := export.RendererFor(format).Render(data)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render payment history")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("payment-history-%s.%s", s.now().UTC().Format("20060102"), format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}
