package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dojo-api/internal/dto"
	"github.com/noah-isme/dojo-api/internal/middleware"
	"github.com/noah-isme/dojo-api/internal/models"
	"github.com/noah-isme/dojo-api/internal/service"
	"github.com/noah-isme/dojo-api/pkg/response"
)

type paymentService interface {
	CreateIntent(ctx context.Context, req dto.PaymentIntentRequest, email string) (*models.PaymentIntent, error)
	History(ctx context.Context, email string) ([]models.PaymentRecord, error)
	ExportHistory(ctx context.Context, email, format string) (*service.ExportFile, error)
}

// PaymentHandler exposes payment intents and the payment history.
type PaymentHandler struct {
	service paymentService
}

// NewPaymentHandler constructs the handler.
func NewPaymentHandler(svc paymentService) *PaymentHandler {
	return &PaymentHandler{service: svc}
}

// CreateIntent godoc
// @Summary Create payment intent
// @Description Ask the payment processor for a client secret
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.PaymentIntentRequest true "Intent payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 502 {object} response.ErrorEnvelope
// @Router /create-payment-intents [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req dto.PaymentIntentRequest
	if !bindJSON(c, &req, "invalid payment intent payload") {
		return
	}

	intent, err := h.service.CreateIntent(c.Request.Context(), req, middleware.CurrentEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, intent)
}

// History godoc
// @Summary Payment history
// @Description Payments of a student, newest first
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param email query string false "Student email, must match the token"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.ErrorEnvelope
// @Router /payment-history [get]
func (h *PaymentHandler) History(c *gin.Context) {
	items, err := h.service.History(c.Request.Context(), queryEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Export godoc
// @Summary Export payment history
// @Description Download the payment history as CSV or PDF
// @Tags Payments
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param email query string false "Student email, must match the token"
// @Param format query string false "csv or pdf" Enums(csv, pdf)
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorEnvelope
// @Router /payment-history/export [get]
func (h *PaymentHandler) Export(c *gin.Context) {
	file, err := h.service.ExportHistory(c.Request.Context(), queryEmail(c), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Body)
}
