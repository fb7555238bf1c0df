package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dojo-api/internal/dto"
	"github.com/noah-isme/dojo-api/internal/models"
	"github.com/noah-isme/dojo-api/pkg/response"
)

type enrollmentService interface {
	Complete(ctx context.Context, req dto.PaymentRequest, meta dto.RequestMeta) (*models.CheckoutResult, error)
	ListByStudent(ctx context.Context, email string) ([]models.EnrolledClass, error)
}

// EnrollmentHandler completes payments and lists enrollments.
type EnrollmentHandler struct {
	service enrollmentService
}

// NewEnrollmentHandler constructs the handler.
func NewEnrollmentHandler(svc enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc}
}

// List godoc
// @Summary Enrolled classes
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Param email query string false "Student email, must match the token"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.ErrorEnvelope
// @Router /enrolled-classes [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	items, err := h.service.ListByStudent(c.Request.Context(), queryEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Complete godoc
// @Summary Complete payment
// @Description Record the payment, take a seat and enroll the caller in one transaction
// @Tags Enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.PaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Failure 409 {object} response.ErrorEnvelope
// @Router /payments [post]
func (h *EnrollmentHandler) Complete(c *gin.Context) {
	var req dto.PaymentRequest
	if !bindJSON(c, &req, "invalid payment payload") {
		return
	}

	res, err := h.service.Complete(c.Request.Context(), req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}
