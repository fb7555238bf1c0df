package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dojo-api/internal/dto"
	"github.com/noah-isme/dojo-api/internal/middleware"
	"github.com/noah-isme/dojo-api/internal/models"
	appErrors "github.com/noah-isme/dojo-api/pkg/errors"
	"github.com/noah-isme/dojo-api/pkg/response"
)

type classService interface {
	Create(ctx context.Context, req dto.CreateClassRequest, instructor *models.User) (*models.ClassOffering, error)
	ListAll(ctx context.Context) ([]models.ClassOffering, error)
	ListApproved(ctx context.Context) ([]models.ClassOffering, error)
	ListHome(ctx context.Context) ([]models.ClassOffering, error)
	ListByInstructor(ctx context.Context, email string) ([]models.ClassOffering, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateClassStatusRequest, meta dto.RequestMeta) (*models.ClassOffering, error)
}

// ClassHandler exposes class catalogue endpoints.
type ClassHandler struct {
	service classService
}

// NewClassHandler constructs the handler.
func NewClassHandler(svc classService) *ClassHandler {
	return &ClassHandler{service: svc}
}

// ListAll godoc
// @Summary List all classes
// @Description List classes in every status
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.ErrorEnvelope
// @Router /all-classes [get]
func (h *ClassHandler) ListAll(c *gin.Context) {
	h.list(c, h.service.ListAll)
}

// ListHome godoc
// @Summary Popular classes
// @Description Up to six approved classes ordered by enrolled students
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /home-classes [get]
func (h *ClassHandler) ListHome(c *gin.Context) {
	h.list(c, h.service.ListHome)
}

// ListApproved godoc
// @Summary Approved classes
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /approved-classes [get]
func (h *ClassHandler) ListApproved(c *gin.Context) {
	h.list(c, h.service.ListApproved)
}

// ListMine godoc
// @Summary Instructor classes
// @Description Classes taught by the signed-in instructor
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.ErrorEnvelope
// @Router /my-classes [get]
func (h *ClassHandler) ListMine(c *gin.Context) {
	classes, err := h.service.ListByInstructor(c.Request.Context(), middleware.CurrentEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

func (h *ClassHandler) list(c *gin.Context, load func(context.Context) ([]models.ClassOffering, error)) {
	classes, err := load(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Create godoc
// @Summary Create class
// @Description Submit a class for moderation. It starts pending.
// @Tags Classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 403 {object} response.ErrorEnvelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	instructor, ok := middleware.AccountFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateClassRequest
	if !bindJSON(c, &req, "invalid class payload") {
		return
	}

	class, err := h.service.Create(c.Request.Context(), req, instructor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// UpdateStatus godoc
// @Summary Moderate class
// @Description Approve or reject a class with optional feedback
// @Tags Classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param payload body dto.UpdateClassStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /classes/{id}/status [patch]
func (h *ClassHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateClassStatusRequest
	if !bindJSON(c, &req, "invalid status payload") {
		return
	}

	class, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}
