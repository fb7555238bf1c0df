package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dojo-api/internal/dto"
	"github.com/noah-isme/dojo-api/internal/models"
	"github.com/noah-isme/dojo-api/pkg/response"
)

type selectionService interface {
	Select(ctx context.Context, req dto.SelectClassRequest) (*models.SelectedClass, error)
	ListByStudent(ctx context.Context, email string) ([]models.SelectedClass, error)
	Delete(ctx context.Context, id string) (*dto.DeleteResult, error)
}

// SelectionHandler manages a student's cart of selected classes.
type SelectionHandler struct {
	service selectionService
}

// NewSelectionHandler constructs the handler.
func NewSelectionHandler(svc selectionService) *SelectionHandler {
	return &SelectionHandler{service: svc}
}

// List godoc
// @Summary Selected classes
// @Tags Selections
// @Produce json
// @Security BearerAuth
// @Param email query string false "Student email, must match the token"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.ErrorEnvelope
// @Router /selected-classes [get]
func (h *SelectionHandler) List(c *gin.Context) {
	items, err := h.service.ListByStudent(c.Request.Context(), queryEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Create godoc
// @Summary Select class
// @Description Add an approved class to a student's selections
// @Tags Selections
// @Accept json
// @Produce json
// @Param payload body dto.SelectClassRequest true "Selection payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 404 {object} response.ErrorEnvelope
// @Router /selected-classes [post]
func (h *SelectionHandler) Create(c *gin.Context) {
	var req dto.SelectClassRequest
	if !bindJSON(c, &req, "invalid selection payload") {
		return
	}

	item, err := h.service.Select(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Delete godoc
// @Summary Remove selection
// @Description Deleting an unknown id succeeds with deletedCount 0
// @Tags Selections
// @Produce json
// @Param id path string true "Selection ID"
// @Success 200 {object} response.Envelope
// @Router /selected-classes/{id} [delete]
func (h *SelectionHandler) Delete(c *gin.Context) {
	res, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
