package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dojo-api/internal/dto"
	"github.com/noah-isme/dojo-api/internal/middleware"
	"github.com/noah-isme/dojo-api/internal/models"
	"github.com/noah-isme/dojo-api/pkg/response"
)

type userService interface {
	Register(ctx context.Context, req dto.RegisterUserRequest) (*dto.RegisterUserResult, error)
	HasRole(ctx context.Context, email string, role models.UserRole) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	ListInstructors(ctx context.Context) ([]models.User, error)
	SetRole(ctx context.Context, req dto.SetRoleRequest, meta dto.RequestMeta) (*models.User, error)
}

// UserHandler handles registration, role checks and role management.
type UserHandler struct {
	service userService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc userService) *UserHandler {
	return &UserHandler{service: svc}
}

// IsAdmin godoc
// @Summary Check admin role
// @Description Reports whether the signed-in user is an admin. Asking about another email answers false.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.ErrorEnvelope
// @Router /users/admin/{email} [get]
func (h *UserHandler) IsAdmin(c *gin.Context) {
	ok, done := h.roleCheck(c, models.RoleAdmin)
	if done {
		return
	}
	response.JSON(c, http.StatusOK, dto.RoleCheck{Admin: &ok})
}

// IsInstructor godoc
// @Summary Check instructor role
// @Description Reports whether the signed-in user is an instructor. Asking about another email answers false.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.ErrorEnvelope
// @Router /users/instructor/{email} [get]
func (h *UserHandler) IsInstructor(c *gin.Context) {
	ok, done := h.roleCheck(c, models.RoleInstructor)
	if done {
		return
	}
	response.JSON(c, http.StatusOK, dto.RoleCheck{Instructor: &ok})
}

// roleCheck answers false without a lookup when the path email is not the caller's.
// done reports that an error response was already written.
func (h *UserHandler) roleCheck(c *gin.Context, role models.UserRole) (ok bool, done bool) {
	email := strings.TrimSpace(c.Param("email"))
	if !strings.EqualFold(email, middleware.CurrentEmail(c)) {
		return false, false
	}

	ok, err := h.service.HasRole(c.Request.Context(), email, role)
	if err != nil {
		response.Error(c, err)
		return false, true
	}
	return ok, false
}

// ListAll godoc
// @Summary List all users
// @Description List every user ordered by role
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.ErrorEnvelope
// @Router /all-users [get]
func (h *UserHandler) ListAll(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// SetRole godoc
// @Summary Set user role
// @Description Assign a role to a user, creating the user when missing
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SetRoleRequest true "Role payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 403 {object} response.ErrorEnvelope
// @Router /all-users [put]
func (h *UserHandler) SetRole(c *gin.Context) {
	var req dto.SetRoleRequest
	if !bindJSON(c, &req, "invalid role payload") {
		return
	}

	user, err := h.service.SetRole(c.Request.Context(), req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

// ListInstructors godoc
// @Summary List instructors
// @Tags Users
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) ListInstructors(c *gin.Context) {
	users, err := h.service.ListInstructors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// Register godoc
// @Summary Register user
// @Description Store a user on first sign-in. Registering an existing email changes nothing.
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body dto.RegisterUserRequest true "User payload"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.ErrorEnvelope
// @Router /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if !bindJSON(c, &req, "invalid user payload") {
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if res.Created {
		response.Created(c, res)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
