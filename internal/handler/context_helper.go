package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dojo-api/internal/dto"
	"github.com/noah-isme/dojo-api/internal/middleware"
	appErrors "github.com/noah-isme/dojo-api/pkg/errors"
	"github.com/noah-isme/dojo-api/pkg/response"
)

func requestMeta(c *gin.Context) dto.RequestMeta {
	return dto.RequestMeta{
		ActorEmail: middleware.CurrentEmail(c),
		IP:         c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
	}
}

// queryEmail returns ?email=, falling back to the signed-in caller.
func queryEmail(c *gin.Context) string {
	if email := strings.TrimSpace(c.Query("email")); email != "" {
		return email
	}
	return middleware.CurrentEmail(c)
}

// bindJSON decodes the body into dest and writes a 400 when it is malformed.
func bindJSON(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message))
		return false
	}
	return true
}
