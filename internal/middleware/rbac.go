package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dojo-api/internal/models"
	appErrors "github.com/noah-isme/dojo-api/pkg/errors"
)

// ContextAccountKey stores the user record loaded by RequireRole.
const ContextAccountKey = "currentAccount"

type userLookup interface {
	Get(ctx context.Context, email string) (*models.User, error)
}

// RequireRole loads the caller's user record and requires it to hold role.
// It must run after Authenticate.
func RequireRole(users userLookup, role models.UserRole) Guard {
	return func(c *gin.Context) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return appErrors.ErrUnauthorized
		}

		user, err := users.Get(c.Request.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, appErrors.ErrNotFound) {
				return appErrors.ErrForbidden
			}
			return appErrors.Internal(err, "failed to verify role")
		}
		if !user.HasRole(role) {
			return appErrors.ErrForbidden
		}

		c.Set(ContextAccountKey, user)
		return nil
	}
}

// AccountFromContext returns the user record stored by RequireRole.
func AccountFromContext(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(ContextAccountKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}
