package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dojo-api/internal/models"
	appErrors "github.com/noah-isme/dojo-api/pkg/errors"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

type tokenValidator interface {
	ValidateToken(tokenString string) (*models.JWTClaims, error)
}

// Authenticate requires a valid bearer token and stores its claims on the context.
func Authenticate(tokens tokenValidator) Guard {
	return func(c *gin.Context) error {
		header := c.GetHeader("Authorization")
		if header == "" {
			return appErrors.Clone(appErrors.ErrUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header")
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}
		c.Set(ContextUserKey, claims)
		return nil
	}
}

// JWT protects routes by requiring a valid access token.
func JWT(tokens tokenValidator) gin.HandlerFunc {
	return Chain(Authenticate(tokens))
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(c *gin.Context) (*models.JWTClaims, bool) {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok && claims != nil
}

// CurrentEmail returns the authenticated caller's email or an empty string.
func CurrentEmail(c *gin.Context) string {
	if claims, ok := ClaimsFromContext(c); ok {
		return claims.Email
	}
	return ""
}

// SameEmailQuery forbids reading another user's data through the ?param= query value.
func SameEmailQuery(param string) Guard {
	return func(c *gin.Context) error {
		email := CurrentEmail(c)
		if email == "" {
			return appErrors.ErrUnauthorized
		}
		if q := strings.TrimSpace(c.Query(param)); q != "" && !strings.EqualFold(q, email) {
			return appErrors.Clone(appErrors.ErrForbidden, "forbidden access")
		}
		return nil
	}
}
