package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dojo-api/pkg/response"
)

// Guard inspects a request and returns an error to stop it. Guards must not write the response.
type Guard func(c *gin.Context) error

// Chain runs guards left to right. The first failure writes the error envelope and aborts,
// so later guards and the handler never run.
func Chain(guards ...Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, guard := range guards {
			if err := guard(c); err != nil {
				response.Abort(c, err)
				return
			}
		}
		c.Next()
	}
}
