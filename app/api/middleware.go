package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stakecast/stakecast/internal/security"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"

	// AccountContextKey holds the authenticated account handle.
	AccountContextKey = "account"
)

// AuthMiddleware verifies the bearer token and stores the account handle
// in the request context.
func AuthMiddleware(tokenMaker security.Maker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeaderKey)
		if authHeader == "" {
			UnauthorizedResponse(c)
			c.Abort()
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 || fields[0] != AuthorizationTypeBearer {
			UnauthorizedResponse(c)
			c.Abort()
			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set(AccountContextKey, payload.Handle)
		c.Next()
	}
}

// AccountFromContext returns the authenticated account handle, if any.
func AccountFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(AccountContextKey)
	if !exists {
		return "", false
	}
	handle, ok := value.(string)
	if !ok || handle == "" {
		return "", false
	}
	return handle, true
}
