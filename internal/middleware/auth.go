package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/karashiro/task-assignment-api/internal/auth"
	"github.com/karashiro/task-assignment-api/internal/constants"
	apierrors "github.com/karashiro/task-assignment-api/internal/errors"
)

// RequireAuth validates the bearer token on every protected request and
// exposes the decoded identity to downstream handlers. A missing credential
// is 401; a malformed, expired or forged token is 403.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, constants.BearerPrefix) {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, constants.BearerPrefix))
		if err != nil {
			apierrors.InvalidToken(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyIdentity, claims)
		c.Next()
	}
}

// GetIdentity retrieves the authenticated caller's claims from context
func GetIdentity(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return nil, false
	}

	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil, false
	}

	return claims, true
}
