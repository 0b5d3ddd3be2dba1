package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"todoapi/internal/adapter/http/helper"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

const identityKey = "current_identity"

// BearerAuth resolves the token once per request and stores the result for
// handlers to pass into services explicitly. Missing, malformed and invalid
// tokens all answer with the same unauthorized response.
func BearerAuth(svc port.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		if !strings.HasPrefix(header, "Bearer ") {
			helper.SendUnauthorizedError(c, "Authentication failed")
			c.Abort()
			return
		}

		identity, err := svc.ResolveIdentity(strings.TrimPrefix(header, "Bearer "))

		if err != nil {
			helper.SendUnauthorizedError(c, "Authentication failed")
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity resolved by BearerAuth. Handlers on
// protected routes may assume it is present.
func CurrentIdentity(c *gin.Context) (domain.ResolvedIdentity, bool) {
	value, ok := c.Get(identityKey)

	if !ok {
		return domain.ResolvedIdentity{}, false
	}

	identity, ok := value.(domain.ResolvedIdentity)

	return identity, ok
}
