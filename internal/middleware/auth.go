package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeapi/internal/token"
)

const identityKey = "auth.identity"

// Identity is the verified caller attached to the request context by the
// deserialize stage.
type Identity struct {
	UserID string
	Role   string
}

// IdentityFrom returns the identity attached to the request, if any.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

// Deserialize runs on every request. It extracts a bearer token, verifies it
// as an access token and attaches the identity to the request context. It
// never rejects: a missing header, a garbage token or an expired token all
// let the request proceed with no identity, so unprotected routes stay
// reachable. Rejection happens only at RequireRole.
func Deserialize(tokens *token.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := tokens.Verify(parts[1], token.KindAccess)
		if err != nil {
			logger.Debug("Token rejected at deserialize stage", zap.Error(err))
			c.Next()
			return
		}

		c.Set(identityKey, Identity{UserID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// RequireRole gates a route to callers whose role is in the given set.
// An absent identity or a role outside the set gets a 403 and the
// downstream handler is never invoked.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if ok {
			for _, role := range roles {
				if identity.Role == role {
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"status":     false,
			"statusCode": http.StatusForbidden,
			"message":    "access denied",
			"data":       gin.H{},
		})
	}
}
