package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ateriyan143-bot/school-clinic/internal/handler"
	"github.com/ateriyan143-bot/school-clinic/internal/model"
	"github.com/ateriyan143-bot/school-clinic/pkg/token"
)

const identityKey = "identity"

type AuthMiddleware struct {
	codec token.Codec
}

func NewAuthMiddleware(codec token.Codec) *AuthMiddleware {
	return &AuthMiddleware{codec: codec}
}

// Authenticate verifies the bearer token and sets the caller identity in the
// request context. Invalid or missing tokens are rejected outright; there is
// no default-identity fallback.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("No token provided"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.codec.Parse(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Invalid token"))
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Invalid token"))
			c.Abort()
			return
		}

		c.Set(identityKey, model.Identity{
			TenantID: claims.TenantID,
			UserID:   userID,
			Role:     claims.Role,
			Email:    claims.Email,
		})
		c.Next()
	}
}

// RequireAdmin gates a route group to admin callers.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Unauthorized"))
			c.Abort()
			return
		}
		if !identity.IsAdmin() {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("Admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetIdentity returns the caller identity set by Authenticate.
func GetIdentity(c *gin.Context) (model.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return model.Identity{}, false
	}
	identity, ok := v.(model.Identity)
	return identity, ok
}
