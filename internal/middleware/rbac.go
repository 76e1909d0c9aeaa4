package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-api/internal/models"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
	"github.com/noah-isme/attendance-api/pkg/response"
)

// RequireRoles rejects requests whose token carries none of roles. It must run after JWT.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "role not allowed"))
			return
		}
		c.Next()
	}
}
