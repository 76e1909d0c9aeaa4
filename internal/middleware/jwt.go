package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-api/internal/models"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
	"github.com/noah-isme/attendance-api/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

type tokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// JWT protects routes by requiring a valid bearer token.
func JWT(validator tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			response.Error(c, err)
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// Claims returns the claims attached by JWT, if any.
func Claims(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*models.JWTClaims)
	return claims
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", appErrors.ErrUnauthorized
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}
