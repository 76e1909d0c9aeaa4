package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the roles accepted by the API.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleStaff UserRole = "STAFF"
)

// JWTClaims represents the payload of tokens issued by the identity provider.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email"`
	jwt.RegisteredClaims
}

// Identity returns the user identifier, preferring user_id over sub.
func (c *JWTClaims) Identity() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.RegisteredClaims.Subject
}
