package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/attendance-api/internal/models"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

// TokenVerifier validates HS256 bearer tokens issued by the identity provider.
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier constructs a verifier. An empty issuer disables the issuer check.
func NewTokenVerifier(secret, issuer string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), issuer: issuer}
}

// ValidateToken parses and validates a bearer token.
func (v *TokenVerifier) ValidateToken(token string) (*models.JWTClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &models.JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %s", t.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := parsed.Claims.(*models.JWTClaims)
	if !ok || !parsed.Valid || claims.Identity() == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}
