package jwtutil

import (
	"schedule-service/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

var signingKey []byte

// IdentityClaims represents the JWT claims issued by the external identity
// provider. Subject is the provider's stable user id; name and email are
// display attributes synced into the local user row on first contact.
type IdentityClaims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Initialize sets the signing key used to validate incoming tokens
func Initialize(cfg *config.JWTConfig) {
	signingKey = []byte(cfg.SigningKey)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*IdentityClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
