// Package auth verifies access tokens issued by the hosted identity
// provider. Tokens are HS256 JWTs signed with the project's signing secret,
// so verification happens locally instead of round-tripping to the provider
// on every request.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Role types
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Metadata carries the user attributes the provider stores alongside the
// account.
type Metadata struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// Claims is the token payload issued by the identity provider.
type Claims struct {
	Email        string   `json:"email"`
	UserMetadata Metadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

// Role resolves the effective role carried by the token, defaulting to user.
func (c *Claims) Role() string {
	if c.UserMetadata.Role != "" {
		return c.UserMetadata.Role
	}
	return RoleUser
}

// ValidateToken parses and verifies an access token against the signing
// secret. Only HS256 is accepted.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}

// GenerateToken mints a token the way the provider does. Used by tests and
// local tooling; production tokens come from the identity provider.
func GenerateToken(userID, email, role, secret string) (string, error) {
	claims := &Claims{
		Email:        email,
		UserMetadata: Metadata{Role: role},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
