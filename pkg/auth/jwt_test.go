package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-signing-key"

func TestValidateToken(t *testing.T) {
	tokenString, err := GenerateToken("user-123", "buyer@example.com", RoleAdmin, testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(tokenString, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role())
}

func TestValidateTokenWrongSecret(t *testing.T) {
	tokenString, err := GenerateToken("user-123", "buyer@example.com", RoleUser, testSecret)
	require.NoError(t, err)

	_, err = ValidateToken(tokenString, "a-different-secret")
	assert.Error(t, err)
}

func TestValidateTokenRejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"},
	})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(tokenString, testSecret)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateToken(tokenString, testSecret)
	assert.Error(t, err)
}

func TestValidateTokenMissingSubject(t *testing.T) {
	tokenString, err := GenerateToken("", "buyer@example.com", RoleUser, testSecret)
	require.NoError(t, err)

	_, err = ValidateToken(tokenString, testSecret)
	assert.Error(t, err)
}

func TestRoleDefaultsToUser(t *testing.T) {
	tokenString, err := GenerateToken("user-123", "buyer@example.com", "", testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(tokenString, testSecret)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, claims.Role())
}
