package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisy/storefront/pkg/auth"
)

const testSecret = "test-signing-secret"

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, userID+"@example.com", auth.RoleUser, testSecret)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRequireAcceptsValidToken(t *testing.T) {
	authenticator := NewAuthenticator(testSecret)

	var seen User
	handler := authenticator.Require(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", bearerFor(t, "user-1"))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", seen.ID)
	assert.Equal(t, "user-1@example.com", seen.Email)
}

func TestRequireRejectsMissingHeader(t *testing.T) {
	authenticator := NewAuthenticator(testSecret)

	called := false
	handler := authenticator.Require(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireRejectsForgedToken(t *testing.T) {
	authenticator := NewAuthenticator(testSecret)

	token, err := auth.GenerateToken("user-1", "user-1@example.com", auth.RoleUser, "wrong-secret")
	require.NoError(t, err)

	handler := authenticator.Require(func(w http.ResponseWriter, r *http.Request) {})
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalProceedsAnonymously(t *testing.T) {
	authenticator := NewAuthenticator(testSecret)

	var found bool
	handler := authenticator.Optional(func(w http.ResponseWriter, r *http.Request) {
		_, found = FromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/wishlist/check/1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, found)
}

func TestOptionalAttachesIdentityWhenPresent(t *testing.T) {
	authenticator := NewAuthenticator(testSecret)

	var seen User
	handler := authenticator.Optional(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/wishlist/check/1", nil)
	req.Header.Set("Authorization", bearerFor(t, "user-2"))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, "user-2", seen.ID)
}
