package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisy/storefront/pkg/apperr"
)

func TestSignIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"access_token": "at-123",
			"refresh_token": "rt-456",
			"expires_at": 1910000000,
			"user": {"id": "user-1", "email": "buyer@example.com"}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	session, account, err := client.SignIn(context.Background(), "buyer@example.com", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, "at-123", session.AccessToken)
	assert.Equal(t, "rt-456", session.RefreshToken)
	assert.Equal(t, "user-1", account.ID)
}

func TestSignInBadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_description": "Invalid login credentials"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	_, _, err := client.SignIn(context.Background(), "buyer@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Unauthenticated))
}

func TestSignInProviderDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	_, _, err := client.SignIn(context.Background(), "buyer@example.com", "hunter2")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Internal))
}

func TestSignUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/admin/users", r.URL.Path)
		w.Write([]byte(`{"id": "user-9", "email": "new@example.com"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	account, err := client.SignUp(context.Background(), "new@example.com", "hunter2", "New Buyer")
	require.NoError(t, err)
	assert.Equal(t, "user-9", account.ID)
}

func TestGetUserNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"msg": "User not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	_, err := client.GetUser(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}
