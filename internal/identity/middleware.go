package identity

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/artisy/storefront/pkg/auth"
)

// Authenticator validates bearer tokens for HTTP routes.
type Authenticator struct {
	jwtSecret string
}

// NewAuthenticator creates an authenticator bound to the provider's token
// signing secret.
func NewAuthenticator(jwtSecret string) *Authenticator {
	return &Authenticator{jwtSecret: jwtSecret}
}

// Require rejects the request with 401 unless a valid bearer token is
// present. The verified identity is attached to the request context.
func (a *Authenticator) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.verify(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Missing or invalid authorization header")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	}
}

// Optional attaches an identity when a valid token is present and proceeds
// anonymously on any failure. Used by endpoints that personalize but do not
// require login.
func (a *Authenticator) Optional(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if user, ok := a.verify(r); ok {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	}
}

func (a *Authenticator) verify(r *http.Request) (User, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return User{}, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return User{}, false
	}

	claims, err := auth.ValidateToken(parts[1], a.jwtSecret)
	if err != nil {
		return User{}, false
	}

	return User{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  claims.Role(),
	}, true
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
