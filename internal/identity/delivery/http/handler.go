package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/artisy/storefront/internal/identity"
	"github.com/artisy/storefront/pkg/apperr"
	"github.com/artisy/storefront/pkg/logger"
)

// AuthHandler proxies account operations to the identity provider.
type AuthHandler struct {
	client *identity.Client
	auth   *identity.Authenticator
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(client *identity.Client, auth *identity.Authenticator) *AuthHandler {
	return &AuthHandler{client: client, auth: auth}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	account, err := h.client.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User created successfully",
		"data": map[string]interface{}{
			"user": map[string]string{
				"id":    account.ID,
				"email": account.Email,
			},
		},
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	session, account, err := h.client.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"user": map[string]interface{}{
			"id":            account.ID,
			"email":         account.Email,
			"user_metadata": account.UserMetadata,
		},
		"session": session,
	})
}

// RefreshToken handles POST /auth/refresh-token
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RefreshToken == "" {
		respondError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	session, err := h.client.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondData(w, http.StatusOK, session)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if err := h.client.SignOut(r.Context(), token); err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Provider sign-out failed")
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}

// GetUser handles GET /auth/user
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	account, err := h.client.GetUser(r.Context(), user.ID)
	if err != nil {
		respondAppError(w, r, err)
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"id":            account.ID,
		"email":         account.Email,
		"user_metadata": account.UserMetadata,
		"created_at":    account.CreatedAt,
	})
}

// RegisterRoutes registers all auth routes.
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/signup", h.Signup).Methods("POST")
	router.HandleFunc("/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/auth/refresh-token", h.RefreshToken).Methods("POST")
	router.HandleFunc("/auth/logout", h.Logout).Methods("POST")
	router.HandleFunc("/auth/user", h.auth.Require(h.GetUser)).Methods("GET")
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, map[string]interface{}{"success": true, "data": data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error(r.Context()).Err(err).Msg("Auth request failed")
	}
	respondError(w, status, apperr.Message(err))
}
