package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/artisy/storefront/pkg/apperr"
)

// Client talks to the hosted identity provider's REST API using the
// service-role key.
type Client struct {
	baseURL    string
	serviceKey string
	http       *http.Client
}

// NewClient creates an identity provider client.
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Account is the provider's view of a user.
type Account struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	CreatedAt    string                 `json:"created_at"`
}

// Session is the token pair issued on sign-in and refresh.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

type signInResponse struct {
	Session
	User Account `json:"user"`
}

type providerError struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
}

func (e providerError) text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Error != "":
		return e.Error
	default:
		return "identity provider request failed"
	}
}

// SignUp creates a confirmed account through the admin endpoint.
func (c *Client) SignUp(ctx context.Context, email, password, name string) (*Account, error) {
	body := map[string]interface{}{
		"email":         email,
		"password":      password,
		"email_confirm": true,
	}
	if name != "" {
		body["user_metadata"] = map[string]string{"name": name}
	}

	var account Account
	if err := c.do(ctx, http.MethodPost, "/auth/v1/admin/users", "", body, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, *Account, error) {
	body := map[string]string{"email": email, "password": password}

	var resp signInResponse
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &resp); err != nil {
		if apperr.KindOf(err) == apperr.InvalidArgument {
			return nil, nil, apperr.New(apperr.Unauthenticated, "invalid credentials")
		}
		return nil, nil, err
	}
	return &resp.Session, &resp.User, nil
}

// Refresh exchanges a refresh token for a new session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	body := map[string]string{"refresh_token": refreshToken}

	var resp signInResponse
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", "", body, &resp); err != nil {
		if apperr.KindOf(err) == apperr.InvalidArgument {
			return nil, apperr.New(apperr.Unauthenticated, "invalid refresh token")
		}
		return nil, err
	}
	return &resp.Session, nil
}

// SignOut revokes the session bound to the access token. Best-effort: the
// caller's local state is what actually logs a browser out.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
}

// GetUser fetches an account by id through the admin endpoint.
func (c *Client) GetUser(ctx context.Context, id string) (*Account, error) {
	var account Account
	if err := c.do(ctx, http.MethodGet, "/auth/v1/admin/users/"+id, "", nil, &account); err != nil {
		if apperr.KindOf(err) != apperr.Internal {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, err
	}
	return &account, nil
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "identity provider unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to read identity provider response", err)
	}

	if resp.StatusCode >= 400 {
		var perr providerError
		_ = json.Unmarshal(raw, &perr)
		if resp.StatusCode >= 500 {
			return apperr.New(apperr.Internal, perr.text())
		}
		return apperr.New(apperr.InvalidArgument, perr.text())
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return apperr.Wrap(apperr.Internal, "failed to decode identity provider response", err)
		}
	}
	return nil
}
