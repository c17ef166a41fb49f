package api

import (
	"context"
	"net/http"

	"github.com/tambesec/networkstore/domain"
)

// AuthAPI implements domain.AuthGateway over the HTTP client core. Login and
// register go through the generated-path surface, the remaining endpoints
// through the direct surface; the pipeline treats both identically.
type AuthAPI struct {
	client *Client
}

// NewAuthAPI creates the auth gateway.
func NewAuthAPI(client *Client) domain.AuthGateway {
	return &AuthAPI{client: client}
}

type userEnvelope struct {
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user"`
}

// Session introspects the cookie session. The endpoint never answers 401.
func (a *AuthAPI) Session(ctx context.Context) (*domain.SessionInfo, error) {
	var info domain.SessionInfo
	if err := a.client.Do(ctx, http.MethodGet, "/auth/session", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (a *AuthAPI) Login(ctx context.Context, email, password string) (*domain.User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp userEnvelope
	if err := a.client.DoGenerated(ctx, http.MethodPost, a.client.prefix+"/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (a *AuthAPI) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	var resp userEnvelope
	if err := a.client.DoGenerated(ctx, http.MethodPost, a.client.prefix+"/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Logout clears the session cookies server-side. No body is needed.
func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.client.Do(ctx, http.MethodPost, "/auth/logout", map[string]string{}, nil)
}

// UpdateProfile returns the canonical user under the data envelope, unlike
// login and register which nest it beside the message.
func (a *AuthAPI) UpdateProfile(ctx context.Context, req domain.ProfileUpdate) (*domain.User, error) {
	var user domain.User
	if err := a.client.Do(ctx, http.MethodPatch, "/auth/profile", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

var _ domain.AuthGateway = (*AuthAPI)(nil)
