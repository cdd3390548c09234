package gatesdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient is a client for the doorman access service. It provides the
// unauthenticated operations and creates authenticated Sessions via
// Login and Register.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login authenticates with a username and password and returns an
// authenticated Session.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, tokenResp), nil
}

// Register redeems an invite code to create an account. On success the
// returned Session is already logged in.
func (c *SDKClient) Register(ctx context.Context, username, password, inviteCode string) (*Session, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/register", RegisterRequest{
		Username:   username,
		Password:   password,
		InviteCode: inviteCode,
	})
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusCreated); err != nil {
		return nil, err
	}
	return newSession(c, tokenResp), nil
}

// InviteByCode looks an invite up without authenticating. Registration
// pages use it to pre-validate a code.
func (c *SDKClient) InviteByCode(ctx context.Context, code string) (*InviteInfo, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/invites/"+url.PathEscape(code), nil)
	if err != nil {
		return nil, err
	}

	var invite InviteInfo
	if err := decodeJSON(resp, &invite, http.StatusOK); err != nil {
		return nil, err
	}
	return &invite, nil
}

// Health checks the liveness endpoint.
func (c *SDKClient) Health(ctx context.Context) error {
	resp, err := c.doJSON(ctx, http.MethodGet, "/livez", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// Ready checks the readiness endpoint, which includes database
// connectivity.
func (c *SDKClient) Ready(ctx context.Context) error {
	resp, err := c.doJSON(ctx, http.MethodGet, "/readyz", nil)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}
