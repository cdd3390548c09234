// Package provision talks to the media server's user-management endpoint.
// Registration creates the media account first; only once the media server
// accepts the user does the local record get written.
package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrUsernameExists means the media server rejected the name as taken.
	ErrUsernameExists = errors.New("provision: username already exists")

	// ErrUnavailable covers any other failure to create the account.
	ErrUnavailable = errors.New("provision: media server unavailable")
)

// Provisioner creates an account on the media server. Services depend on
// this interface; tests swap in a stub.
type Provisioner interface {
	CreateUser(ctx context.Context, username, password string) error
}

// Client is the HTTP Provisioner for Emby-compatible servers.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpc = c }
}

func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type newUserRequest struct {
	Name     string `json:"Name"`
	Password string `json:"Password"`
}

// CreateUser calls POST {base}/Users/New with the admin token. A 400 is
// taken to mean the username is taken; any other non-2xx maps to
// ErrUnavailable.
func (c *Client) CreateUser(ctx context.Context, username, password string) error {
	body, err := json.Marshal(newUserRequest{Name: username, Password: password})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/Users/New", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Emby-Token", c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		return ErrUsernameExists
	default:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
}
