package gatesdk

import "time"

// ErrorResponse is the wire shape of every error payload the service
// returns. Client code should use the APIError type from errors.go.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "invalid_invite")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// TokenResponse is returned from login and register.
type TokenResponse struct {
	// AccessToken is the signed bearer token for authenticated requests
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the token lifetime in seconds
	ExpiresIn int `json:"expires_in"`

	// User is the account the token belongs to
	User UserInfo `json:"user"`
}

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	InviteCode string `json:"invite_code"`
}

// UserInfo describes a user account.
type UserInfo struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	IsAdmin     bool      `json:"is_admin"`
	InviteCount int       `json:"invite_count"`
	InvitedBy   string    `json:"invited_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// InvitedUsers lists the IDs of users this user invited, in
	// registration order. Only populated on the userinfo endpoint.
	InvitedUsers []string `json:"invited_users,omitempty"`
}

// InviteInfo describes an invite code.
type InviteInfo struct {
	Code      string    `json:"code"`
	CreatedBy string    `json:"created_by"`
	Used      bool      `json:"used"`
	UsedBy    string    `json:"used_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// InviteListResponse is returned from GET /v1/invites.
type InviteListResponse struct {
	Invites []InviteInfo `json:"invites"`
}

// TicketRequest is the body of POST /v1/tickets.
type TicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// TicketInfo describes a content request ticket.
type TicketInfo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	CreatedBy   string     `json:"created_by"`
	Response    string     `json:"response,omitempty"`
	RespondedBy string     `json:"responded_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// TicketListResponse is returned from the ticket listing endpoints.
type TicketListResponse struct {
	Tickets []TicketInfo `json:"tickets"`
}

// TicketRespondRequest is the body of POST /v1/tickets/{id}/respond.
type TicketRespondRequest struct {
	// Status must be "approved" or "rejected".
	Status   string `json:"status"`
	Response string `json:"response,omitempty"`
}

// UserListResponse is returned from GET /v1/admin/users.
type UserListResponse struct {
	Users []UserInfo `json:"users"`
}

// HealthResponse is returned from the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of the service's dependencies on the
// readiness endpoint.
type HealthChecks struct {
	Database string `json:"database"`
}
