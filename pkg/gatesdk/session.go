package gatesdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session is an authenticated connection to the service. It carries the
// bearer token returned from login or registration.
type Session struct {
	client      *SDKClient
	accessToken string
	user        UserInfo
}

func newSession(c *SDKClient, tokenResp TokenResponse) *Session {
	return &Session{
		client:      c,
		accessToken: tokenResp.AccessToken,
		user:        tokenResp.User,
	}
}

// AccessToken returns the raw bearer token, e.g. for storing across
// restarts.
func (s *Session) AccessToken() string { return s.accessToken }

// User returns the account this session belongs to, as captured at login
// time. UserInfo fetches the current state instead.
func (s *Session) User() UserInfo { return s.user }

// Logout revokes the session server-side. The token stops working
// immediately.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/v1/auth/logout", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// UserInfo fetches the current account state, including the list of
// invited users.
func (s *Session) UserInfo(ctx context.Context) (*UserInfo, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodGet, "/v1/userinfo", nil)
	if err != nil {
		return nil, err
	}

	var info UserInfo
	if err := decodeJSON(resp, &info, http.StatusOK); err != nil {
		return nil, err
	}
	return &info, nil
}

// CreateInvite mints a new invite code, spending one unit of the
// caller's allowance unless they are an admin.
func (s *Session) CreateInvite(ctx context.Context) (*InviteInfo, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/v1/invites", nil)
	if err != nil {
		return nil, err
	}

	var invite InviteInfo
	if err := decodeJSON(resp, &invite, http.StatusCreated); err != nil {
		return nil, err
	}
	return &invite, nil
}

// MyInvites lists every invite the caller has minted.
func (s *Session) MyInvites(ctx context.Context) ([]InviteInfo, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodGet, "/v1/invites", nil)
	if err != nil {
		return nil, err
	}

	var list InviteListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list.Invites, nil
}

// CreateTicket submits a content request.
func (s *Session) CreateTicket(ctx context.Context, title, description string) (*TicketInfo, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/v1/tickets", TicketRequest{
		Title:       title,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	var ticket TicketInfo
	if err := decodeJSON(resp, &ticket, http.StatusCreated); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// MyTickets lists the caller's own tickets.
func (s *Session) MyTickets(ctx context.Context) ([]TicketInfo, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodGet, "/v1/tickets", nil)
	if err != nil {
		return nil, err
	}

	var list TicketListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list.Tickets, nil
}

// AllTickets lists every ticket in the system. Admin only.
func (s *Session) AllTickets(ctx context.Context) ([]TicketInfo, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodGet, "/v1/admin/tickets", nil)
	if err != nil {
		return nil, err
	}

	var list TicketListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list.Tickets, nil
}

// RespondTicket resolves a pending ticket. Admin only; status must be
// "approved" or "rejected".
func (s *Session) RespondTicket(ctx context.Context, ticketID, status, response string) (*TicketInfo, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost,
		"/v1/tickets/"+url.PathEscape(ticketID)+"/respond",
		TicketRespondRequest{Status: status, Response: response},
	)
	if err != nil {
		return nil, err
	}

	var ticket TicketInfo
	if err := decodeJSON(resp, &ticket, http.StatusOK); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Users lists every account. Admin only.
func (s *Session) Users(ctx context.Context) ([]UserInfo, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodGet, "/v1/admin/users", nil)
	if err != nil {
		return nil, err
	}

	var list UserListResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return list.Users, nil
}

// Promote grants a user the administrator flag. Admin only.
func (s *Session) Promote(ctx context.Context, userID string) (*UserInfo, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost,
		"/v1/admin/users/"+url.PathEscape(userID)+"/promote", nil)
	if err != nil {
		return nil, err
	}

	var user UserInfo
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}
