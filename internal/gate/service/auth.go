package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/nightowlmedia/doorman/internal/gate/domain"
	"github.com/nightowlmedia/doorman/internal/gate/provision"
	"github.com/nightowlmedia/doorman/internal/gate/store"
	"github.com/nightowlmedia/doorman/pkg/cryptox"
	"github.com/nightowlmedia/doorman/pkg/idx"
	"github.com/nightowlmedia/doorman/pkg/jwtx"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidInvite       = errors.New("invite code is invalid or already used")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrProvisioningFailed  = errors.New("media server account creation failed")
	ErrInvalidRegistration = errors.New("invalid registration request")
)

// adminInviteAllowance is the invite count granted to users invited
// directly by an administrator.
const adminInviteAllowance = 5

type AuthService struct {
	Store       store.Store
	Provisioner provision.Provisioner
	Signer      jwtx.Signer
	Issuer      string
	SessionTTL  time.Duration
}

func (s *AuthService) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return jwtx.DefaultSessionTTL
}

// Login verifies credentials and opens a session, returning the signed
// bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Look the user up. A missing user and a wrong password produce the
	// same error so login cannot be used to enumerate usernames.
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user for login", slog.Any("error", err))
		return "", domain.User{}, err
	}

	// 2. Verify the password.
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("login failed", slog.String("username", username))
			return "", domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return "", domain.User{}, err
	}

	// 3. Open the session and sign the token.
	token, err := s.openSession(ctx, user)
	if err != nil {
		return "", domain.User{}, err
	}

	log.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return token, user, nil
}

// Register redeems an invite code, provisions the account on the media
// server, creates the local user and opens their first session.
func (s *AuthService) Register(ctx context.Context, username, password, inviteCode string) (string, domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", domain.User{}, ErrInvalidRegistration
	}

	// 2. Look the invite up. Used and unknown codes are indistinguishable
	// to the caller.
	invite, err := s.Store.Invites().GetInviteByCode(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("registration with unknown invite code")
			return "", domain.User{}, ErrInvalidInvite
		}
		log.Error("failed to fetch invite", slog.Any("error", err))
		return "", domain.User{}, err
	}
	if invite.Used {
		log.Warn("registration with already used invite code",
			slog.String("code", invite.Code),
		)
		return "", domain.User{}, ErrInvalidInvite
	}

	// 3. Reject taken usernames before touching the media server.
	if _, err := s.Store.Users().GetUserByUsername(ctx, username); err == nil {
		return "", domain.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check username availability", slog.Any("error", err))
		return "", domain.User{}, err
	}

	// 4. Fetch the inviter to compute the new user's invite allowance.
	inviter, err := s.Store.Users().GetUserByID(ctx, invite.CreatedBy)
	if err != nil {
		log.Error("failed to fetch inviter",
			slog.String("inviter_id", invite.CreatedBy),
			slog.Any("error", err),
		)
		return "", domain.User{}, err
	}

	// 5. Create the media server account first. If this fails nothing
	// local has changed and the invite stays redeemable.
	if err := s.Provisioner.CreateUser(ctx, username, password); err != nil {
		if errors.Is(err, provision.ErrUsernameExists) {
			return "", domain.User{}, ErrUsernameTaken
		}
		log.Error("media server provisioning failed", slog.Any("error", err))
		return "", domain.User{}, ErrProvisioningFailed
	}

	// 6. Hash the password.
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return "", domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      false,
		InviteCount:  inviteAllowance(inviter),
		InvitedBy:    inviter.ID,
	}

	// 7. Write the user and consume the invite atomically. If a concurrent
	// registration consumed the invite first, the whole transaction rolls
	// back and no local user is created.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		return tx.Invites().ConsumeInvite(ctx, invite.Code, user.ID)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return "", domain.User{}, ErrUsernameTaken
		case errors.Is(err, store.ErrNotFound):
			return "", domain.User{}, ErrInvalidInvite
		}
		log.Error("failed to register user", slog.Any("error", err))
		return "", domain.User{}, err
	}

	// 8. Open the first session so registration logs the user straight in.
	token, err := s.openSession(ctx, user)
	if err != nil {
		return "", domain.User{}, err
	}

	log.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("invited_by", inviter.ID),
		slog.Int("invite_count", user.InviteCount),
	)
	return token, user, nil
}

// inviteAllowance is how many invites a freshly registered user receives.
// Admin invitees get a fixed allowance; everyone else hands down one less
// than their inviter had, floored at zero.
func inviteAllowance(inviter domain.User) int {
	if inviter.IsAdmin {
		return adminInviteAllowance
	}
	if inviter.InviteCount <= 1 {
		return 0
	}
	return inviter.InviteCount - 1
}

// Logout revokes the session. Revoking an already revoked session is a
// no-op, so logout is safe to retry.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Sessions().DeleteSession(ctx, sessionID); err != nil {
		log.Error("failed to delete session",
			slog.String("session_id", sessionID),
			slog.Any("error", err),
		)
		return err
	}
	log.Info("session revoked", slog.String("session_id", sessionID))
	return nil
}

// SessionExists reports whether the session is live. The authentication
// middleware calls this on every request so that revocation takes effect
// immediately rather than at token expiry.
func (s *AuthService) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	sess, err := s.Store.Sessions().GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return !sess.IsExpired(time.Now()), nil
}

func (s *AuthService) openSession(ctx context.Context, user domain.User) (string, error) {
	log := slogx.FromContext(ctx)

	now := time.Now().UTC()
	sess := domain.Session{
		ID:        idx.New().String(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.sessionTTL()),
	}
	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		log.Error("failed to create session", slog.Any("error", err))
		return "", err
	}

	claims := jwtx.NewSessionClaims(user.ID, sess.ID, user.Username, user.IsAdmin, s.Issuer, s.sessionTTL(), now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return "", err
	}
	return token, nil
}
