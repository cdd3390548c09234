package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nightowlmedia/doorman/internal/gate/domain"
	"github.com/nightowlmedia/doorman/internal/gate/store"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	Store store.Store
}

// GetByID returns a single user.
func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, err
	}
	return user, nil
}

// ListAll returns every user, newest first. Admin only.
func (s *UserService) ListAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list users", slog.Any("error", err))
		return nil, err
	}
	return users, nil
}

// Promote grants a user the administrator flag. Promoting an existing
// admin is a no-op.
func (s *UserService) Promote(ctx context.Context, userID string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if err := s.Store.Users().SetAdmin(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		log.Error("failed to promote user", slog.Any("error", err))
		return domain.User{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		log.Error("failed to fetch promoted user", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("user promoted to admin", slog.String("user_id", userID))
	return user, nil
}

// ListInvitedIDs returns the IDs of users the given user invited, in
// registration order. The list is derived from the invited_by column
// rather than stored, so it can never drift from the user records.
func (s *UserService) ListInvitedIDs(ctx context.Context, inviterID string) ([]string, error) {
	ids, err := s.Store.Users().ListInvitedUserIDs(ctx, inviterID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list invited users", slog.Any("error", err))
		return nil, err
	}
	return ids, nil
}
