package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nightowlmedia/doorman/internal/gate/domain"
	"github.com/nightowlmedia/doorman/internal/gate/store"
	"github.com/nightowlmedia/doorman/pkg/cryptox"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

var (
	ErrNoInvitesRemaining = errors.New("no invites remaining")
	ErrInviteNotFound     = errors.New("invite not found")
)

// mintRetries bounds how often Mint retries on a code collision. With an
// 8-character code collisions are vanishingly rare; the bound just keeps
// the loop finite.
const mintRetries = 3

type InviteService struct {
	Store store.Store
}

// Mint creates a new invite code on behalf of userID. Non-admins spend
// one unit of their allowance; admins mint freely.
func (s *InviteService) Mint(ctx context.Context, userID string) (domain.Invite, error) {
	log := slogx.FromContext(ctx)

	// 1. Fetch the minter and check their allowance.
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		log.Error("failed to fetch user for invite mint", slog.Any("error", err))
		return domain.Invite{}, err
	}
	if !user.CanInvite() {
		log.Warn("invite mint with no allowance",
			slog.String("user_id", user.ID),
		)
		return domain.Invite{}, ErrNoInvitesRemaining
	}

	// 2. Generate the code and write it together with the decrement.
	// Re-reading the count inside the transaction keeps two concurrent
	// mints from both spending the same last invite.
	var invite domain.Invite
	for attempt := 0; ; attempt++ {
		code, err := cryptox.NewInviteCode()
		if err != nil {
			log.Error("failed to generate invite code", slog.Any("error", err))
			return domain.Invite{}, err
		}

		invite = domain.Invite{
			Code:      code,
			CreatedBy: user.ID,
		}

		err = s.Store.WithTx(ctx, func(tx store.Tx) error {
			if !user.IsAdmin {
				current, err := tx.Users().GetUserByID(ctx, user.ID)
				if err != nil {
					return err
				}
				if !current.CanInvite() {
					return ErrNoInvitesRemaining
				}
				if err := tx.Users().UpdateInviteCount(ctx, user.ID, current.InviteCount-1); err != nil {
					return err
				}
			}
			return tx.Invites().CreateInvite(ctx, invite)
		})
		if err == nil {
			break
		}
		if errors.Is(err, store.ErrAlreadyExists) && attempt < mintRetries {
			continue
		}
		if errors.Is(err, ErrNoInvitesRemaining) {
			return domain.Invite{}, ErrNoInvitesRemaining
		}
		log.Error("failed to mint invite", slog.Any("error", err))
		return domain.Invite{}, err
	}

	log.Info("invite minted",
		slog.String("code", invite.Code),
		slog.String("created_by", user.ID),
	)
	return invite, nil
}

// ListMine returns every invite the user has minted, newest first.
func (s *InviteService) ListMine(ctx context.Context, userID string) ([]domain.Invite, error) {
	invites, err := s.Store.Invites().ListInvitesByCreator(ctx, userID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list invites", slog.Any("error", err))
		return nil, err
	}
	return invites, nil
}

// GetByCode returns a single invite, used or not. Registration pages call
// this to pre-validate a code before the user fills the form in.
func (s *InviteService) GetByCode(ctx context.Context, code string) (domain.Invite, error) {
	invite, err := s.Store.Invites().GetInviteByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invite{}, ErrInviteNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch invite", slog.Any("error", err))
		return domain.Invite{}, err
	}
	return invite, nil
}
