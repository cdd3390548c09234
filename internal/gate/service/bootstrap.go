package service

import (
	"context"
	"log/slog"

	"github.com/nightowlmedia/doorman/internal/gate/domain"
	"github.com/nightowlmedia/doorman/internal/gate/store"
	"github.com/nightowlmedia/doorman/pkg/cryptox"
	"github.com/nightowlmedia/doorman/pkg/idx"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

type BootstrapService struct {
	Store store.Store
}

// EnsureAdmin seeds the root administrator into an empty store. On an
// already populated store it does nothing, so it is safe to run on every
// startup. When no password is configured one is generated and logged
// exactly once; it is never recoverable afterwards.
func (s *BootstrapService) EnsureAdmin(ctx context.Context, data domain.BootstrapData) error {
	log := slogx.FromContext(ctx)

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		log.Error("failed to check for existing users", slog.Any("error", err))
		return err
	}
	if !empty {
		return nil
	}

	password := data.AdminPassword
	generated := false
	if password == "" {
		password, err = cryptox.GeneratePassword()
		if err != nil {
			log.Error("failed to generate admin password", slog.Any("error", err))
			return err
		}
		generated = true
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash admin password", slog.Any("error", err))
		return err
	}

	admin := domain.User{
		ID:           idx.New().String(),
		Username:     data.AdminUsername,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := s.Store.Users().CreateUser(ctx, admin); err != nil {
		log.Error("failed to seed admin user", slog.Any("error", err))
		return err
	}

	if generated {
		// The only place the generated password ever appears.
		log.Warn("seeded root admin with generated password",
			slog.String("username", admin.Username),
			slog.String("password", password),
		)
	} else {
		log.Info("seeded root admin",
			slog.String("username", admin.Username),
		)
	}
	return nil
}
