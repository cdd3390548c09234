package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/nightowlmedia/doorman/internal/gate/store"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

// HousekeepingService deletes expired sessions on a timer. Expired
// sessions are already rejected at the door; the sweep just keeps the
// table from growing without bound.
type HousekeepingService struct {
	Store    store.Store
	Interval time.Duration
}

// Run blocks until ctx is cancelled, sweeping once per interval. It also
// sweeps immediately on start so a long-stopped instance catches up.
func (s *HousekeepingService) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	s.sweep(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *HousekeepingService) sweep(ctx context.Context) {
	log := slogx.FromContext(ctx)

	n, err := s.Store.Sessions().DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		log.Error("failed to sweep expired sessions", slog.Any("error", err))
		return
	}
	if n > 0 {
		log.Info("swept expired sessions", slog.Int64("deleted", n))
	}
}
