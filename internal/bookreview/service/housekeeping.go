package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
)

// HousekeepingService periodically removes used and expired one-time tokens
// so the verification and reset tables do not grow without bound. Revocation
// entries expire on their own and need no sweeping.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Now      func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given
// interval. If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		Now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep deletes stale one-time tokens once and returns how many went.
func (s *HousekeepingService) Sweep(ctx context.Context) int64 {
	n, err := s.Store.OneTimeTokens().DeleteStaleTokens(ctx, s.Now())
	if err != nil {
		s.Logger.Error("failed to delete stale one-time tokens", "error", err)
		return 0
	}
	s.Logger.Info("housekeeping sweep completed", "deleted_tokens", n)
	return n
}
