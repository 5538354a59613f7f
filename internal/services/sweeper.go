package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/differentgrowth/newgenforms/internal/repository"
)

// Sweeper periodically runs the survey status sweeps. The same idempotent
// statements also run on relevant page loads, so the ticker is optional and
// off by default; it only tightens the promotion latency for idle sites.
type Sweeper struct {
	log      *zap.Logger
	interval time.Duration
}

func NewSweeper(log *zap.Logger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{log: log, interval: interval}
}

// Start runs the sweeper in a goroutine until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	s.log.Info("Starting status sweeper", zap.Duration("interval", s.interval))
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runSweeps(ctx)
			}
		}
	}()
}

func (s *Sweeper) runSweeps(ctx context.Context) {
	now := time.Now()
	if err := repository.PublishDueSurveys(ctx, now); err != nil {
		s.log.Error("Failed to publish due surveys", zap.Error(err))
	}
	if err := repository.FinishDueSurveys(ctx, now); err != nil {
		s.log.Error("Failed to finish due surveys", zap.Error(err))
	}
}
