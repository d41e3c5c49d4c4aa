package scheduler

import (
	"context"
	"errors"
	"time"

	checkoutdomain "github.com/smallbiznis/shoplink/internal/checkout/domain"
	"github.com/smallbiznis/shoplink/internal/clock"
	"github.com/smallbiznis/shoplink/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("scheduler: invalid configuration")

const runTimeout = 10 * time.Minute

type Params struct {
	fx.In

	Config    config.Config
	Log       *zap.Logger
	Clock     clock.Clock
	Checkouts checkoutdomain.Service
}

// Scheduler drives the periodic abandoned-checkout sweep. The HTTP
// trigger endpoint stays available either way; the scheduler only
// removes the need for an external cron caller.
type Scheduler struct {
	log       *zap.Logger
	clock     clock.Clock
	checkouts checkoutdomain.Service
	interval  time.Duration
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Clock == nil || p.Checkouts == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:       p.Log.Named("scheduler"),
		clock:     p.Clock,
		checkouts: p.Checkouts,
		interval:  p.Config.SyncInterval,
	}, nil
}

func (s *Scheduler) RunOnce(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, runTimeout)
	defer cancel()

	start := s.clock.Now()
	count, err := s.checkouts.SyncAll(ctx)
	if err != nil {
		return err
	}

	s.log.Info("abandoned checkout sweep finished",
		zap.Int("checkouts_synced", count),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduled sweep failed", zap.Error(err))
		}
	}
}
