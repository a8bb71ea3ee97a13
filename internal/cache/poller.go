package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/eventdeck/eventdeck/pkg/logging"
)

// DefaultRefreshInterval matches the remote store's expected staleness
// window.
const DefaultRefreshInterval = 10 * time.Second

// Poller drives a cache on a fixed schedule: one refresh immediately on
// Start, then one per interval. A tick that fires while the previous
// refresh is still in flight is skipped, never run concurrently.
type Poller struct {
	cache    *Cache
	interval time.Duration
	logger   *zerolog.Logger
	cron     *cron.Cron
}

// NewPoller creates a poller for the given cache. A non-positive
// interval falls back to DefaultRefreshInterval.
func NewPoller(c *Cache, interval time.Duration, logger *zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Poller{cache: c, interval: interval, logger: logger}
}

// Start performs the initial refresh and begins the schedule. An
// initial refresh failure is reported but does not prevent the schedule
// from starting; the next tick retries.
func (p *Poller) Start(ctx context.Context) error {
	if err := p.cache.Refresh(ctx); err != nil {
		p.logger.Warn().Err(err).Msg("Initial catalog refresh failed")
	}

	p.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.PrintfLogger(p.logger)),
	))

	_, err := p.cron.AddFunc(fmt.Sprintf("@every %s", p.interval), func() {
		// Refresh logs its own failures; the scheduled path has no
		// caller to report to.
		_ = p.cache.Refresh(ctx)
	})
	if err != nil {
		return err
	}

	p.cron.Start()
	p.logger.Info().Dur("interval", p.interval).Msg("Catalog poller started")
	return nil
}

// Stop cancels the schedule and waits for an in-flight refresh to
// finish.
func (p *Poller) Stop() {
	if p.cron == nil {
		return
	}
	<-p.cron.Stop().Done()
	p.logger.Info().Msg("Catalog poller stopped")
}
