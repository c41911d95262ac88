package services

import (
	"context"
	"log/slog"
	"time"

	"eventinvite/internal/domain"
)

// Purger periodically evicts events older than the retention window. A sweep
// is just another caller of the store's load-modify-save cycle, so it can
// delay foreground requests but never corrupt them.
type Purger struct {
	store  domain.EventStore
	logger *slog.Logger
	period time.Duration
	maxAge time.Duration
	retry  time.Duration
}

// NewPurger creates a Purger. period is the idle time between sweeps, maxAge
// the retention window, retry the pause after a failed sweep.
func NewPurger(store domain.EventStore, logger *slog.Logger, period, maxAge, retry time.Duration) *Purger {
	return &Purger{store: store, logger: logger, period: period, maxAge: maxAge, retry: retry}
}

// Run loops until ctx is canceled. Sweep failures are always transient: they
// are retried on a short fixed interval, never escalated.
func (p *Purger) Run(ctx context.Context) {
	for {
		p.logger.Info("next purge scheduled", "in", p.period.String())
		if !sleep(ctx, p.period) {
			return
		}
		p.logger.Info("performing scheduled purge of expired events")
		for {
			removed, err := p.store.RemoveExpired(ctx, p.maxAge)
			if err == nil {
				if removed > 0 {
					p.logger.Info("purged expired events", "count", removed)
				}
				break
			}
			p.logger.Warn("purge failed, retrying", "retry_in", p.retry.String(), "err", err)
			if !sleep(ctx, p.retry) {
				return
			}
		}
	}
}

// sleep waits for d, returning false if ctx was canceled first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
