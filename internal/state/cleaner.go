package state

import (
	"context"
	"log/slog"
	"time"
)

// Cleaner resets conversation records that have been idle longer than the TTL.
// The router also resets expired records inline when a message arrives; the
// cleaner keeps the per-state gauges honest for users who simply walked away.
type Cleaner struct {
	store    Store
	log      *slog.Logger
	ttl      time.Duration
	interval time.Duration
	onSweep  func(reset int)
}

// NewCleaner constructs a Cleaner instance.
func NewCleaner(store Store, log *slog.Logger, ttl, interval time.Duration) *Cleaner {
	if log == nil {
		log = slog.Default()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Cleaner{
		store:    store,
		log:      log,
		ttl:      ttl,
		interval: interval,
	}
}

// OnSweep registers a callback invoked after every sweep with the number of
// records that were reset. Used to refresh metrics.
func (c *Cleaner) OnSweep(fn func(reset int)) {
	c.onSweep = fn
}

// Run executes the sweep loop until the context is cancelled.
func (c *Cleaner) Run(ctx context.Context) {
	if c == nil || c.store == nil {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.Info("state cleaner stopped")
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cleaner) sweep() {
	reset := 0
	for _, s := range c.store.All() {
		if s.CurrentIntent == IntentNone && !s.AwaitingInput {
			continue
		}

		if s.IsExpired(c.ttl) {
			c.log.Info("conversation expired", slog.String("user_id", s.UserID), slog.String("intent", string(s.CurrentIntent)))
			Cancel(s)
			reset++
		}
	}

	if c.onSweep != nil {
		c.onSweep(reset)
	}
}
