// Package dedup guards against duplicate webhook event deliveries. The
// webhook endpoint always answers 200, but LINE may still redeliver events
// after a slow response, so each event id is processed at most once within
// the retention window.
package dedup

import (
	"context"
	"sync"
	"time"
)

// Guard is an in-memory set of recently seen event ids with TTL expiry.
type Guard struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
}

// NewGuard constructs a Guard retaining event ids for ttl.
func NewGuard(ttl time.Duration) *Guard {
	return &Guard{
		seen: make(map[string]time.Time),
		ttl:  ttl,
	}
}

// Seen marks the event id and reports whether it was already recorded within
// the retention window. An empty id is never deduplicated.
func (g *Guard) Seen(eventID string) bool {
	if eventID == "" {
		return false
	}

	now := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	if at, ok := g.seen[eventID]; ok && now.Sub(at) <= g.ttl {
		return true
	}

	g.seen[eventID] = now
	return false
}

// Run evicts expired ids periodically until the context is cancelled.
func (g *Guard) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.evict()
		}
	}
}

func (g *Guard) evict() {
	cutoff := time.Now().Add(-g.ttl)

	g.mu.Lock()
	defer g.mu.Unlock()

	for id, at := range g.seen {
		if at.Before(cutoff) {
			delete(g.seen, id)
		}
	}
}
