// Package ratelimit applies a per-user sliding-window limit to inbound
// messages so one user cannot monopolize the completion budget.
package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type window struct {
	hits []time.Time
}

// Limiter enforces a fixed messages-per-window rule per LINE user id.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	span    time.Duration
	log     *slog.Logger
}

// New builds a Limiter allowing limit messages per span for each user.
// A non-positive limit disables limiting.
func New(limit int, span time.Duration, log *slog.Logger) *Limiter {
	if log == nil {
		log = slog.Default()
	}

	return &Limiter{
		windows: make(map[string]*window),
		limit:   limit,
		span:    span,
		log:     log,
	}
}

// Allow records a hit for userID and reports whether it stays within the
// window limit.
func (l *Limiter) Allow(userID string) bool {
	if l.limit <= 0 {
		return true
	}

	now := time.Now()
	start := now.Add(-l.span)

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.windows[userID]
	if w == nil {
		w = &window{hits: make([]time.Time, 0, 8)}
		l.windows[userID] = w
	}

	w.hits = dropBefore(w.hits, start)
	if len(w.hits) >= l.limit {
		l.log.Warn("rate limit exceeded", slog.String("user_id", userID))
		return false
	}

	w.hits = append(w.hits, now)
	return true
}

// Run evicts idle windows periodically until the context is cancelled.
func (l *Limiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

func (l *Limiter) cleanup() {
	cutoff := time.Now().Add(-l.span)

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, w := range l.windows {
		if len(w.hits) == 0 || w.hits[len(w.hits)-1].Before(cutoff) {
			delete(l.windows, key)
		}
	}
}

func dropBefore(hits []time.Time, start time.Time) []time.Time {
	first := 0
	for first < len(hits) && hits[first].Before(start) {
		first++
	}

	if first == 0 {
		return hits
	}

	copy(hits, hits[first:])
	return hits[:len(hits)-first]
}
