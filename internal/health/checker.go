// Package health aggregates component health checks behind one HTTP handler.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Checkable represents a component that can report its health status.
type Checkable interface {
	HealthCheck(ctx context.Context) error
}

// Checker aggregates health checks for multiple components.
type Checker struct {
	log    *slog.Logger
	checks map[string]Checkable
}

// NewChecker instantiates a Checker with the provided logger.
func NewChecker(log *slog.Logger) *Checker {
	return &Checker{
		log:    log,
		checks: make(map[string]Checkable),
	}
}

// AddCheck registers a checkable component by name.
func (c *Checker) AddCheck(name string, check Checkable) {
	if name == "" || check == nil {
		return
	}
	c.checks[name] = check
}

// Check runs all registered health checks and returns their statuses.
func (c *Checker) Check(ctx context.Context) map[string]string {
	results := make(map[string]string, len(c.checks))

	for name, check := range c.checks {
		if err := check.HealthCheck(ctx); err != nil {
			results[name] = err.Error()
			if c.log != nil {
				c.log.Error("health check failed", slog.String("component", name), slog.Any("error", err))
			}
			continue
		}

		results[name] = "OK"
	}

	return results
}

// Handler answers health probes with per-component statuses as JSON. Any
// failing component turns the response into a 503.
func (c *Checker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		results := c.Check(r.Context())

		status := http.StatusOK
		for _, result := range results {
			if result != "OK" {
				status = http.StatusServiceUnavailable
				break
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(results)
	})
}

// WishlistDirChecker verifies that the wishlist directory is writable.
type WishlistDirChecker struct {
	dir string
}

// NewWishlistDirChecker constructs a WishlistDirChecker.
func NewWishlistDirChecker(dir string) *WishlistDirChecker {
	return &WishlistDirChecker{dir: dir}
}

// HealthCheck writes and removes a probe file in the wishlist directory.
func (c *WishlistDirChecker) HealthCheck(_ context.Context) error {
	if c == nil || c.dir == "" {
		return errors.New("wishlist directory is not configured")
	}

	probe := filepath.Join(c.dir, ".healthcheck")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return err
	}

	return os.Remove(probe)
}

// CompletionConfigChecker verifies that the completion service credential is
// present. The API itself is not probed; a call would spend tokens on every
// probe interval.
type CompletionConfigChecker struct {
	apiKey string
}

// NewCompletionConfigChecker constructs a CompletionConfigChecker.
func NewCompletionConfigChecker(apiKey string) *CompletionConfigChecker {
	return &CompletionConfigChecker{apiKey: apiKey}
}

func (c *CompletionConfigChecker) HealthCheck(_ context.Context) error {
	if c == nil || c.apiKey == "" {
		return errors.New("completion api key is not configured")
	}
	return nil
}

// BotInfoGetter abstracts the subset of the messaging client used for health
// checks.
type BotInfoGetter interface {
	GetBotInfo() (*messaging_api.BotInfoResponse, error)
}

// LineChecker verifies that the LINE Messaging API is reachable with the
// configured credentials.
type LineChecker struct {
	api BotInfoGetter
}

// NewLineChecker constructs a LineChecker.
func NewLineChecker(api BotInfoGetter) *LineChecker {
	return &LineChecker{api: api}
}

// HealthCheck fetches the bot profile to ensure the channel token works.
func (c *LineChecker) HealthCheck(_ context.Context) error {
	if c == nil || c.api == nil {
		return errors.New("messaging client is not initialized")
	}

	_, err := c.api.GetBotInfo()
	return err
}
