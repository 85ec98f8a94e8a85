// Package policy decides whether a device type counts as a 3C product. The
// source history carried two competing heuristics (a keyword list and the
// model's own judgment); this package makes the choice a single configurable
// policy instead of scattering it across handlers.
package policy

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Mode selects the authoritative classification heuristic.
type Mode string

const (
	// ModeKeywords matches the device type against a configured keyword list.
	ModeKeywords Mode = "keywords"
	// ModeModel defers entirely to the completion service's own judgment.
	ModeModel Mode = "model"
)

// defaultKeywords seed the keyword mode when no policy file is configured.
var defaultKeywords = []string{
	"手機", "智慧型手機", "筆電", "筆記型電腦", "電腦", "桌機", "平板",
	"耳機", "藍牙耳機", "相機", "螢幕", "顯示器", "鍵盤", "滑鼠",
	"喇叭", "音響", "智慧手錶", "手錶", "路由器", "充電器", "行動電源",
	"電視", "遊戲機", "主機",
}

// Classifier answers "is this a 3C device type" under the configured mode.
// Safe for concurrent use; Reload may run while IsDeviceType is being called.
type Classifier struct {
	mode Mode
	path string
	log  *slog.Logger

	mu       sync.RWMutex
	keywords []string
}

// New builds a Classifier. In keyword mode a non-empty path is loaded
// immediately; a missing or unreadable file falls back to the built-in list.
func New(mode Mode, path string, log *slog.Logger) *Classifier {
	if log == nil {
		log = slog.Default()
	}

	c := &Classifier{
		mode:     mode,
		path:     path,
		log:      log,
		keywords: defaultKeywords,
	}

	if mode == ModeKeywords && path != "" {
		if err := c.Reload(); err != nil {
			log.Warn("policy file unreadable, using built-in keywords", slog.String("path", path), slog.Any("error", err))
		}
	}

	return c
}

// Mode returns the configured heuristic.
func (c *Classifier) Mode() Mode {
	return c.mode
}

// IsDeviceType reports whether the given device type is in-domain. In model
// mode the answer is always true: the completion service's own judgment is
// authoritative and the handler reads it from the reply instead.
func (c *Classifier) IsDeviceType(deviceType string) bool {
	if c.mode == ModeModel {
		return true
	}

	deviceType = strings.TrimSpace(deviceType)
	if deviceType == "" {
		return false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, kw := range c.keywords {
		if strings.Contains(deviceType, kw) {
			return true
		}
	}

	return false
}

// Reload re-reads the keyword file. The current list is kept on any failure.
func (c *Classifier) Reload() error {
	if c.path == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(c.path)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	keywords := v.GetStringSlice("keywords")
	if len(keywords) == 0 {
		c.log.Warn("policy file has no keywords, keeping current list", slog.String("path", c.path))
		return nil
	}

	c.mu.Lock()
	c.keywords = keywords
	c.mu.Unlock()

	c.log.Info("policy keywords reloaded", slog.String("path", c.path), slog.Int("count", len(keywords)))
	return nil
}
