package ratelimit

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLimiter_AllowWithinLimit(t *testing.T) {
	l := New(3, time.Minute, testLogger())

	assert.True(t, l.Allow("U1"))
	assert.True(t, l.Allow("U1"))
	assert.True(t, l.Allow("U1"))
	assert.False(t, l.Allow("U1"))
	assert.True(t, l.Allow("U2"), "limits are per user")
}

func TestLimiter_WindowSlides(t *testing.T) {
	l := New(1, 20*time.Millisecond, testLogger())

	assert.True(t, l.Allow("U1"))
	assert.False(t, l.Allow("U1"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, l.Allow("U1"))
}

func TestLimiter_DisabledWhenLimitNonPositive(t *testing.T) {
	l := New(0, time.Minute, testLogger())

	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("U1"))
	}
}

func TestLimiter_CleanupEvictsIdleWindows(t *testing.T) {
	l := New(5, 10*time.Millisecond, testLogger())
	l.Allow("U1")
	time.Sleep(20 * time.Millisecond)

	l.cleanup()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.windows)
}
