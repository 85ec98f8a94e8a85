package dedup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGuard_Seen(t *testing.T) {
	g := NewGuard(time.Minute)

	assert.False(t, g.Seen("evt-1"))
	assert.True(t, g.Seen("evt-1"))
	assert.False(t, g.Seen("evt-2"))
}

func TestGuard_EmptyIDNeverDeduplicated(t *testing.T) {
	g := NewGuard(time.Minute)

	assert.False(t, g.Seen(""))
	assert.False(t, g.Seen(""))
}

func TestGuard_ExpiredIDsAreForgotten(t *testing.T) {
	g := NewGuard(10 * time.Millisecond)

	assert.False(t, g.Seen("evt-1"))
	time.Sleep(20 * time.Millisecond)
	assert.False(t, g.Seen("evt-1"))
}

func TestGuard_Evict(t *testing.T) {
	g := NewGuard(10 * time.Millisecond)
	g.Seen("evt-1")
	time.Sleep(20 * time.Millisecond)

	g.evict()

	g.mu.Lock()
	defer g.mu.Unlock()
	assert.Empty(t, g.seen)
}
