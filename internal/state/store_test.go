package state

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetCreatesLazily(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Peek("U1")
	assert.False(t, ok)

	s := store.Get("U1")
	require.NotNil(t, s)
	assert.Equal(t, IntentNone, s.CurrentIntent)

	again, ok := store.Peek("U1")
	require.True(t, ok)
	assert.Same(t, s, again, "Get must return the same record on every call")
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s := store.Get(fmt.Sprintf("U%d", n%10))
			s.SetState(IntentSpecQuery, true)
			store.All()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.All(), 10)
}

func TestCleaner_SweepResetsOnlyExpired(t *testing.T) {
	store := NewMemoryStore()

	stale := store.Get("stale")
	stale.SetState(IntentRecommend, true)
	stale.SetContext(ContextDeviceType, "手機")
	stale.LastActivityAt = stale.LastActivityAt.Add(-DefaultTTL - 1)

	fresh := store.Get("fresh")
	fresh.SetState(IntentCompare, true)

	cleaner := NewCleaner(store, nil, DefaultTTL, DefaultTTL)

	var resets int
	cleaner.OnSweep(func(n int) { resets = n })
	cleaner.sweep()

	assert.Equal(t, 1, resets)
	assert.Equal(t, IntentNone, stale.CurrentIntent)
	assert.Empty(t, stale.Context)
	assert.Equal(t, IntentCompare, fresh.CurrentIntent)
	assert.True(t, fresh.AwaitingInput)
}
