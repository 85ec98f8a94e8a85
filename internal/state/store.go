package state

import "sync"

// Store is the process-wide mapping from LINE user id to conversation state.
// Entries are created lazily on first access and live for the process lifetime;
// expiry only resets a record's fields, it never evicts the record.
type Store interface {
	// Get returns the state for the given user, creating an idle record on first access.
	Get(userID string) *UserState
	// Peek returns the state for the given user without creating one.
	Peek(userID string) (*UserState, bool)
	// All returns a snapshot of every tracked record.
	All() []*UserState
}

// MemoryStore is the in-memory Store used by the single-instance deployment.
// The lock guards the map structure itself; per-record consistency is
// last-write-wins, which is sufficient for one message at a time per user.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*UserState
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*UserState)}
}

// Get returns the record for userID, creating it when absent.
func (m *MemoryStore) Get(userID string) *UserState {
	m.mu.RLock()
	s := m.states[userID]
	m.mu.RUnlock()

	if s != nil {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s = m.states[userID]; s == nil {
		s = NewUserState(userID)
		m.states[userID] = s
	}

	return s
}

// Peek returns the record for userID without creating one.
func (m *MemoryStore) Peek(userID string) (*UserState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.states[userID]
	return s, ok
}

// All returns a snapshot slice of every record in the store.
func (m *MemoryStore) All() []*UserState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*UserState, 0, len(m.states))
	for _, s := range m.states {
		all = append(all, s)
	}

	return all
}
