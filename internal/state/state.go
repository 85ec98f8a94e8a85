// Package state manages per-user conversation state for the bot.
package state

import (
	"time"
)

// DefaultTTL is the idle duration after which a conversation is considered stale.
const DefaultTTL = 30 * time.Minute

// ContextDeviceType is the context key holding the device type collected by the
// first step of the recommend flow.
const ContextDeviceType = "device_type"

// UserState captures the conversation state for a single LINE user.
//
// The record is owned by the Store; handlers receive it only through the
// router. AwaitingInput may be true only while CurrentIntent is not IntentNone.
type UserState struct {
	UserID         string            `json:"user_id"`
	CurrentIntent  Intent            `json:"current_intent"`
	AwaitingInput  bool              `json:"awaiting_input"`
	Context        map[string]string `json:"context"`
	LastActivityAt time.Time         `json:"last_activity_at"`
}

// NewUserState returns a fresh idle record for the given user. LastActivityAt
// stays zero until the first mutation, so a brand-new record never expires.
func NewUserState(userID string) *UserState {
	return &UserState{
		UserID:        userID,
		CurrentIntent: IntentNone,
		Context:       make(map[string]string),
	}
}

// SetState overwrites the current intent and awaiting-input flag and refreshes
// the activity timestamp.
func (s *UserState) SetState(intent Intent, awaitingInput bool) {
	s.CurrentIntent = intent
	s.AwaitingInput = awaitingInput
	s.LastActivityAt = time.Now()
}

// Reset returns the record to the idle state, clears the context bag, and
// refreshes the activity timestamp.
func (s *UserState) Reset() {
	s.CurrentIntent = IntentNone
	s.AwaitingInput = false
	s.Context = make(map[string]string)
	s.LastActivityAt = time.Now()
}

// SetContext stores a context value and refreshes the activity timestamp.
func (s *UserState) SetContext(key, value string) {
	if s.Context == nil {
		s.Context = make(map[string]string)
	}
	s.Context[key] = value
	s.LastActivityAt = time.Now()
}

// GetContext reads a context value, returning def when the key is absent.
func (s *UserState) GetContext(key, def string) string {
	if v, ok := s.Context[key]; ok {
		return v
	}
	return def
}

// ContextCopy returns a snapshot of the context bag for handing to handlers.
func (s *UserState) ContextCopy() map[string]string {
	cp := make(map[string]string, len(s.Context))
	for k, v := range s.Context {
		cp[k] = v
	}
	return cp
}

// IsExpired reports whether the record has been idle longer than timeout.
// A record with no prior activity is never expired.
func (s *UserState) IsExpired(timeout time.Duration) bool {
	if s.LastActivityAt.IsZero() {
		return false
	}
	return time.Since(s.LastActivityAt) > timeout
}
