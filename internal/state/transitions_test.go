package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransitionAllowed(t *testing.T) {
	testCases := []struct {
		name    string
		from    Intent
		to      Intent
		allowed bool
	}{
		{name: "idle to spec query", from: IntentNone, to: IntentSpecQuery, allowed: true},
		{name: "idle to recommend type", from: IntentNone, to: IntentRecommendType, allowed: true},
		{name: "recommend type to recommend", from: IntentRecommendType, to: IntentRecommend, allowed: true},
		{name: "idle directly to recommend", from: IntentNone, to: IntentRecommend, allowed: false},
		{name: "spec query to price query", from: IntentSpecQuery, to: IntentPriceQuery, allowed: false},
		{name: "cancel from any state", from: IntentRecommend, to: IntentNone, allowed: true},
		{name: "cancel while idle", from: IntentNone, to: IntentNone, allowed: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, IsTransitionAllowed(tc.from, tc.to))
		})
	}
}

func TestApply_RecordsTransitions(t *testing.T) {
	type hop struct{ from, to string }
	var seen []hop

	RegisterTransitionRecorder(func(from, to string) {
		seen = append(seen, hop{from, to})
	})
	defer RegisterTransitionRecorder(nil)

	s := NewUserState("U1")
	assert.NoError(t, Apply(s, IntentCompare, true))
	assert.NoError(t, Apply(s, IntentNone, false))

	assert.Equal(t, []hop{{"none", "compare"}, {"compare", "none"}}, seen)
}

func TestCancel_ResetsAndRecords(t *testing.T) {
	type hop struct{ from, to string }
	var seen []hop

	RegisterTransitionRecorder(func(from, to string) {
		seen = append(seen, hop{from, to})
	})
	defer RegisterTransitionRecorder(nil)

	s := NewUserState("U1")
	assert.NoError(t, Apply(s, IntentRecommendType, true))
	s.SetContext(ContextDeviceType, "耳機")

	Cancel(s)

	assert.Equal(t, IntentNone, s.CurrentIntent)
	assert.False(t, s.AwaitingInput)
	assert.Empty(t, s.GetContext(ContextDeviceType, ""))
	assert.Equal(t, []hop{{"none", "recommend_type"}, {"recommend_type", "none"}}, seen)
}

func TestApply_RejectsInvalidTransition(t *testing.T) {
	s := NewUserState("U1")

	err := Apply(s, IntentRecommend, true)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, IntentNone, s.CurrentIntent)
	assert.False(t, s.AwaitingInput)
}
