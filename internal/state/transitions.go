package state

import "errors"

// ErrInvalidTransition indicates that a requested intent transition is not allowed.
var ErrInvalidTransition = errors.New("invalid intent transition")

var transitionRecorder = func(from, to string) {}

// RegisterTransitionRecorder allows external packages to observe intent transitions.
func RegisterTransitionRecorder(recorder func(from, to string)) {
	if recorder == nil {
		transitionRecorder = func(string, string) {}
		return
	}

	transitionRecorder = recorder
}

// validTransitions contains the permitted forward transitions between intents.
// Returning to IntentNone is always allowed and is not listed here.
var validTransitions = map[Intent][]Intent{
	IntentNone: {
		IntentSpecQuery,
		IntentPriceQuery,
		IntentCompare,
		IntentRecommendType,
		IntentRanking,
		IntentReview,
	},
	IntentRecommendType: {
		IntentRecommend,
	},
}

// IsTransitionAllowed reports whether moving from one intent to another is valid.
func IsTransitionAllowed(from, to Intent) bool {
	if to == IntentNone {
		return true
	}

	for _, intent := range validTransitions[from] {
		if intent == to {
			return true
		}
	}

	return false
}

// Apply performs a validated transition on the record: it checks the transition
// table, notifies the recorder, and overwrites intent and awaiting-input flag.
func Apply(s *UserState, to Intent, awaitingInput bool) error {
	from := s.CurrentIntent
	if !IsTransitionAllowed(from, to) {
		return ErrInvalidTransition
	}

	transitionRecorder(string(from), string(to))
	s.SetState(to, awaitingInput)
	return nil
}

// Cancel returns the record to the idle intent and clears its context bag.
// Unlike Apply it never fails; leaving a flow is always permitted.
func Cancel(s *UserState) {
	transitionRecorder(string(s.CurrentIntent), string(IntentNone))
	s.Reset()
}
