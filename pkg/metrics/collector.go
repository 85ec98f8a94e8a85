package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/wayneshih/threec-bot/internal/state"
)

var (
	botMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_total",
			Help: "Total number of inbound messages labeled by command and status",
		},
		[]string{"command", "status"},
	)
	messageDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "message_duration_seconds",
			Help:    "Duration of message handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)
	intentTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_transitions_total",
			Help: "Total number of conversation intent transitions",
		},
		[]string{"from", "to"},
	)
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors split by code and severity",
		},
		[]string{"code", "severity"},
	)
	activeUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_users",
			Help: "Current number of tracked users",
		},
	)
	usersByIntent = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "users_by_intent",
			Help: "Number of users per conversation intent",
		},
		[]string{"intent"},
	)
	completionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "completion_requests_total",
			Help: "Total number of completion-service requests labeled by model and status",
		},
		[]string{"model", "status"},
	)
)

func init() {
	state.RegisterTransitionRecorder(RecordIntentTransition)
}

// RecordCommand increments message counters and records handling duration.
func RecordCommand(command, status string, duration time.Duration) {
	if command == "" {
		command = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	botMessagesTotal.WithLabelValues(command, status).Inc()
	messageDurationSeconds.WithLabelValues(command).Observe(duration.Seconds())
}

// RecordIntentTransition tracks conversation state transitions.
func RecordIntentTransition(from, to string) {
	if from == "" {
		from = "unknown"
	}
	if to == "" {
		to = "unknown"
	}

	intentTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordError increments error counters with metadata.
func RecordError(code, severity string) {
	if code == "" {
		code = "unknown"
	}
	if severity == "" {
		severity = "unknown"
	}

	errorsTotal.WithLabelValues(code, severity).Inc()
}

// RecordCompletion counts one completion-service request.
func RecordCompletion(model, status string) {
	if model == "" {
		model = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	completionRequestsTotal.WithLabelValues(model, status).Inc()
}

// IntentCollector periodically gathers per-intent user counts from the state
// store and emits gauge metrics.
type IntentCollector struct {
	store state.Store
}

// NewIntentCollector builds a collector bound to the provided state store.
func NewIntentCollector(store state.Store) *IntentCollector {
	return &IntentCollector{store: store}
}

// Run polls the store every 10 seconds, updating user gauges until ctx is
// cancelled.
func (c *IntentCollector) Run(ctx context.Context) {
	if c == nil || c.store == nil {
		return
	}

	for {
		c.collect()

		select {
		case <-ctx.Done():
			return
		case <-time.After(10 * time.Second):
		}
	}
}

func (c *IntentCollector) collect() {
	records := c.store.All()
	activeUsers.Set(float64(len(records)))

	counts := make(map[string]int, len(records))
	for _, us := range records {
		label := "unknown"
		if us != nil && us.CurrentIntent != "" {
			label = string(us.CurrentIntent)
		}
		counts[label]++
	}

	usersByIntent.Reset()

	for _, intent := range state.Intents() {
		label := string(intent)
		usersByIntent.WithLabelValues(label).Set(float64(counts[label]))
		delete(counts, label)
	}

	for label, count := range counts {
		usersByIntent.WithLabelValues(label).Set(float64(count))
	}
}
