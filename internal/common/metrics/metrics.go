// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IntentsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_intents_classified_total",
			Help: "Total number of utterances classified, by entity and action",
		},
		[]string{"entity", "action"},
	)

	IntentConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assistant_intent_confidence",
			Help:    "Confidence score distribution of classified intents",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	CommandsRouted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_commands_routed_total",
			Help: "Total number of commands routed, by entity and outcome",
		},
		[]string{"entity", "outcome"},
	)

	ExternalOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_external_operation_duration_seconds",
			Help: "Duration of record-store and proxy operations in seconds",
		},
		[]string{"operation"},
	)

	PendingConfirmations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "assistant_pending_confirmations",
			Help: "Number of sessions currently awaiting delete confirmation",
		},
	)
)
