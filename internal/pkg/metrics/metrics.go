package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Fetch outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// Registry holds every riskboard metric and is served on the metrics path.
var Registry = prometheus.NewRegistry()

var (
	// FetchTotal counts scoring-service calls by kind and outcome.
	FetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskboard_fetch_total",
			Help: "Total number of scoring-service fetches.",
		},
		[]string{"kind", "outcome"}, // kind: models/vehicles/detail
	)

	// FetchLatency records the duration of scoring-service calls.
	FetchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "riskboard_fetch_latency_seconds",
			Help:    "Latency of scoring-service fetches.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// StaleDiscardedTotal counts completions dropped because a newer request
	// of the same kind had been issued.
	StaleDiscardedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskboard_stale_completions_total",
			Help: "Fetch completions discarded because they were superseded.",
		},
		[]string{"kind"},
	)

	// ActiveSessions is the number of live dashboard sessions.
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "riskboard_active_sessions",
			Help: "Number of live dashboard sessions.",
		},
	)

	// AlertsPublishedTotal counts high-risk alerts by outcome.
	AlertsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskboard_alerts_published_total",
			Help: "High-risk vehicle alerts published to the broker.",
		},
		[]string{"outcome"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		FetchTotal,
		FetchLatency,
		StaleDiscardedTotal,
		ActiveSessions,
		AlertsPublishedTotal,
	)
}
