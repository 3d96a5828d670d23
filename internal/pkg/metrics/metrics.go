package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wallet_risk"

// Request outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeCached  = "cached"
)

var (
	AnalysisRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_requests_total",
		Help:      "Report lookups by outcome: served by the analysis service, failed, or cached.",
	}, []string{"outcome"})

	StaleResults = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_results_total",
		Help:      "Analysis results discarded because a newer request superseded them.",
	})

	AnalysisRequestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_request_duration_seconds",
		Help:      "Latency of analysis service requests.",
		Buckets:   prometheus.DefBuckets,
	})

	SessionTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Analysis session state transitions.",
	}, []string{"from", "to"})

	RiskBands = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "risk_band_reports_total",
		Help:      "Reports made ready for display, by risk band.",
	}, []string{"band", "source"})

	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Sessions currently held by the HTTP session store.",
	})
)

var registerOnce sync.Once

// MustRegisterMetrics registers all collectors with the default registerer once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		MustRegister(prometheus.DefaultRegisterer)
	})
}

// MustRegister registers all collectors with reg.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		AnalysisRequests,
		StaleResults,
		AnalysisRequestDuration,
		SessionTransitions,
		RiskBands,
		ActiveSessions,
	)
}
