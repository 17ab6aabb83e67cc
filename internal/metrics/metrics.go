// Package metrics declares the Prometheus collectors exposed by the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AnalysisDuration records the wall time of each core analysis run.
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fintrace_analysis_duration_seconds",
		Help:    "Duration of a single forensic analysis run.",
		Buckets: prometheus.DefBuckets,
	})

	// AnalysisRequestsTotal counts analysis requests by outcome.
	AnalysisRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fintrace_analysis_requests_total",
		Help: "Total analyze requests, labeled by outcome.",
	}, []string{"outcome"})

	// CacheHitsTotal counts report cache lookups by outcome.
	CacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fintrace_cache_lookups_total",
		Help: "Total report cache lookups, labeled by hit or miss.",
	}, []string{"result"})

	// SuspiciousAccountsFlagged records how many accounts each analysis flags.
	SuspiciousAccountsFlagged = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fintrace_suspicious_accounts_flagged",
		Help:    "Number of suspicious accounts flagged per analysis.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	})

	// GraphExportFailuresTotal counts best-effort graph export failures.
	GraphExportFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fintrace_graph_export_failures_total",
		Help: "Total graph export attempts that failed (best-effort, never fails the request).",
	})
)

// Handler returns the HTTP handler that exposes collectors in the
// Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Register registers every collector against the default Prometheus
// registry. Called once at process startup.
func Register() {
	prometheus.MustRegister(
		AnalysisDuration,
		AnalysisRequestsTotal,
		CacheHitsTotal,
		SuspiciousAccountsFlagged,
		GraphExportFailuresTotal,
	)
}
