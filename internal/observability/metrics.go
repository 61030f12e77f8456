package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Analysis run outcomes
const (
	OutcomeOK        = "ok"
	OutcomeBlank     = "blank"
	OutcomeBusy      = "busy"
	OutcomeCancelled = "cancelled"
)

var (
	AnalysisRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_analysis_runs_total",
			Help: "Total number of analysis runs by outcome",
		},
		[]string{"outcome"},
	)
	AnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ats_analysis_duration_seconds",
			Help:    "Analysis run duration in seconds, pacing delay included",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
	)
	OverallScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ats_overall_score",
			Help:    "Distribution of overall ATS scores ([0,100])",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	AutosaveOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ats_autosave_operations_total",
			Help: "Total number of autosave operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)
)

var registerOnce sync.Once

// InitMetrics registers every collector with the default registry. Safe to call
// more than once. Collectors work unregistered, so tests need not call it.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			AnalysisRunsTotal,
			AnalysisDuration,
			OverallScoreHistogram,
			AutosaveOpsTotal,
			HTTPRequestsTotal,
			HTTPRequestDuration,
		)
	})
}

// ObserveAnalysis records one analysis run. overall is only recorded for
// successful runs.
func ObserveAnalysis(outcome string, duration time.Duration, overall int) {
	AnalysisRunsTotal.WithLabelValues(outcome).Inc()
	if outcome != OutcomeOK {
		return
	}
	AnalysisDuration.Observe(duration.Seconds())
	OverallScoreHistogram.Observe(float64(overall))
}

// ObserveAutosave records one autosave operation ("save" or "restore").
func ObserveAutosave(operation, result string) {
	AutosaveOpsTotal.WithLabelValues(operation, result).Inc()
}

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(route, method string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}
