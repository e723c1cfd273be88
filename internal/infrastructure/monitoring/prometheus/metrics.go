package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AppMetrics holds all application metrics for the analysis pipeline.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Analysis layer
	AnalysisRequestsTotal *prometheus.CounterVec
	AnalysisDuration      *prometheus.HistogramVec
	EvidenceHitsTotal     *prometheus.CounterVec
	ClassificationsTotal  *prometheus.CounterVec
	PriorityScore         prometheus.Histogram

	// Routing layer
	RoutingRejectsTotal *prometheus.CounterVec

	// Pipeline health
	ComponentUp *prometheus.GaugeVec
}

// Default buckets.
var (
	defaultHTTPDurationBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	defaultAnalysisDurationBuckets = []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10}
	defaultPriorityScoreBuckets    = []float64{0, 1, 2, 5, 10, 25, 50, 100}
)

// NewAppMetrics registers all metrics against reg and returns the struct.
func NewAppMetrics(reg prometheus.Registerer) *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "path", "status_code"}),
		HTTPRequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: defaultHTTPDurationBuckets,
		}, []string{"method", "path"}),

		AnalysisRequestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "analysis_requests_total",
			Help: "Analysis requests by input source and outcome",
		}, []string{"source", "status"}),
		AnalysisDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "End-to-end analysis pipeline duration",
			Buckets: defaultAnalysisDurationBuckets,
		}, []string{"source"}),
		EvidenceHitsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "evidence_hits_total",
			Help: "Extracted evidence items by class",
		}, []string{"class"}),
		ClassificationsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "classifications_total",
			Help: "Classification outcomes by label and decision path",
		}, []string{"label", "mode"}),
		PriorityScore: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "analysis_priority_score",
			Help:    "Distribution of per-request priority scores",
			Buckets: defaultPriorityScoreBuckets,
		}),

		RoutingRejectsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "routing_rejects_total",
			Help: "File payloads rejected by the content router, by reason",
		}, []string{"reason"}),

		ComponentUp: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "pipeline_component_up",
			Help: "Whether an optional pipeline capability is active (1=up, 0=absent)",
		}, []string{"component"}),
	}
}
