package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Aggregation Metrics
var (
	// ReloadsTotal tracks aggregation rebuilds by status
	ReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregation_reloads_total",
			Help: "Total aggregation rebuilds by status",
		},
		[]string{"status"},
	)

	// AggregatedApplications tracks the number of applications in the current table
	AggregatedApplications = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "aggregated_applications",
			Help: "Number of applications in the current aggregated table",
		},
	)

	// FallbackDocumentsTotal tracks source files replaced by built-in fallback data
	FallbackDocumentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aggregation_fallback_documents_total",
			Help: "Source documents replaced by built-in fallback data",
		},
		[]string{"app"},
	)
)

// Ranking Metrics
var (
	// RankingsTotal tracks ranking requests by metric
	RankingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rankings_total",
			Help: "Total rankings computed by metric",
		},
		[]string{"metric"},
	)
)

// Prediction Metrics
var (
	// PredictionsTotal tracks predictions by label
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total live predictions by predicted label",
		},
		[]string{"label"},
	)

	// PredictionDuration tracks vectorize + classify latency in seconds
	PredictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prediction_duration_seconds",
			Help:    "Prediction latency in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
	)
)

// HTTP Metrics
var (
	// HTTPErrorsTotal tracks HTTP errors by error kind
	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total HTTP errors by error kind",
		},
		[]string{"type"},
	)
)
