// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssessmentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "readiness_assessments_created_total",
			Help: "Total number of assessments persisted",
		},
	)

	AssessmentsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_assessments_failed_total",
			Help: "Total number of submissions that did not produce an assessment",
		},
		[]string{"reason"},
	)

	FeedbackOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_feedback_outcomes_total",
			Help: "Feedback synthesis outcomes (complete, partial, failed)",
		},
		[]string{"outcome"},
	)

	FeedbackFieldDefaults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_feedback_field_defaults_total",
			Help: "Feedback fields replaced with their default value",
		},
		[]string{"field"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readiness_llm_request_duration_seconds",
			Help:    "Duration of generative model calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider", "status"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "readiness_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Failure reasons recorded on AssessmentsFailed.
const (
	ReasonValidation = "validation"
	ReasonStorage    = "storage"
)
