// Package metrics provides Prometheus collectors for the conversation
// pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "usbackend"

// Turn status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	// turnDuration is a histogram of full conversation turn duration.
	turnDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "Histogram of full conversation turn duration in seconds",
			Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"status"},
	)

	// turnsTotal is a counter of processed conversation turns.
	turnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Total number of processed conversation turns",
		},
		[]string{"status"},
	)

	// detectedLanguageTotal counts which language won dual recognition.
	detectedLanguageTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detected_language_total",
			Help:      "Total turns by detected source language",
		},
		[]string{"language"},
	)

	// providerRequestDuration is a histogram of provider API call duration.
	providerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of provider API calls in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider", "operation"},
	)

	// providerRequestsTotal is a counter of provider API calls.
	providerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Total number of provider API calls",
		},
		[]string{"provider", "operation", "status"},
	)

	// sessionsSavedTotal counts completed session save transitions.
	sessionsSavedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_saved_total",
			Help:      "Total number of sessions transitioned to saved",
		},
	)

	// titleFallbacksTotal counts saves that used the fallback title.
	titleFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "title_fallbacks_total",
			Help:      "Total number of saves that fell back to the default title",
		},
	)
)

// Register registers all pipeline collectors with the given registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		turnDuration,
		turnsTotal,
		detectedLanguageTotal,
		providerRequestDuration,
		providerRequestsTotal,
		sessionsSavedTotal,
		titleFallbacksTotal,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveTurn records one completed (or failed) conversation turn.
func ObserveTurn(status string, duration time.Duration) {
	turnsTotal.WithLabelValues(status).Inc()
	turnDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordDetectedLanguage records the language that won dual recognition.
func RecordDetectedLanguage(language string) {
	detectedLanguageTotal.WithLabelValues(language).Inc()
}

// ObserveProviderRequest records one provider API call.
func ObserveProviderRequest(provider, operation, status string, duration time.Duration) {
	providerRequestsTotal.WithLabelValues(provider, operation, status).Inc()
	providerRequestDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

// RecordSessionSaved records a completed save transition.
func RecordSessionSaved() {
	sessionsSavedTotal.Inc()
}

// RecordTitleFallback records a save that used the fallback title.
func RecordTitleFallback() {
	titleFallbacksTotal.Inc()
}
