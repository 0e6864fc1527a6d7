// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

// Package metrics provides Prometheus instrumentation for SwipeEats.
//
// Metrics cover the swipe interaction loop (swipes recorded, deck builds,
// scoring latency), model persistence, and the HTTP API. All metrics are
// registered with the default registry via promauto and exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Swipe Metrics
	SwipesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swipes_total",
			Help: "Total number of swipes recorded",
		},
		[]string{"direction"}, // "like", "dislike"
	)

	// Deck Metrics
	DeckBuildsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deck_builds_total",
			Help: "Total number of deck builds",
		},
	)

	DeckBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deck_build_duration_seconds",
			Help:    "Duration of scoring and reranking a full deck in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	DeckCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deck_candidates",
			Help:    "Number of catalog candidates considered per deck build",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
		},
	)

	// Persistence Metrics
	ModelSaveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "model_save_failures_total",
			Help: "Total number of failed user model writes",
		},
	)

	// Sprint Metrics
	SprintsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sprints_started_total",
			Help: "Total number of swipe sprints started",
		},
	)

	SprintsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sprints_completed_total",
			Help: "Total number of swipe sprints completed",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// Dataset Metrics
	DatasetRestaurants = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_restaurants",
			Help: "Number of restaurants loaded into the catalog",
		},
	)

	DatasetRowsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dataset_rows_skipped_total",
			Help: "Total number of dataset rows skipped during load",
		},
	)
)

// RecordSwipe increments the swipe counter for the given direction.
func RecordSwipe(liked bool) {
	direction := "dislike"
	if liked {
		direction = "like"
	}
	SwipesTotal.WithLabelValues(direction).Inc()
}

// RecordDeckBuild records a completed deck build.
func RecordDeckBuild(candidates int, duration time.Duration) {
	DeckBuildsTotal.Inc()
	DeckBuildDuration.Observe(duration.Seconds())
	DeckCandidates.Observe(float64(candidates))
}

// RecordDatasetLoad records the outcome of a catalog load.
func RecordDatasetLoad(loaded, skipped int) {
	DatasetRestaurants.Set(float64(loaded))
	DatasetRowsSkipped.Add(float64(skipped))
}

// RecordAPIRequest records an API request with duration.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// EngineObserver adapts the engine's instrumentation hooks onto the
// Prometheus metrics above.
type EngineObserver struct{}

// SwipeRecorded implements recommend.Observer.
func (EngineObserver) SwipeRecorded(liked bool) {
	RecordSwipe(liked)
}

// DeckBuilt implements recommend.Observer.
func (EngineObserver) DeckBuilt(candidates, _ int, duration time.Duration) {
	RecordDeckBuild(candidates, duration)
}

// PersistenceFailed implements recommend.Observer.
func (EngineObserver) PersistenceFailed() {
	ModelSaveFailures.Inc()
}

// SessionObserver adapts the sprint manager's instrumentation hooks onto the
// Prometheus metrics above.
type SessionObserver struct{}

// SprintStarted implements session.Observer.
func (SessionObserver) SprintStarted() {
	SprintsStarted.Inc()
}

// SprintCompleted implements session.Observer.
func (SessionObserver) SprintCompleted() {
	SprintsCompleted.Inc()
}
