// Package metrics exposes Prometheus instrumentation for the generation
// pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "terra_stage_duration_seconds",
		Help:    "Wall time per pipeline stage",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"stage"})

	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "terra_generations_total",
		Help: "Completed generation calls by outcome",
	}, []string{"outcome"})

	realismScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "terra_realism_score",
		Help:    "Total realism score of completed generations",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})
)

// RecordStage observes one stage's wall time.
func RecordStage(stage string, d time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordGeneration counts a finished generation call.
func RecordGeneration(outcome string) {
	generationsTotal.WithLabelValues(outcome).Inc()
}

// RecordScore observes the realism total of a successful run.
func RecordScore(total float64) {
	realismScore.Observe(total)
}
