// Package metrics records merge and remap runs as Prometheus metrics on a
// private registry, for export through the node exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "lorenz"

	labelOutcome  = "outcome"
	labelSeverity = "severity"
)

// MergeStats holds the statistics of a single merge, decoupled from the
// merge package types.
type MergeStats struct {
	Classes   int
	Composed  int
	LeftOnly  int
	RightOnly int
	Dropped   int
	Errors    int
	Warnings  int
	Infos     int
	Duration  time.Duration
}

// RemapStats holds the query counters of a remapper.
type RemapStats struct {
	DirectHits    int64
	InheritedHits int64
	Misses        int64
	Completions   int64
}

// Recorder owns a registry and the instruments registered on it.
type Recorder struct {
	registry *prometheus.Registry

	mergeClasses     prometheus.Counter
	mergeMembers     *prometheus.CounterVec
	mergeDiagnostics *prometheus.CounterVec
	mergeDuration    prometheus.Histogram
	remapQueries     *prometheus.CounterVec
	remapCompletions prometheus.Counter
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		mergeClasses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "merge",
			Name:      "classes_total",
			Help:      "Classes written by merges.",
		}),
		mergeMembers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "merge",
			Name:      "members_total",
			Help:      "Merged members by outcome.",
		}, []string{labelOutcome}),
		mergeDiagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "merge",
			Name:      "diagnostics_total",
			Help:      "Merge diagnostics by severity.",
		}, []string{labelSeverity}),
		mergeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "merge",
			Name:      "duration_seconds",
			Help:      "Wall time of a merge.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		remapQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "remap",
			Name:      "queries_total",
			Help:      "Remapper member queries by outcome.",
		}, []string{labelOutcome}),
		remapCompletions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "remap",
			Name:      "completions_total",
			Help:      "Classes completed against the inheritance provider.",
		}),
	}

	r.registry.MustRegister(
		r.mergeClasses,
		r.mergeMembers,
		r.mergeDiagnostics,
		r.mergeDuration,
		r.remapQueries,
		r.remapCompletions,
	)

	return r
}

// Registry returns the recorder's registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// RecordMerge records one merge. Safe to call on a nil receiver (no-op).
func (r *Recorder) RecordMerge(stats MergeStats) {
	if r == nil {
		return
	}

	r.mergeClasses.Add(float64(stats.Classes))

	r.mergeMembers.WithLabelValues("composed").Add(float64(stats.Composed))
	r.mergeMembers.WithLabelValues("left_only").Add(float64(stats.LeftOnly))
	r.mergeMembers.WithLabelValues("right_only").Add(float64(stats.RightOnly))
	r.mergeMembers.WithLabelValues("dropped").Add(float64(stats.Dropped))

	r.mergeDiagnostics.WithLabelValues("error").Add(float64(stats.Errors))
	r.mergeDiagnostics.WithLabelValues("warning").Add(float64(stats.Warnings))
	r.mergeDiagnostics.WithLabelValues("info").Add(float64(stats.Infos))

	r.mergeDuration.Observe(stats.Duration.Seconds())
}

// RecordRemap records the counters of a remapper. Safe to call on a nil
// receiver (no-op).
func (r *Recorder) RecordRemap(stats RemapStats) {
	if r == nil {
		return
	}

	r.remapQueries.WithLabelValues("direct").Add(float64(stats.DirectHits))
	r.remapQueries.WithLabelValues("inherited").Add(float64(stats.InheritedHits))
	r.remapQueries.WithLabelValues("miss").Add(float64(stats.Misses))
	r.remapCompletions.Add(float64(stats.Completions))
}

// WriteTextfile writes every metric to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}

	return nil
}
