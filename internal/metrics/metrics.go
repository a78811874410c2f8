// Package metrics exposes normalization and command outcomes as
// Prometheus metrics. The client takes a plain observer interface, so
// this package is the only place that knows metrics are Prometheus at
// all.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer records command and normalization outcomes. It is
// incremented on the hot path, so every method is a counter or
// histogram update and nothing allocates.
type Observer struct {
	commandCount    *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	normalized      *prometheus.CounterVec
	failures        *prometheus.CounterVec
}

// NewObserver builds the metric vectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to use the global registry.
func NewObserver(reg prometheus.Registerer) *Observer {
	o := &Observer{
		commandCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "glide",
				Name:      "commands_total",
				Help:      "Total number of commands sent, partitioned by command name.",
			},
			[]string{"cmd"},
		),
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "glide",
				Name:      "command_duration_seconds",
				Help:      "Round-trip command latency in seconds, partitioned by command name.",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"cmd"},
		),
		normalized: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "glide",
				Name:      "replies_normalized_total",
				Help:      "Total replies normalized successfully, partitioned by operation.",
			},
			[]string{"op"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "glide",
				Name:      "normalization_failures_total",
				Help:      "Total normalization failures, partitioned by operation and error class.",
			},
			[]string{"op", "kind"},
		),
	}
	reg.MustRegister(o.commandCount, o.commandDuration, o.normalized, o.failures)
	return o
}

// CommandExecuted records one round trip of the named command.
func (o *Observer) CommandExecuted(cmd string, elapsed time.Duration) {
	o.commandCount.WithLabelValues(cmd).Inc()
	o.commandDuration.WithLabelValues(cmd).Observe(elapsed.Seconds())
}

// ReplyNormalized implements the client's diagnostics interface.
func (o *Observer) ReplyNormalized(op string) {
	o.normalized.WithLabelValues(op).Inc()
}

// NormalizationFailed implements the client's diagnostics interface.
func (o *Observer) NormalizationFailed(op, kind string) {
	o.failures.WithLabelValues(op, kind).Inc()
}
