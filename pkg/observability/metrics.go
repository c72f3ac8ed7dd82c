package observability

import (
	"context"

	"github.com/aretw0/madhouse/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "madhouse"

// Metrics counts what the harness selects, executes, skips and fails.
type Metrics struct {
	iterations *prometheus.CounterVec
	selected   *prometheus.CounterVec
	executed   *prometheus.CounterVec
	skipped    *prometheus.CounterVec
	failed     *prometheus.CounterVec
	apply      *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "iterations_total",
			Help:      "Number of generated sequences run, by mode.",
		}, []string{"mode"}),
		selected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_selected_total",
			Help:      "Number of commands drawn into sequences, by label.",
		}, []string{"command"}),
		executed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_executed_total",
			Help:      "Number of commands whose precondition held and that were applied.",
		}, []string{"command"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_skipped_total",
			Help:      "Number of commands skipped because their precondition failed.",
		}, []string{"command"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_failed_total",
			Help:      "Number of commands whose application raised a violation.",
		}, []string{"command"}),
		apply: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_apply_duration_seconds",
			Help:      "Duration of command applications.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
		}, []string{"command"}),
	}

	for _, c := range []prometheus.Collector{m.iterations, m.selected, m.executed, m.skipped, m.failed, m.apply} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that feed the collectors.
//
// Labels carry parameters (e.g. INCREMENT(7)); only the variant name before
// the first parenthesis is used so the series stay bounded.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnIterationStart: func(_ context.Context, e *domain.IterationEvent) {
			m.iterations.WithLabelValues(string(e.Mode)).Inc()
			for _, l := range e.Selected {
				m.selected.WithLabelValues(Variant(l)).Inc()
			}
		},
		OnCommandApplied: func(_ context.Context, e *domain.CommandEvent) {
			v := Variant(e.Label)
			m.executed.WithLabelValues(v).Inc()
			m.apply.WithLabelValues(v).Observe(e.Elapsed.Seconds())
		},
		OnCommandSkipped: func(_ context.Context, e *domain.CommandEvent) {
			m.skipped.WithLabelValues(Variant(e.Label)).Inc()
		},
		OnCommandFailed: func(_ context.Context, e *domain.CommandEvent) {
			m.failed.WithLabelValues(Variant(e.Label)).Inc()
		},
	}
}
