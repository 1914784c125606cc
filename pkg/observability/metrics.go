package observability

import (
	"context"

	"github.com/aretw0/planner/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "planner"

// Metrics holds the Prometheus collectors fed by search lifecycle events.
type Metrics struct {
	searches  *prometheus.CounterVec
	running   prometheus.Gauge
	expanded  *prometheus.CounterVec
	generated *prometheus.CounterVec
	dropped   *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	planCost  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of finished searches",
			},
			[]string{"strategy", "status", "reason"},
		),
		running: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "searches_running",
				Help:      "Number of searches currently running",
			},
		),
		expanded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "nodes_expanded_total",
				Help:      "Total number of expanded nodes",
			},
			[]string{"strategy"},
		),
		generated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "nodes_generated_total",
				Help:      "Total number of generated nodes",
			},
			[]string{"strategy"},
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "nodes_dropped_total",
				Help:      "Successors discarded because of dead ends or store capacity",
			},
			[]string{"strategy"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Duration of searches",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"strategy", "status"},
		),
		planCost: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "plan_cost",
				Help:      "Cost of plans found",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"strategy"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.collectors()...)
	}
	return m
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.searches, m.running, m.expanded, m.generated, m.dropped, m.duration, m.planCost}
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSearchStart: func(_ context.Context, e *domain.SearchEvent) {
			m.running.Inc()
		},
		OnNodeExpand: func(_ context.Context, e *domain.NodeEvent) {
			m.expanded.WithLabelValues(string(e.Strategy)).Inc()
		},
		OnNodeGenerate: func(_ context.Context, e *domain.NodeEvent) {
			m.generated.WithLabelValues(string(e.Strategy)).Inc()
		},
		OnSearchEnd: func(_ context.Context, e *domain.SearchEvent) {
			m.running.Dec()
			strategy := string(e.Strategy)
			m.searches.WithLabelValues(strategy, string(e.Status), string(e.Reason)).Inc()
			m.duration.WithLabelValues(strategy, string(e.Status)).Observe(e.Stats.Elapsed.Seconds())
			if e.Stats.Dropped > 0 {
				m.dropped.WithLabelValues(strategy).Add(float64(e.Stats.Dropped))
			}
		},
	}
}

// ObservePlan records the cost of a found plan.
func (m *Metrics) ObservePlan(strategy domain.Strategy, plan *domain.Plan) {
	if plan == nil {
		return
	}
	m.planCost.WithLabelValues(string(strategy)).Observe(plan.Cost)
}
