package observability

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "turing"

// Run outcomes used as the "outcome" label.
const (
	OutcomeHalted     = "halted"
	OutcomeOutOfBound = "out_of_bound"
	OutcomeBudget     = "budget_exhausted"
	OutcomeCanceled   = "canceled"
	OutcomeError      = "error"
)

// Metrics holds the run collectors and the registry they are registered on.
type Metrics struct {
	registry *prometheus.Registry

	runs       *prometheus.CounterVec
	steps      *prometheus.CounterVec
	runSteps   *prometheus.HistogramVec
	haltStates *prometheus.CounterVec
	active     prometheus.Gauge
}

// NewMetrics registers the collectors on a fresh registry, so several instances can
// coexist in tests.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished machine runs by outcome.",
		}, []string{"machine", "outcome"}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Transitions applied across all runs.",
		}, []string{"machine"}),
		runSteps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_steps",
			Help:      "Transitions applied per finished run.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"machine"}),
		haltStates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "halt_states_total",
			Help:      "Final state index of halted runs.",
		}, []string{"machine", "state"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "runs_active",
			Help:      "Runs currently stepping.",
		}),
	}
	m.registry.MustRegister(m.runs, m.steps, m.runSteps, m.haltStates, m.active)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(_ context.Context, _ *domain.RunEvent) {
			m.active.Inc()
		},
		OnStep: func(_ context.Context, ev *domain.StepEvent) {
			m.steps.WithLabelValues(ev.Machine).Inc()
		},
		OnHalt: func(_ context.Context, ev *domain.RunEvent) {
			m.finish(ev, OutcomeHalted)
			if ev.Snapshot != nil {
				m.haltStates.WithLabelValues(ev.Machine, strconv.Itoa(ev.Snapshot.State)).Inc()
			}
		},
		OnError: func(_ context.Context, ev *domain.RunEvent) {
			m.finish(ev, Outcome(ev.Err))
		},
	}
}

func (m *Metrics) finish(ev *domain.RunEvent, outcome string) {
	m.active.Dec()
	m.runs.WithLabelValues(ev.Machine, outcome).Inc()
	if ev.Snapshot != nil {
		m.runSteps.WithLabelValues(ev.Machine).Observe(float64(ev.Snapshot.Steps))
	}
}

// Outcome classifies the error that ended a run.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeHalted
	case errors.Is(err, domain.ErrOutOfBound):
		return OutcomeOutOfBound
	case errors.Is(err, domain.ErrStepBudget):
		return OutcomeBudget
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}
