package observability_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, observability.OutcomeHalted},
		{&domain.BoundError{Reason: domain.ReasonLeftEdge}, observability.OutcomeOutOfBound},
		{fmt.Errorf("run: %w", domain.ErrStepBudget), observability.OutcomeBudget},
		{context.Canceled, observability.OutcomeCanceled},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), observability.OutcomeCanceled},
		{domain.ErrUnknownState, observability.OutcomeError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, observability.Outcome(tt.err), "Outcome(%v)", tt.err)
	}
}

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnRunStart(ctx, &domain.RunEvent{Machine: "compare"})
	for i := 0; i < 3; i++ {
		hooks.OnStep(ctx, &domain.StepEvent{Machine: "compare"})
	}
	hooks.OnHalt(ctx, &domain.RunEvent{Machine: "compare", Snapshot: &domain.Snapshot{State: 6, Steps: 3}})

	hooks.OnRunStart(ctx, &domain.RunEvent{Machine: "flip-halt"})
	hooks.OnError(ctx, &domain.RunEvent{
		Machine:  "flip-halt",
		Snapshot: &domain.Snapshot{Steps: 2},
		Err:      &domain.BoundError{Reason: domain.ReasonLeftEdge},
	})

	count, err := testutil.GatherAndCount(m.Registry(), "turing_halt_states_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	body := scrape(t, m)
	assert.Contains(t, body, `turing_runs_total{machine="compare",outcome="halted"} 1`)
	assert.Contains(t, body, `turing_runs_total{machine="flip-halt",outcome="out_of_bound"} 1`)
	assert.Contains(t, body, `turing_steps_total{machine="compare"} 3`)
	assert.Contains(t, body, `turing_halt_states_total{machine="compare",state="6"} 1`)
	assert.Contains(t, body, `turing_runs_active 0`)
}

func scrape(t *testing.T, m *observability.Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}
