package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := LifecycleHooks{
		OnStep: func(context.Context, *StepEvent) { calls = append(calls, "a.step") },
		OnHalt: func(context.Context, *RunEvent) { calls = append(calls, "a.halt") },
	}
	b := LifecycleHooks{
		OnStep:  func(context.Context, *StepEvent) { calls = append(calls, "b.step") },
		OnError: func(context.Context, *RunEvent) { calls = append(calls, "b.error") },
	}

	merged := a.Merge(b)
	ctx := context.Background()
	merged.OnStep(ctx, &StepEvent{})
	merged.OnHalt(ctx, &RunEvent{})
	merged.OnError(ctx, &RunEvent{})

	assert.Nil(t, merged.OnRunStart)
	assert.Equal(t, []string{"a.step", "b.step", "a.halt", "b.error"}, calls)
}
