package domain

import "context"

// StepEvent describes one applied transition.
type StepEvent struct {
	RunID   string
	Machine string
	Step    int    // 1-based count after the transition
	From    int    // state before the transition
	Read    Symbol // symbol under the cursor before the write
	Action  Action
	Cursor  int // cursor after the move
}

// RunEvent describes the start or the end of a run.
type RunEvent struct {
	RunID    string
	Machine  string
	Snapshot *Snapshot // nil on start
	Err      error
}

// LifecycleHooks defines callbacks for run observability.
// Any field may be nil. Hooks are invoked synchronously by the runner, never by the tape.
type LifecycleHooks struct {
	OnRunStart func(context.Context, *RunEvent)
	OnStep     func(context.Context, *StepEvent)
	OnHalt     func(context.Context, *RunEvent)
	OnError    func(context.Context, *RunEvent)
}

// Merge returns hooks that call h first and then other for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart: chainRun(h.OnRunStart, other.OnRunStart),
		OnStep:     chainStep(h.OnStep, other.OnStep),
		OnHalt:     chainRun(h.OnHalt, other.OnHalt),
		OnError:    chainRun(h.OnError, other.OnError),
	}
}

func chainRun(a, b func(context.Context, *RunEvent)) func(context.Context, *RunEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, ev *RunEvent) {
		a(ctx, ev)
		b(ctx, ev)
	}
}

func chainStep(a, b func(context.Context, *StepEvent)) func(context.Context, *StepEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, ev *StepEvent) {
		a(ctx, ev)
		b(ctx, ev)
	}
}
