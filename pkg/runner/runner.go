package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machines"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/tape"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/aretw0/turing/pkg/runner"

// Runner drives tapes to completion. A Runner is safe for concurrent use as long as
// each call gets its own tape.
type Runner struct {
	logger   *slog.Logger
	store    ports.SnapshotStore
	hooks    domain.LifecycleHooks
	maxSteps int
	tracer   trace.Tracer
	newID    func() string
	now      func() time.Time
}

// New creates a Runner. Without options it never persists, never logs and has no step
// budget.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(tracerName)
	}
	if r.newID == nil {
		r.newID = uuid.NewString
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Run steps tp with def's table until it halts, fails, runs out of budget or ctx is
// done. The returned snapshot is never nil and reflects the tape at the time Run
// returned; it is also saved to the store when one is configured.
func (r *Runner) Run(ctx context.Context, def machines.Definition, tp *tape.Tape) (*domain.Snapshot, error) {
	runID := r.newID()
	logger := r.logger.With("run_id", runID, "machine", def.Name)

	ctx, span := r.tracer.Start(ctx, "turing.run", trace.WithAttributes(
		attribute.String("turing.run_id", runID),
		attribute.String("turing.machine", def.Name),
		attribute.Int("turing.cursor", tp.Cursor()),
	))
	defer span.End()

	started := r.now()
	if r.hooks.OnRunStart != nil {
		r.hooks.OnRunStart(ctx, &domain.RunEvent{RunID: runID, Machine: def.Name})
	}
	logger.Info("run started", "cursor", tp.Cursor(), "cells", tp.Len(), "max_steps", r.maxSteps)

	runErr := r.loop(ctx, logger, runID, def, tp)

	snap := tp.Snapshot()
	snap.RunID = runID
	snap.Machine = def.Name
	snap.StartedAt = started
	snap.FinishedAt = r.now()
	if snap.Halted {
		snap.HaltLabel = def.Label(snap.State)
	}
	if runErr != nil {
		snap.Error = runErr.Error()
	}

	span.SetAttributes(
		attribute.Int("turing.steps", snap.Steps),
		attribute.Int("turing.state", snap.State),
		attribute.Bool("turing.halted", snap.Halted),
	)

	event := &domain.RunEvent{RunID: runID, Machine: def.Name, Snapshot: snap, Err: runErr}
	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
		logger.Warn("run failed", "error", runErr, "steps", snap.Steps, "state", snap.State, "cursor", snap.Cursor)
		if r.hooks.OnError != nil {
			r.hooks.OnError(ctx, event)
		}
	} else {
		logger.Info("run halted", "steps", snap.Steps, "state", snap.State, "label", snap.HaltLabel)
		if r.hooks.OnHalt != nil {
			r.hooks.OnHalt(ctx, event)
		}
	}

	if r.store != nil {
		// persist even if ctx was canceled, the run already happened
		if err := r.store.Save(context.WithoutCancel(ctx), snap); err != nil {
			logger.Error("failed to save run", "error", err)
			runErr = errors.Join(runErr, fmt.Errorf("save run %s: %w", runID, err))
		}
	}

	return snap, runErr
}

func (r *Runner) loop(ctx context.Context, logger *slog.Logger, runID string, def machines.Definition, tp *tape.Tape) error {
	debug := logger.Enabled(ctx, slog.LevelDebug)

	for !tp.Halted() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.maxSteps > 0 && tp.Steps() >= r.maxSteps {
			return fmt.Errorf("%w after %d steps", domain.ErrStepBudget, tp.Steps())
		}

		from, pos := tp.State(), tp.Cursor()
		var read domain.Symbol
		if pos >= 0 && pos < tp.Len() {
			read = tp.Cell(pos)
		}

		if err := tp.Step(def.Table); err != nil {
			return err
		}

		if debug || r.hooks.OnStep != nil {
			act, _ := tp.LastAction()
			ev := &domain.StepEvent{
				RunID:   runID,
				Machine: def.Name,
				Step:    tp.Steps(),
				From:    from,
				Read:    read,
				Action:  act,
				Cursor:  tp.Cursor(),
			}
			if debug {
				logger.Debug("step", "step", ev.Step, "from", ev.From, "read", string(ev.Read),
					"write", string(ev.Action.Write), "move", ev.Action.Move, "next", ev.Action.Next, "cursor", ev.Cursor)
			}
			if r.hooks.OnStep != nil {
				r.hooks.OnStep(ctx, ev)
			}
		}
	}
	return nil
}
