package turing

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machines"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/registry"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/aretw0/turing/pkg/tape"
	"go.opentelemetry.io/otel/trace"
)

// Engine is the high-level entry point for the library.
// It resolves machines by name, builds their tapes and runs them, keeping a snapshot
// of every run.
type Engine struct {
	registry   *registry.Registry
	store      ports.SnapshotStore
	runner     *runner.Runner
	logger     *slog.Logger
	capacity   int
	runnerOpts []runner.Option
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithRegistry replaces the built-in machine catalog.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithStore sets where run snapshots are kept (in memory by default).
func WithStore(store ports.SnapshotStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.runnerOpts = append(e.runnerOpts, runner.WithLifecycleHooks(hooks))
	}
}

// WithMaxSteps bounds every run. Zero means unbounded.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.runnerOpts = append(e.runnerOpts, runner.WithMaxSteps(n))
	}
}

// WithCapacity sets the number of cells of every tape (default tape.DefaultCapacity).
func WithCapacity(n int) Option {
	return func(e *Engine) {
		e.capacity = n
	}
}

// WithTracer sets the tracer used for run spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		e.runnerOpts = append(e.runnerOpts, runner.WithTracer(tracer))
	}
}

// WithRunnerOptions passes low-level options to the underlying runner.
func WithRunnerOptions(opts ...runner.Option) Option {
	return func(e *Engine) {
		e.runnerOpts = append(e.runnerOpts, opts...)
	}
}

// New initializes a new Engine holding the built-in machines and an in-memory store.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{capacity: tape.DefaultCapacity}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.capacity <= 0 {
		return nil, fmt.Errorf("tape capacity must be positive, got %d", eng.capacity)
	}
	if eng.registry == nil {
		eng.registry = registry.NewDefault()
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	runnerOpts := []runner.Option{
		runner.WithLogger(eng.logger),
		runner.WithStore(eng.store),
	}
	// user options last so they can override the defaults above
	runnerOpts = append(runnerOpts, eng.runnerOpts...)
	eng.runner = runner.New(runnerOpts...)

	return eng, nil
}

// RunRequest describes a run of a registered machine.
type RunRequest struct {
	// Machine is the registered name.
	Machine string `json:"machine" mapstructure:"machine"`

	// Tape is seeded starting at the cursor. Whitespace is ignored.
	Tape string `json:"tape" mapstructure:"tape"`

	// Cursor and Fill override the machine defaults when set.
	Cursor *int    `json:"cursor,omitempty" mapstructure:"cursor"`
	Fill   *string `json:"fill,omitempty" mapstructure:"fill"`
}

// Machines returns the registered machines sorted by name.
func (e *Engine) Machines() []machines.Definition {
	return e.registry.List()
}

// Machine looks up a registered machine.
func (e *Engine) Machine(name string) (machines.Definition, error) {
	return e.registry.Get(name)
}

// Register adds a machine to the engine's registry.
func (e *Engine) Register(def machines.Definition) error {
	return e.registry.Register(def)
}

// NewTape builds the initial tape a request describes without running it.
func (e *Engine) NewTape(req RunRequest) (machines.Definition, *tape.Tape, error) {
	def, err := e.registry.Get(req.Machine)
	if err != nil {
		return machines.Definition{}, nil, err
	}

	cursor := def.Cursor
	if req.Cursor != nil {
		cursor = *req.Cursor
	}
	fill := def.Fill
	if req.Fill != nil {
		runes := []rune(*req.Fill)
		if len(runes) != 1 {
			return def, nil, fmt.Errorf("%w: fill must be a single symbol, got %q", domain.ErrInvalidInput, *req.Fill)
		}
		fill = runes[0]
		if len(def.Alphabet) > 0 && !slices.Contains(def.Alphabet, fill) {
			return def, nil, fmt.Errorf("%w: fill %q is not in the alphabet %q of %s",
				domain.ErrInvalidInput, fill, string(def.Alphabet), def.Name)
		}
	}

	room := 0
	if cursor >= 0 && cursor < e.capacity {
		room = e.capacity - cursor
	}
	input, err := runner.SanitizeInput(req.Tape, def.Alphabet, room)
	if err != nil {
		return def, nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	tp := tape.New(fill, cursor, tape.WithCapacity(e.capacity))
	if len(input) > 0 {
		tp.Seed(cursor, input...)
	}
	return def, tp, nil
}

// Run executes a registered machine to completion.
//
// Request errors (unknown machine, bad input) are returned with a nil snapshot.
// Once the tape exists the run always yields a snapshot, which carries the error text
// when the machine did not halt.
func (e *Engine) Run(ctx context.Context, req RunRequest) (*domain.Snapshot, error) {
	def, tp, err := e.NewTape(req)
	if err != nil {
		return nil, err
	}
	return e.runner.Run(ctx, def, tp)
}

// Snapshot loads a stored run.
func (e *Engine) Snapshot(ctx context.Context, runID string) (*domain.Snapshot, error) {
	return e.store.Load(ctx, runID)
}

// Runs returns every stored run, most recently finished first.
// Runs that disappear between listing and loading (e.g. expired) are skipped.
func (e *Engine) Runs(ctx context.Context) ([]*domain.Snapshot, error) {
	ids, err := e.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	runs := make([]*domain.Snapshot, 0, len(ids))
	for _, id := range ids {
		snap, err := e.store.Load(ctx, id)
		if errors.Is(err, domain.ErrRunNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load run %s: %w", id, err)
		}
		runs = append(runs, snap)
	}

	slices.SortStableFunc(runs, func(a, b *domain.Snapshot) int {
		if c := b.FinishedAt.Compare(a.FinishedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.RunID, b.RunID)
	})
	return runs, nil
}

// DeleteRun removes a stored run. Deleting an unknown run is not an error.
func (e *Engine) DeleteRun(ctx context.Context, runID string) error {
	return e.store.Delete(ctx, runID)
}

// Store returns the snapshot store used by the engine.
func (e *Engine) Store() ports.SnapshotStore {
	return e.store
}
