package tape

import (
	"fmt"
	"iter"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// DefaultCapacity is the number of cells of a tape built without WithCapacity.
const DefaultCapacity = 256

// Tape is a fixed-capacity Turing machine tape and its execution state.
type Tape struct {
	cells  []domain.Symbol
	cursor int
	state  int
	halted bool
	steps  int
	last   domain.Action

	// highest cell index seeded or visited, for display only
	used int
}

// Option configures a Tape at construction.
type Option func(*Tape)

// WithCapacity sets the number of cells. It panics if n is not positive.
func WithCapacity(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("tape: capacity must be positive, got %d", n))
	}
	return func(t *Tape) {
		t.cells = make([]domain.Symbol, n)
	}
}

// New creates a tape with every cell set to fill and the cursor at cursor.
// The cursor is not validated here; an invalid position fails the first Step.
func New(fill domain.Symbol, cursor int, opts ...Option) *Tape {
	t := &Tape{cursor: cursor, used: -1}
	for _, opt := range opts {
		opt(t)
	}
	if t.cells == nil {
		t.cells = make([]domain.Symbol, DefaultCapacity)
	}
	for i := range t.cells {
		t.cells[i] = fill
	}
	if t.validCursor() {
		t.used = cursor
	}
	return t
}

// Write stores s at cell i. It is meant for seeding a tape before Run.
// It panics if i is not a cell of the tape.
func (t *Tape) Write(i int, s domain.Symbol) {
	if i < 0 || i >= len(t.cells) {
		panic(fmt.Sprintf("tape: write to cell %d of a %d-cell tape", i, len(t.cells)))
	}
	t.cells[i] = s
	t.touch(i)
}

// Seed writes symbols into consecutive cells starting at offset.
func (t *Tape) Seed(offset int, symbols ...domain.Symbol) {
	for i, s := range symbols {
		t.Write(offset+i, s)
	}
}

// Step applies exactly one transition.
//
// It returns domain.ErrHalted without touching the tape if the machine already
// halted, a *domain.BoundError if the cursor is invalid or the move would leave the
// tape, and domain.ErrUnknownState if the current state is not in the table.
func (t *Tape) Step(table domain.Table) error {
	if t.halted {
		return domain.ErrHalted
	}
	if !t.validCursor() {
		return &domain.BoundError{Reason: domain.ReasonNoCursor, Position: t.cursor, Len: len(t.cells)}
	}

	fn, err := table.Lookup(t.state)
	if err != nil {
		return err
	}

	pos := t.cursor
	act := fn(t.cells[pos])
	t.cells[pos] = act.Write

	switch act.Move {
	case domain.MoveLeft:
		if pos == 0 {
			return &domain.BoundError{Reason: domain.ReasonLeftEdge, Position: pos, Len: len(t.cells)}
		}
		t.cursor = pos - 1
	case domain.MoveRight:
		if pos == len(t.cells)-1 {
			return &domain.BoundError{Reason: domain.ReasonRightEdge, Position: pos, Len: len(t.cells)}
		}
		t.cursor = pos + 1
	case domain.MoveHalt:
		t.halted = true
	default:
		return fmt.Errorf("%w: state %d returned %s", domain.ErrInvalidTable, t.state, act.Move)
	}

	t.touch(t.cursor)
	t.steps++
	t.state = act.Next
	t.last = act
	return nil
}

// Run steps until the machine halts or a step fails. The failing step's error is
// returned as is and the tape keeps the state of the last successful step (plus the
// write of the failing one). Run on a halted tape returns nil without stepping.
//
// Run does not detect non-termination. Callers that need a bound should drive Step
// themselves.
func (t *Tape) Run(table domain.Table) error {
	for !t.halted {
		if err := t.Step(table); err != nil {
			return err
		}
	}
	return nil
}

// Halted reports whether a Halt move was applied.
func (t *Tape) Halted() bool {
	return t.halted
}

// State returns the current state index. After a halt it is the Next of the halting
// action, which tells apart machines with several halting states.
func (t *Tape) State() int {
	return t.state
}

// Cursor returns the head position.
func (t *Tape) Cursor() int {
	return t.cursor
}

// Steps returns the number of successfully applied transitions.
func (t *Tape) Steps() int {
	return t.steps
}

// LastAction returns the action applied by the most recent successful Step, and
// false before the first one. A failed Step leaves it unchanged.
func (t *Tape) LastAction() (domain.Action, bool) {
	return t.last, t.steps > 0
}

// Len returns the fixed number of cells.
func (t *Tape) Len() int {
	return len(t.cells)
}

// Cell returns the symbol at i. It panics if i is not a cell of the tape.
func (t *Tape) Cell(i int) domain.Symbol {
	return t.cells[i]
}

// Cells yields every cell in index order. The sequence can be ranged over any number
// of times and reflects the tape at iteration time.
func (t *Tape) Cells() iter.Seq[domain.Symbol] {
	return func(yield func(domain.Symbol) bool) {
		for _, s := range t.cells {
			if !yield(s) {
				return
			}
		}
	}
}

// Snapshot copies the observable state of the tape.
func (t *Tape) Snapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Cells:  string(t.cells),
		Cursor: t.cursor,
		State:  t.state,
		Halted: t.halted,
		Steps:  t.steps,
	}
}

// String renders the cells up to the highest one seeded or visited.
func (t *Tape) String() string {
	if t.used < 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i <= t.used; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "[%c]", t.cells[i])
	}
	return b.String()
}

func (t *Tape) validCursor() bool {
	return t.cursor >= 0 && t.cursor < len(t.cells)
}

func (t *Tape) touch(i int) {
	if i > t.used {
		t.used = i
	}
}
