package domain

import (
	"errors"
	"fmt"
)

// Transition maps the symbol under the cursor to an Action.
//
// Transitions must be pure and total over the alphabet the tape uses: no hidden state,
// no side effects, and a defined Action for every symbol. Symbols outside the intended
// alphabet should map to something deterministic, typically an error marker plus Halt.
type Transition func(Symbol) Action

// Table is the ordered list of transitions. The index of a transition is its state ID
// and state 0 is the start state. A Table is never mutated while a tape runs on it and
// may be shared freely between concurrent runs.
type Table []Transition

// Lookup returns the transition for the given state.
func (t Table) Lookup(state int) (Transition, error) {
	if state < 0 || state >= len(t) {
		return nil, fmt.Errorf("%w: %d (table has %d states)", ErrUnknownState, state, len(t))
	}
	fn := t[state]
	if fn == nil {
		return nil, fmt.Errorf("%w: state %d has no transition", ErrInvalidTable, state)
	}
	return fn, nil
}

// Validate applies every transition to every symbol of the alphabet and reports all
// problems found: an empty table, nil transitions, unknown moves, and Next indices
// that point outside the table.
func Validate(table Table, alphabet []Symbol) error {
	if len(table) == 0 {
		return fmt.Errorf("%w: table is empty", ErrInvalidTable)
	}

	var errs []error
	for state, fn := range table {
		if fn == nil {
			errs = append(errs, fmt.Errorf("%w: state %d has no transition", ErrInvalidTable, state))
			continue
		}
		for _, sym := range alphabet {
			act := fn(sym)
			if act.Move < MoveLeft || act.Move > MoveHalt {
				errs = append(errs, fmt.Errorf("%w: state %d on %q returns %s", ErrInvalidTable, state, sym, act.Move))
			}
			if act.Next < 0 || act.Next >= len(table) {
				errs = append(errs, fmt.Errorf("%w: state %d on %q goes to unknown state %d", ErrInvalidTable, state, sym, act.Next))
			}
		}
	}
	return errors.Join(errs...)
}
