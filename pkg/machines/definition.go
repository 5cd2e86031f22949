package machines

import (
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/tape"
)

// Definition describes a runnable machine.
type Definition struct {
	Name        string
	Description string

	// Alphabet lists every symbol the table is total over.
	Alphabet []domain.Symbol
	Table    domain.Table

	// Fill and Cursor are the defaults for a fresh tape.
	Fill   domain.Symbol
	Cursor int

	// HaltLabels names the meaning of final state indices, if any.
	HaltLabels map[int]string
}

// NewTape builds a tape with the definition's fill and cursor and seeds input at the
// cursor position.
func (d Definition) NewTape(input []domain.Symbol, opts ...tape.Option) *tape.Tape {
	t := tape.New(d.Fill, d.Cursor, opts...)
	t.Seed(d.Cursor, input...)
	return t
}

// Label returns the halt label for state, or "" if the machine does not name it.
func (d Definition) Label(state int) string {
	return d.HaltLabels[state]
}

// Validate checks the table against the alphabet.
func (d Definition) Validate() error {
	return domain.Validate(d.Table, d.Alphabet)
}

// All returns the built-in machines.
func All() []Definition {
	return []Definition{FlipHalt(), Invert(), Compare()}
}
