package machines

import "github.com/aretw0/turing/pkg/domain"

// FlipHalt is a single-state machine over {0, 1}: it keeps walking left over 1s and
// halts on the first other symbol after writing a 1 there.
func FlipHalt() Definition {
	return Definition{
		Name:        "flip-halt",
		Description: "Write 1 over the first non-1 cell (walking left) and halt.",
		Alphabet:    domain.Symbols("01"),
		Fill:        '0',
		Cursor:      0,
		Table: domain.Table{
			func(s domain.Symbol) domain.Action {
				if s == '1' {
					return domain.NewAction('1', domain.MoveLeft, 0)
				}
				return domain.NewAction('1', domain.MoveHalt, 0)
			},
		},
	}
}
