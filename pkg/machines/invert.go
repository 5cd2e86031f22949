package machines

import "github.com/aretw0/turing/pkg/domain"

// InvertError is written over symbols the inverter does not understand.
const InvertError domain.Symbol = 'E'

// Invert swaps 0 and 1 moving right until the first blank. Running it twice restores
// the input.
func Invert() Definition {
	return Definition{
		Name:        "invert",
		Description: "Swap every 0 and 1 up to the first blank, then halt.",
		Alphabet:    domain.Symbols("01_"),
		Fill:        domain.Blank,
		Cursor:      0,
		Table: domain.Table{
			func(s domain.Symbol) domain.Action {
				switch s {
				case domain.Blank:
					return domain.NewAction(domain.Blank, domain.MoveHalt, 0)
				case '0':
					return domain.NewAction('1', domain.MoveRight, 0)
				case '1':
					return domain.NewAction('0', domain.MoveRight, 0)
				default:
					return domain.NewAction(InvertError, domain.MoveHalt, 0)
				}
			},
		},
	}
}
