package machines

import "github.com/aretw0/turing/pkg/domain"

// Final states of the comparator.
const (
	CompareLess    = 6
	CompareGreater = 7
	CompareEqual   = 8
)

// Compare decides how two unary numbers relate. The input is A ones, a 0 separator,
// then B ones, e.g. "110111" for 2 and 3. The tape starts at cell 1 over blanks so the
// scan back to the left always finds a marker before the edge.
//
// Each round crosses out one 1 of A and one 1 of B with X. The machine halts in
// CompareLess when A runs out first, CompareGreater when B does, and CompareEqual when
// both run out together.
func Compare() Definition {
	return Definition{
		Name:        "compare",
		Description: "Compare unary A and B separated by 0 (e.g. 110111 is 2 vs 3).",
		Alphabet:    domain.Symbols("01X_"),
		Fill:        domain.Blank,
		Cursor:      1,
		HaltLabels: map[int]string{
			CompareLess:    "A < B",
			CompareGreater: "A > B",
			CompareEqual:   "A = B",
		},
		Table: domain.Table{
			// 0: cross out the next 1 of A, or go check B once A is used up.
			func(s domain.Symbol) domain.Action {
				if s == '1' {
					return domain.NewAction('X', domain.MoveRight, 1)
				}
				return domain.NewAction('0', domain.MoveRight, 5)
			},
			// 1: skip the rest of A up to the separator.
			func(s domain.Symbol) domain.Action {
				if s == '1' {
					return domain.NewAction('1', domain.MoveRight, 1)
				}
				return domain.NewAction('0', domain.MoveRight, 2)
			},
			// 2: skip crossed-out Bs and cross out the next one; a blank means B ran out.
			func(s domain.Symbol) domain.Action {
				switch s {
				case 'X':
					return domain.NewAction('X', domain.MoveRight, 2)
				case '1':
					return domain.NewAction('X', domain.MoveLeft, 3)
				default:
					return domain.NewAction(domain.Blank, domain.MoveLeft, CompareGreater)
				}
			},
			// 3: walk back over crossed-out Bs to the separator.
			func(s domain.Symbol) domain.Action {
				if s == 'X' {
					return domain.NewAction('X', domain.MoveLeft, 3)
				}
				return domain.NewAction('0', domain.MoveLeft, 4)
			},
			// 4: walk back over the rest of A to the last X.
			func(s domain.Symbol) domain.Action {
				if s == '1' {
					return domain.NewAction('1', domain.MoveLeft, 4)
				}
				return domain.NewAction('X', domain.MoveRight, 0)
			},
			// 5: A is used up; any 1 left in B means A < B.
			func(s domain.Symbol) domain.Action {
				switch s {
				case 'X':
					return domain.NewAction('X', domain.MoveRight, 5)
				case domain.Blank:
					return domain.NewAction(domain.Blank, domain.MoveLeft, CompareEqual)
				default:
					return domain.NewAction('1', domain.MoveRight, CompareLess)
				}
			},
			haltIn(CompareLess),
			haltIn(CompareGreater),
			haltIn(CompareEqual),
		},
	}
}

func haltIn(state int) domain.Transition {
	return func(domain.Symbol) domain.Action {
		return domain.NewAction(domain.Blank, domain.MoveHalt, state)
	}
}
