package domain

import "fmt"

// Move is the head movement requested by a transition.
type Move int

const (
	MoveLeft Move = iota
	MoveRight
	MoveHalt
)

func (m Move) String() string {
	switch m {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveHalt:
		return "halt"
	default:
		return fmt.Sprintf("move(%d)", int(m))
	}
}

// MarshalText encodes the move by name so snapshots and API payloads stay readable.
func (m Move) MarshalText() ([]byte, error) {
	switch m {
	case MoveLeft, MoveRight, MoveHalt:
		return []byte(m.String()), nil
	}
	return nil, fmt.Errorf("unknown move %d", int(m))
}

// UnmarshalText decodes a move name produced by MarshalText.
func (m *Move) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left", "L":
		*m = MoveLeft
	case "right", "R":
		*m = MoveRight
	case "halt", "H":
		*m = MoveHalt
	default:
		return fmt.Errorf("unknown move %q", string(text))
	}
	return nil
}

// Action is the state-action descriptor returned by a Transition.
// The engine writes Write under the cursor, then applies Move, then enters Next.
type Action struct {
	Write Symbol `json:"write"`
	Move  Move   `json:"move"`
	Next  int    `json:"next"`
}

// NewAction builds an Action.
func NewAction(write Symbol, move Move, next int) Action {
	return Action{Write: write, Move: move, Next: next}
}
