package domain

import (
	"errors"
	"fmt"
)

// ErrOutOfBound is the single engine failure kind: the head has no valid position or
// was asked to leave the tape. Match it with errors.Is; the concrete value is a
// *BoundError describing which edge was hit.
var ErrOutOfBound = errors.New("out of bound")

// ErrHalted is returned when a step is requested on a tape that already halted.
var ErrHalted = errors.New("machine already halted")

// ErrUnknownState is returned when the current state has no entry in the table.
var ErrUnknownState = errors.New("unknown state")

// ErrInvalidTable is returned by Validate and by lookups of nil transitions.
var ErrInvalidTable = errors.New("invalid transition table")

// ErrMachineNotFound is returned when a machine name is not registered.
var ErrMachineNotFound = errors.New("machine not found")

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// ErrInvalidInput is returned when a run request cannot be turned into a tape.
var ErrInvalidInput = errors.New("invalid input")

// ErrStepBudget is returned by runners when a run exceeds its step budget.
var ErrStepBudget = errors.New("step budget exhausted")

// BoundReason identifies which bound check failed.
type BoundReason string

const (
	ReasonNoCursor  BoundReason = "no_cursor"
	ReasonLeftEdge  BoundReason = "left_edge"
	ReasonRightEdge BoundReason = "right_edge"
)

// BoundError is the concrete ErrOutOfBound value.
type BoundError struct {
	Reason   BoundReason
	Position int
	Len      int
}

func (e *BoundError) Error() string {
	switch e.Reason {
	case ReasonNoCursor:
		return fmt.Sprintf("out of bound: cursor %d is not a cell of a %d-cell tape", e.Position, e.Len)
	case ReasonLeftEdge:
		return fmt.Sprintf("out of bound: cannot move left of cell %d", e.Position)
	case ReasonRightEdge:
		return fmt.Sprintf("out of bound: cannot move right of cell %d (last cell)", e.Position)
	default:
		return fmt.Sprintf("out of bound: %s at %d", e.Reason, e.Position)
	}
}

// Is reports ErrOutOfBound as the error kind.
func (e *BoundError) Is(target error) bool {
	return target == ErrOutOfBound
}
