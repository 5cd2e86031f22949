/*
Package tape implements the single-tape execution engine.

A Tape owns a fixed number of cells, a cursor, the index of the current state and a
halted flag. Step applies exactly one transition from a domain.Table; Run repeats Step
until the machine halts or a step fails. The buffer never grows: any move past either
edge fails with domain.ErrOutOfBound and leaves the cursor where it was.

Steps are ordered write-then-move. The symbol chosen by the transition is written
before the move is checked, so a failing step still leaves its write on the tape, while
the step counter and state index keep the values of the last successful step.

A Tape is not safe for concurrent use. Tables are read-only and can be shared.
*/
package tape
