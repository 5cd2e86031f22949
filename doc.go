/*
Package turing is a deterministic single-tape Turing machine interpreter.

A machine is a transition table: an ordered list of pure functions, one per state,
each mapping the symbol under the head to what to write, where to move and which state
comes next. The tape is a fixed buffer of cells (256 by default) that never grows; a
move past either end stops the run with an out-of-bound error instead.

# Concept

The engine core lives in pkg/tape and pkg/domain and depends on nothing else. This
package wires it to a catalog of named machines (pkg/registry), a host loop with step
budget, cancellation, logging and tracing (pkg/runner) and a snapshot store
(pkg/ports and pkg/adapters) so every run can be inspected later by its ID.

# Key Features

  - Deterministic Execution: the same table and tape always produce the same run.
  - Hexagonal Architecture: the core never logs or persists, adapters do.
  - Run Snapshots: every finished run is stored in memory, Redis or SQLite.
  - Labelled Halts: catalog machines name the meaning of their final states.

# Usage

	eng, err := turing.New(turing.WithMaxSteps(10_000))
	if err != nil {
		log.Fatal(err)
	}

	snap, err := eng.Run(ctx, turing.RunRequest{Machine: "compare", Tape: "110111"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(snap.State, snap.HaltLabel) // 6 A < B

Tables can also be driven directly, without the engine:

	tp := tape.New('0', 0)
	tp.Write(0, '1')
	if err := tp.Run(table); err != nil {
		// errors.Is(err, domain.ErrOutOfBound)
	}
*/
package turing
