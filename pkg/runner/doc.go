/*
Package runner implements the host loop around the tape engine.

The tape itself only knows how to step. The runner drives Tape.Step one transition at
a time and adds what a host needs around it: a step budget, context cancellation,
structured logging, lifecycle hooks, OpenTelemetry spans and snapshot persistence.
None of these change how a transition is applied.

# Usage

	r := runner.New(
		runner.WithMaxSteps(10_000),
		runner.WithStore(memory.NewStore()),
		runner.WithLogger(logger),
	)

	def := machines.Compare()
	snap, err := r.Run(ctx, def, def.NewTape(domain.Symbols("110111")))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(snap.State, snap.HaltLabel) // 6 A < B
*/
package runner
