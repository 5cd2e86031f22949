package turing

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Console runs one machine repeatedly, reading a tape per input line and printing the
// resulting snapshot. It is the loop behind the CLI's interactive mode and is IO-agnostic
// so it can be driven from tests.
type Console struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer SnapshotRenderer
}

// SnapshotRenderer formats a finished run for display.
// This allows terminal colouring without coupling the core package to it.
type SnapshotRenderer func(*domain.Snapshot) string

// Run reads lines until EOF, "exit" or "quit" and runs machine on each of them.
// Request errors and failed runs are printed and do not stop the loop.
func (c *Console) Run(ctx context.Context, engine *Engine, machine string) error {
	if c.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if c.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	def, err := engine.Machine(machine)
	if err != nil {
		return err
	}

	render := c.Renderer
	if render == nil {
		render = func(snap *domain.Snapshot) string { return plainSnapshot(snap, def.Fill) }
	}
	lines := bufio.NewReader(c.Input)

	if !c.Headless {
		fmt.Fprintf(c.Output, "--- %s (type a tape, 'exit' to quit) ---\n", machine)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !c.Headless {
			fmt.Fprint(c.Output, "> ")
		}

		text, err := lines.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("input error: %w", err)
		}
		input := strings.TrimSpace(text)
		if input == "exit" || input == "quit" {
			if !c.Headless {
				fmt.Fprintln(c.Output, "Bye!")
			}
			return nil
		}

		if input != "" {
			snap, runErr := engine.Run(ctx, RunRequest{Machine: machine, Tape: input})
			switch {
			case snap != nil:
				fmt.Fprintln(c.Output, render(snap))
			case runErr != nil:
				fmt.Fprintf(c.Output, "error: %v\n", runErr)
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}

func plainSnapshot(snap *domain.Snapshot, fill domain.Symbol) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s state=%d steps=%d cursor=%d", snap.Trimmed(fill), snap.State, snap.Steps, snap.Cursor)
	if snap.HaltLabel != "" {
		fmt.Fprintf(&b, " (%s)", snap.HaltLabel)
	}
	if snap.Error != "" {
		fmt.Fprintf(&b, " error: %s", snap.Error)
	}
	return b.String()
}
