/*
Package domain contains the core types of the Turing machine interpreter.

It defines the vocabulary shared by the tape engine and its collaborators: symbols,
moves, the state-action descriptor produced by a transition, and the transition table
itself. This package is kept pure and free of I/O or persistence concerns.

# Key Entities

  - Symbol: A single tape character. Blank is the reserved empty cell.
  - Action: What a transition decides for the current cell (write, move, next state).
  - Transition: A pure function from the symbol under the cursor to an Action.
  - Table: The ordered set of transitions; the index of a transition is its state.
  - Snapshot: A serializable copy of a tape after (or during) a run.
*/
package domain
