package domain

import "time"

// Snapshot is a copy of the observable tape fields, taken after a run finished or
// failed. It carries everything needed to inspect a run later without the table.
type Snapshot struct {
	RunID   string `json:"run_id"`
	Machine string `json:"machine,omitempty"`

	Cells  string `json:"cells"`
	Cursor int    `json:"cursor"`
	State  int    `json:"state"`
	Halted bool   `json:"halted"`
	Steps  int    `json:"steps"`

	// HaltLabel is the catalog meaning of the final state, when the machine defines one.
	HaltLabel string `json:"halt_label,omitempty"`

	// Error is the text of the error that ended the run, empty for clean halts.
	Error string `json:"error,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Trimmed returns the cells with trailing blanks removed.
func (s *Snapshot) Trimmed(blank Symbol) string {
	cells := []Symbol(s.Cells)
	end := len(cells)
	for end > 0 && cells[end-1] == blank {
		end--
	}
	return string(cells[:end])
}
