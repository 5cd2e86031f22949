package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/muesli/termenv"
)

// TapeView renders snapshots with the head cell highlighted.
type TapeView struct {
	Out *termenv.Output

	// Window is the number of cells shown around the head. Zero shows every cell up to
	// the last non-fill one.
	Window int
}

// Render formats snap as a cell strip followed by a status line. fill is the machine's
// fill symbol, used to cut the untouched tail of the tape.
func (v TapeView) Render(snap *domain.Snapshot, fill domain.Symbol) string {
	cells := []domain.Symbol(snap.Cells)
	from, to := v.bounds(cells, snap.Cursor, fill)

	var b strings.Builder
	if from > 0 {
		b.WriteString("… ")
	}
	for i := from; i < to; i++ {
		cell := fmt.Sprintf("[%c]", cells[i])
		if i == snap.Cursor {
			b.WriteString(v.Out.String(cell).Reverse().Bold().String())
		} else {
			b.WriteString(cell)
		}
		if i < to-1 {
			b.WriteByte(' ')
		}
	}
	if to < len(cells) {
		b.WriteString(" …")
	}
	b.WriteByte('\n')
	b.WriteString(v.status(snap))
	return b.String()
}

func (v TapeView) bounds(cells []domain.Symbol, cursor int, fill domain.Symbol) (int, int) {
	if v.Window > 0 {
		from := max(0, cursor-v.Window)
		to := min(len(cells), cursor+v.Window+1)
		if from >= to {
			from, to = 0, min(len(cells), 2*v.Window+1)
		}
		return from, to
	}

	end := len(cells)
	for end > 0 && cells[end-1] == fill {
		end--
	}
	if cursor >= end && cursor < len(cells) {
		end = cursor + 1
	}
	return 0, max(end, 1)
}

func (v TapeView) status(snap *domain.Snapshot) string {
	line := fmt.Sprintf("state=%d steps=%d cursor=%d", snap.State, snap.Steps, snap.Cursor)
	switch {
	case snap.Error != "":
		return line + " " + v.Out.String("error: "+snap.Error).Foreground(v.Out.Color("1")).String()
	case snap.Halted && snap.HaltLabel != "":
		return line + " " + v.Out.String("halted: "+snap.HaltLabel).Foreground(v.Out.Color("2")).String()
	case snap.Halted:
		return line + " " + v.Out.String("halted").Foreground(v.Out.Color("2")).String()
	default:
		return line
	}
}
