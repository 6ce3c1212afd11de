package display

import (
	"fmt"
	"io"
	"strings"
)

const (
	barCells        = 30
	plainStepPct    = 10
	minNameColumns  = 12
	fixedBarColumns = barCells + 2 + 5 + 2*12 + 8 // bar, brackets, percent, two sizes, spacing
)

// ProgressBar renders byte progress for one file at a time. On an
// interactive terminal it redraws a single line in place; otherwise it
// prints one line every ten percent so log files stay readable.
//
// Update and Finish must not be called concurrently.
type ProgressBar struct {
	w           io.Writer
	interactive bool
	columns     int

	name    string
	lastPct int
	drawn   bool
}

// NewProgressBar returns a bar writing to w. columns is the terminal width
// used to truncate long file names in interactive mode.
func NewProgressBar(w io.Writer, interactive bool, columns int) *ProgressBar {
	return &ProgressBar{w: w, interactive: interactive, columns: columns, lastPct: -1}
}

// Update records that done of total bytes of name have been sent. It matches
// upload.ProgressFunc.
func (b *ProgressBar) Update(name string, done, total int64) {
	if name != b.name {
		b.Finish()
		b.name = name
		b.lastPct = -1
	}
	pct := percent(done, total)
	if b.interactive {
		if pct == b.lastPct {
			return
		}
		b.lastPct = pct
		fmt.Fprintf(b.w, "\r%s", b.line(done, total, pct))
		b.drawn = true
		return
	}

	step := pct - pct%plainStepPct
	if step == b.lastPct {
		return
	}
	b.lastPct = step
	fmt.Fprintln(b.w, b.line(done, total, pct))
}

// Finish terminates the current line, if any.
func (b *ProgressBar) Finish() {
	if b.interactive && b.drawn {
		fmt.Fprintln(b.w)
	}
	b.drawn = false
	b.name = ""
	b.lastPct = -1
}

func (b *ProgressBar) line(done, total int64, pct int) string {
	filled := pct * barCells / 100
	bar := strings.Repeat("=", filled)
	if filled < barCells {
		bar += ">" + strings.Repeat(" ", barCells-filled-1)
	}
	return fmt.Sprintf("%s %s [%s] %s / %s",
		b.label(), FormatPercent(done, total), bar, FormatBytes(done), FormatBytes(total))
}

// label truncates the file name so the whole line fits the terminal.
func (b *ProgressBar) label() string {
	if !b.interactive || b.columns <= 0 {
		return b.name
	}
	room := b.columns - fixedBarColumns
	if room < minNameColumns {
		room = minNameColumns
	}
	// Truncate by runes so a multibyte name is never cut mid-character.
	runes := []rune(b.name)
	if len(runes) <= room {
		return b.name
	}
	return "…" + string(runes[len(runes)-room+1:])
}
