package main

import (
	"fmt"
	"io"
	"strings"
)

const defaultBarWidth = 40

// renderer draws the progress counter pair as a single overwritten
// line: a fixed-width cell bar, the percentage to two decimals and the
// literal copied/total counts. It is purely a function of the two
// counters and keeps no position of its own beyond what line-clearing
// needs. Writers that are not terminals get a stepped fallback so
// piped output stays line-oriented.
type renderer struct {
	w            io.Writer
	tty          bool
	width        int
	wroteTTYLine bool
	lastStep     int
}

func newRenderer(w io.Writer, tty bool, width int) *renderer {
	if width <= 0 {
		width = defaultBarWidth
	}
	return &renderer{w: w, tty: tty, width: width, lastStep: -1}
}

// Update redraws the progress line for the given counts. No-op when
// there is no total to report against. Output goes straight to the
// underlying writer, so the update is visible before the next copy
// begins.
func (r *renderer) Update(copied, total int) {
	if total == 0 {
		return
	}
	percent := float64(copied) / float64(total) * 100

	if r.tty {
		r.wroteTTYLine = true
		fmt.Fprintf(r.w, "\r[%s] %6.2f%% (%d/%d files)", bar(percent, r.width), percent, copied, total)
		return
	}

	step := int(percent)
	if r.lastStep >= 0 && step-r.lastStep < 5 && step != 100 {
		return
	}
	r.lastStep = step
	fmt.Fprintf(r.w, "[%3d%%] %d/%d files\n", step, copied, total)
}

// Done terminates the overwritten line so later output starts fresh.
func (r *renderer) Done() {
	if r.tty && r.wroteTTYLine {
		fmt.Fprintln(r.w)
	}
}

// bar renders the cell bar: '=' for completed cells, a single '>'
// transition cell at the boundary, blanks for the rest.
func bar(percent float64, width int) string {
	pos := int(percent / 100 * float64(width))
	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i < pos:
			b.WriteByte('=')
		case i == pos:
			b.WriteByte('>')
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}
