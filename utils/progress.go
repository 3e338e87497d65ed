package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ProgressSink receives pipeline progress as a fraction in [0,1].
type ProgressSink interface {
	Report(fraction float64, message string)
}

// Progress draws a single-line bar on a terminal and falls back to debug log
// lines in 10% steps when the output is redirected.
type Progress struct {
	mu       sync.Mutex
	w        io.Writer
	tty      bool
	width    int
	lastStep int
	drawn    bool
}

// NewProgress creates a sink writing to w. The bar is only drawn when w is a
// terminal file.
func NewProgress(w io.Writer) *Progress {
	p := &Progress{w: w, width: 30, lastStep: -1}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.tty = true
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 60 {
			p.width = min(cols-40, 50)
		}
	}
	return p
}

// Report implements ProgressSink.
func (p *Progress) Report(fraction float64, message string) {
	fraction = max(0, min(1, fraction))

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.tty {
		step := int(fraction * 10)
		if step != p.lastStep {
			p.lastStep = step
			L().Debug("progress", "percent", step*10, "stage", message)
		}
		return
	}

	filled := int(fraction * float64(p.width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)
	fmt.Fprintf(p.w, "\r%s %3.0f%% %-24.24s", bar, fraction*100, message)
	p.drawn = true
}

// Done terminates the bar line.
func (p *Progress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tty && p.drawn {
		fmt.Fprintln(p.w)
		p.drawn = false
	}
}

// NopProgress discards every report.
type NopProgress struct{}

func (NopProgress) Report(float64, string) {}
