package output

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar renders ingestion progress (position, rate and ETA).
// It satisfies parser.Progress. Write errors are ignored; progress is
// cosmetic and must never fail a run.
type ProgressBar struct {
	w       io.Writer
	enabled bool
	bar     *progressbar.ProgressBar
}

// NewProgressBar creates a progress bar writing to w.
func NewProgressBar(w io.Writer) *ProgressBar {
	return &ProgressBar{w: w, enabled: true}
}

// NewTerminalProgressBar creates a progress bar on f that only draws when
// f is a terminal, so redirected output stays clean.
func NewTerminalProgressBar(f *os.File) *ProgressBar {
	p := NewProgressBar(f)
	p.enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	return p
}

// Enabled reports whether the bar draws anything.
func (p *ProgressBar) Enabled() bool {
	return p.enabled
}

// Start begins a bar of total lines.
func (p *ProgressBar) Start(total int) {
	if !p.enabled || total <= 0 {
		return
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription("Analyzing"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("lines"),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(p.w, "\n")
		}),
	)
}

// Increment advances the bar by one line.
func (p *ProgressBar) Increment() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// Finish completes the bar.
func (p *ProgressBar) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
