package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text. Colors are only emitted when w is a
// color-capable terminal.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	ew := &errWriter{w: w}
	if f.opts.Quiet {
		ew.printf("Total entries processed: %d\n", report.Summary.TotalEntries)
		return ew.err
	}

	st := newStyles(lipgloss.NewRenderer(w))

	ew.printf("\n%s\n", st.heading.Render("Analysis Results:"))
	ew.printf("Total entries processed: %d\n", report.Summary.TotalEntries)

	ew.printf("\n%s\n", st.heading.Render("Log Level Distribution:"))
	for _, lc := range report.Summary.Levels {
		ew.printf("%s: %d\n", st.level(lc.Level), lc.Count)
	}

	if f.opts.Verbose {
		f.formatMetadata(report, st, ew)
	}

	return ew.err
}

func (f *TextFormatter) formatMetadata(report *Report, st styles, ew *errWriter) {
	md := report.Metadata
	ew.printf("\n%s\n", st.heading.Render("Run:"))
	ew.printf("  Source:   %s\n", md.Source)
	if md.RunID != "" {
		ew.printf("  Run ID:   %s\n", md.RunID)
	}
	ew.printf("  Filter:   %s\n", describeCriteria(md))
	ew.printf("  Threads:  %d\n", md.Threads)
	ew.printf("  Duration: %s\n", md.Duration.Round(1e6))
}

func describeCriteria(md Metadata) string {
	var parts []string
	c := md.Criteria
	if c.Pattern != nil {
		parts = append(parts, fmt.Sprintf("pattern=%q", *c.Pattern))
	}
	if c.From != nil {
		parts = append(parts, fmt.Sprintf("from=%q", *c.From))
	}
	if c.To != nil {
		parts = append(parts, fmt.Sprintf("to=%q", *c.To))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

type styles struct {
	heading lipgloss.Style
	debug   lipgloss.Style
	info    lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	fatal   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		heading: r.NewStyle().Bold(true),
		debug:   r.NewStyle().Foreground(lipgloss.Color("245")).Faint(true),
		info:    r.NewStyle().Foreground(lipgloss.Color("39")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("220")),
		err:     r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		fatal: r.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("196")).
			Bold(true),
	}
}

// level colors well-known level names; anything else is printed as is.
func (s styles) level(name string) string {
	switch strings.ToUpper(name) {
	case "TRACE", "DEBUG":
		return s.debug.Render(name)
	case "INFO":
		return s.info.Render(name)
	case "WARN", "WARNING":
		return s.warn.Render(name)
	case "ERROR":
		return s.err.Render(name)
	case "FATAL", "CRITICAL", "PANIC":
		return s.fatal.Render(name)
	default:
		return name
	}
}

// errWriter remembers the first write error so formatting code can stay
// linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
