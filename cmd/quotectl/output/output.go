package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Color styles for terminal output
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")
)

// Printer writes styled messages to w. Colors are dropped automatically
// when w is not a terminal.
type Printer struct {
	w io.Writer

	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
	infoStyle    lipgloss.Style
	mutedStyle   lipgloss.Style
	primaryStyle lipgloss.Style
}

// New creates a Printer for w.
func New(w io.Writer) *Printer {
	return newPrinter(w, lipgloss.NewRenderer(w))
}

func newPrinter(w io.Writer, r *lipgloss.Renderer) *Printer {
	return &Printer{
		w:            w,
		successStyle: r.NewStyle().Foreground(colorSuccess).Bold(true),
		warningStyle: r.NewStyle().Foreground(colorWarning).Bold(true),
		errorStyle:   r.NewStyle().Foreground(colorError).Bold(true),
		infoStyle:    r.NewStyle().Foreground(colorInfo),
		mutedStyle:   r.NewStyle().Foreground(colorMuted),
		primaryStyle: r.NewStyle().Foreground(colorPrimary).Bold(true),
	}
}

// Success prints a success message
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprint(p.w, p.successStyle.Render("✓ "))
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprint(p.w, p.warningStyle.Render("⚠ "))
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Error prints an error message
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprint(p.w, p.errorStyle.Render("✗ "))
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Info prints an info message
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprint(p.w, p.infoStyle.Render("ℹ "))
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Muted prints a muted message
func (p *Printer) Muted(format string, args ...any) {
	fmt.Fprintln(p.w, p.mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Section prints a section header
func (p *Printer) Section(title string) {
	fmt.Fprintln(p.w, p.primaryStyle.Render(title))
	fmt.Fprintln(p.w, p.mutedStyle.Render(strings.Repeat("═", lipgloss.Width(title))))
}

// Text prints s unchanged.
func (p *Printer) Text(s string) {
	fmt.Fprint(p.w, s)
	if !strings.HasSuffix(s, "\n") {
		fmt.Fprintln(p.w)
	}
}

// Raw writes already-encoded bytes, e.g. an export payload.
func (p *Printer) Raw(data []byte) error {
	_, err := p.w.Write(data)
	if err == nil && len(data) > 0 && data[len(data)-1] != '\n' {
		_, err = fmt.Fprintln(p.w)
	}
	return err
}

// JSON prints v as indented JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table prints rows under a header, aligned in columns.
// The header is styled after alignment so escape codes do not count
// toward column widths.
func (p *Printer) Table(header []string, rows [][]string) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()

	head, body, _ := strings.Cut(buf.String(), "\n")
	fmt.Fprintln(p.w, p.mutedStyle.Render(head))
	fmt.Fprint(p.w, body)
}
