// Package console prints styled diagnostics outside the full screen
// terminal: startup errors, incompatibility notes and palette dumps.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Writer provides styled line output.
type Writer struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	mu       sync.Mutex

	errorStyle   lipgloss.Style
	warnStyle    lipgloss.Style
	successStyle lipgloss.Style
	infoStyle    lipgloss.Style
	dimStyle     lipgloss.Style
	headerStyle  lipgloss.Style
}

// Option configures a Writer.
type Option func(*Writer)

// WithProfile forces a color profile instead of detecting one from out.
func WithProfile(p termenv.Profile) Option {
	return func(w *Writer) { w.renderer.SetColorProfile(p) }
}

// New creates a Writer on stderr.
func New(opts ...Option) *Writer {
	return NewWithOutput(os.Stderr, opts...)
}

// NewWithOutput creates a Writer with a custom output destination.
func NewWithOutput(out io.Writer, opts ...Option) *Writer {
	w := &Writer{
		out:      out,
		renderer: lipgloss.NewRenderer(out),
	}
	for _, opt := range opts {
		opt(w)
	}

	r := w.renderer
	w.errorStyle = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}).
		Bold(true)
	w.warnStyle = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFAA00"})
	w.successStyle = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"})
	w.infoStyle = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"})
	w.dimStyle = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"})
	w.headerStyle = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#444444"})
	return w
}

// Println writes text with a newline.
func (w *Writer) Println(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Error prints an error message in red.
func (w *Writer) Error(format string, args ...any) {
	w.line(w.errorStyle, "error: "+fmt.Sprintf(format, args...))
}

// Warn prints a warning message in yellow.
func (w *Writer) Warn(format string, args ...any) {
	w.line(w.warnStyle, "warning: "+fmt.Sprintf(format, args...))
}

// Success prints a success message in green.
func (w *Writer) Success(format string, args ...any) {
	w.line(w.successStyle, "✓ "+fmt.Sprintf(format, args...))
}

// Info prints an info message in blue.
func (w *Writer) Info(format string, args ...any) {
	w.line(w.infoStyle, fmt.Sprintf(format, args...))
}

// Dim prints secondary text.
func (w *Writer) Dim(format string, args ...any) {
	w.line(w.dimStyle, fmt.Sprintf(format, args...))
}

// Header prints a section header.
func (w *Writer) Header(title string) {
	w.line(w.headerStyle, title)
}

// Divider prints a horizontal divider.
func (w *Writer) Divider() {
	w.line(w.dimStyle, strings.Repeat("─", min(terminalWidth(w.out), 60)))
}

// Box renders content in a rounded box.
func (w *Writer) Box(title, content string) {
	boxStyle := w.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#444444"}).
		Padding(1, 2).
		Width(min(terminalWidth(w.out)-4, 80))

	output := content
	if title != "" {
		output = w.renderer.NewStyle().Bold(true).Render(title) + "\n\n" + content
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out, boxStyle.Render(output))
}

func (w *Writer) line(style lipgloss.Style, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out, style.Render(text))
}

// terminalWidth returns the width of out when it is a terminal, 80
// otherwise.
func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok {
		return 80
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width == 0 {
		return 80
	}
	return width
}
