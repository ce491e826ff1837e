package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/tuikit/pkg/ui/runtime"
)

// Label displays static, possibly multi-line text in the text colors of
// the enclosing window.
type Label struct {
	runtime.BaseBehavior
	w     *runtime.Widget
	text  string
	lines []string // cached line splits
}

// NewLabel creates a label below parent.
func NewLabel(parent *runtime.Widget, text string) *Label {
	l := &Label{}
	l.w = runtime.NewWidget(parent, l)
	l.setText(text)
	return l
}

func (l *Label) Widget() *runtime.Widget {
	return l.w
}

func (l *Label) Text() string {
	return l.text
}

// SetText updates the displayed text.
func (l *Label) SetText(text string) {
	if l.text == text {
		return
	}
	l.setText(text)
	l.w.Update()
}

func (l *Label) setText(text string) {
	l.text = text
	l.lines = strings.Split(text, "\n")
}

// SizeHint is the widest line by the number of lines.
func (l *Label) SizeHint(*runtime.Widget) runtime.Size {
	width := 0
	for _, line := range l.lines {
		width = max(width, runewidth.StringWidth(line))
	}
	return runtime.Size{Width: width, Height: len(l.lines)}
}

func (l *Label) Paint(w *runtime.Widget, p *runtime.Painter) {
	fg, bg := w.Color("text.fg"), w.Color("text.bg")
	if !w.IsEnabled() {
		fg, bg = w.Color("control.disabled.fg"), w.Color("control.disabled.bg")
	}
	p.Clear(fg, bg)
	for y, line := range l.lines {
		if y >= p.Height() {
			break
		}
		p.WriteWithColors(0, y, runewidth.Truncate(line, p.Width(), ""), fg, bg)
	}
}
