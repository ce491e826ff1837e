package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/tuikit/pkg/ui/backend"
	"github.com/odvcencio/tuikit/pkg/ui/runtime"
)

// Edges selects which sides of a window get a border.
type Edges uint8

const (
	EdgeTop Edges = 1 << iota
	EdgeRight
	EdgeBottom
	EdgeLeft

	AllEdges = EdgeTop | EdgeRight | EdgeBottom | EdgeLeft
)

// WindowOptions toggles optional window decorations.
type WindowOptions uint8

const (
	// CloseButton draws a close button in the top border while the window
	// is active.
	CloseButton WindowOptions = 1 << iota
)

type decorations struct {
	topLeft, horizontal, topRight, vertical, bottomRight, bottomLeft string
	termTop, termRight, termBottom, termLeft                         string
}

// Indexed by active + 2 * !extendedCharset.
var windowDecorations = [4]decorations{
	{"┌", "─", "┐", "│", "┘", "└", "╷", "╴", "╵", "╶"},
	{"╔", "═", "╗", "║", "╝", "╚", "╽", "╾", "╿", "╼"},
	{"+", "-", "+", "|", "+", "+", "#", "#", "#", "#"},
	{"*", "=", "*", "|", "*", "*", "#", "#", "#", "#"},
}

// Window is a bordered container. Tab and Shift+Tab cycle focus among its
// descendants. A window also implements runtime.WindowFacet so the root
// can place it.
type Window struct {
	runtime.BaseBehavior
	w *runtime.Widget

	title   string
	options WindowOptions
	borders Edges

	manuallyPlaced bool
	extendViewport bool
	displace       runtime.Point
}

// NewWindow creates a window below parent.
func NewWindow(parent *runtime.Widget, title string) *Window {
	win := &Window{}
	win.init(runtime.NewWidget(parent, win), title)
	return win
}

func (win *Window) init(w *runtime.Widget, title string) {
	win.w = w
	win.title = title
	win.borders = AllEdges
	win.manuallyPlaced = true
	w.SetFocusMode(runtime.FocusContainerCycle)
	w.AddPaletteClass("window")
	w.SetFacet(runtime.FacetWindow, runtime.WindowFacet(win))
}

// Widget returns the window's widget node.
func (win *Window) Widget() *runtime.Widget {
	return win.w
}

// Title returns the window title.
func (win *Window) Title() string {
	return win.title
}

// SetTitle changes the title shown in the top border.
func (win *Window) SetTitle(title string) {
	if win.title == title {
		return
	}
	win.title = title
	win.w.Update()
}

// Options returns the decoration options.
func (win *Window) Options() WindowOptions {
	return win.options
}

// SetOptions replaces the decoration options.
func (win *Window) SetOptions(o WindowOptions) {
	win.options = o
	win.w.Update()
}

// BorderEdges returns the sides that have a border.
func (win *Window) BorderEdges() Edges {
	return win.borders
}

// SetBorderEdges selects the sides that have a border.
func (win *Window) SetBorderEdges(e Edges) {
	win.borders = e
	win.w.Update()
}

// SetAutoPlacement lets the root center the window, shifted by displace,
// whenever the root is resized.
func (win *Window) SetAutoPlacement(displace runtime.Point) {
	win.manuallyPlaced = false
	win.displace = displace
	if p := win.w.Parent(); p != nil {
		win.AutoPlace(p.Geometry().Size(), win.w)
	}
}

// SetManuallyPlaced turns auto placement off.
func (win *Window) SetManuallyPlaced(on bool) {
	win.manuallyPlaced = on
}

// SetExtendViewport makes the root grow its minimum size so the window
// stays reachable through viewport scrolling.
func (win *Window) SetExtendViewport(on bool) {
	win.extendViewport = on
	win.w.Update()
}

func (win *Window) IsExtendViewport() bool { return win.extendViewport }

func (win *Window) IsManuallyPlaced() bool { return win.manuallyPlaced }

// AutoPlace centers w inside available. The window keeps its size, or
// takes its size hint when it has none yet, and is shrunk to fit.
func (win *Window) AutoPlace(available runtime.Size, w *runtime.Widget) {
	size := w.Geometry().Size()
	if size.Zero() {
		size = w.SizeHint()
	}
	size.Width = min(size.Width, available.Width)
	size.Height = min(size.Height, available.Height)
	x := (available.Width-size.Width)/2 + win.displace.X
	y := (available.Height-size.Height)/2 + win.displace.Y
	x = max(0, min(x, available.Width-size.Width))
	y = max(0, min(y, available.Height-size.Height))
	w.SetGeometry(runtime.NewRect(x, y, size.Width, size.Height))
}

func (win *Window) Paint(w *runtime.Widget, p *runtime.Painter) {
	active := w.IsInFocusPath()
	var frameFg, frameBg, buttonFg, buttonBg backend.Color
	if active {
		frameFg, frameBg = w.Color("window.frame.focused.fg"), w.Color("window.frame.focused.bg")
		buttonFg, buttonBg = w.Color("window.frame.focused.control.fg"), w.Color("window.frame.focused.control.bg")
	} else {
		frameFg, frameBg = w.Color("window.frame.unfocused.fg"), w.Color("window.frame.unfocused.bg")
	}
	p.Clear(frameFg, frameBg)

	width, height := w.Geometry().Width, w.Geometry().Height
	extended := false
	if t := w.Terminal(); t != nil {
		extended = t.HasCapability(backend.CapExtendedCharset)
	}
	idx := 0
	if active {
		idx++
	}
	if !extended {
		idx += 2
	}
	d := windowDecorations[idx]
	b := win.borders
	write := func(x, y int, s string) { p.WriteWithColors(x, y, s, frameFg, frameBg) }

	switch {
	case b&EdgeTop != 0 && b&EdgeLeft != 0:
		write(0, 0, d.topLeft)
	case b&EdgeTop != 0:
		write(0, 0, d.termLeft)
	case b&EdgeLeft != 0:
		write(0, 0, d.termTop)
	}
	switch {
	case b&EdgeTop != 0 && b&EdgeRight != 0:
		write(width-1, 0, d.topRight)
	case b&EdgeTop != 0:
		write(width-1, 0, d.termRight)
	case b&EdgeRight != 0:
		write(width-1, 0, d.termTop)
	}
	switch {
	case b&EdgeBottom != 0 && b&EdgeRight != 0:
		write(width-1, height-1, d.bottomRight)
	case b&EdgeBottom != 0:
		write(width-1, height-1, d.termRight)
	case b&EdgeRight != 0:
		write(width-1, height-1, d.termBottom)
	}
	switch {
	case b&EdgeBottom != 0 && b&EdgeLeft != 0:
		write(0, height-1, d.bottomLeft)
	case b&EdgeBottom != 0:
		write(0, height-1, d.termLeft)
	case b&EdgeLeft != 0:
		write(0, height-1, d.termBottom)
	}

	if width > 2 {
		hline := strings.Repeat(d.horizontal, width-2)
		if b&EdgeTop != 0 {
			write(1, 0, hline)
		}
		if b&EdgeBottom != 0 {
			write(1, height-1, hline)
		}
	}

	if b&EdgeTop != 0 && win.title != "" {
		titleLen := runewidth.StringWidth(win.title)
		minX := 1
		if win.options&CloseButton != 0 {
			minX = 6
		}
		if minX+titleLen+1 > width {
			minX--
		}
		x := max(minX, width/2-titleLen/2)
		if minX < x && x != 1 {
			write(x-1, 0, " ")
		}
		write(x, 0, win.title)
		if x+titleLen < width-1 {
			write(x+titleLen, 0, " ")
		}
	}

	for y := 1; y < height-1; y++ {
		if b&EdgeLeft != 0 {
			write(0, y, d.vertical)
		}
		if b&EdgeRight != 0 {
			write(width-1, y, d.vertical)
		}
	}

	if b&EdgeTop != 0 && win.options&CloseButton != 0 && active {
		write(2, 0, "[")
		p.WriteWithColors(3, 0, "■", buttonFg, buttonBg)
		write(4, 0, "]")
	}
}

// HandleKey moves focus with Tab and Shift+Tab while it is inside the
// window.
func (win *Window) HandleKey(w *runtime.Widget, ev *runtime.KeyEvent) bool {
	if ev.Key != runtime.KeyTab || (ev.Modifiers != runtime.NoModifier && ev.Modifiers != runtime.ShiftModifier) {
		return false
	}
	t := w.Terminal()
	if t == nil {
		return true
	}
	if f := t.FocusWidget(); f != nil && w.IsAncestorOf(f) {
		if ev.Modifiers == runtime.ShiftModifier {
			f.PrevFocusable().SetFocus()
		} else {
			f.NextFocusable().SetFocus()
		}
	}
	return true
}

// LayoutArea is the area inside the borders.
func (win *Window) LayoutArea(w *runtime.Widget) runtime.Rect {
	r := w.ContentsRect()
	var top, right, bottom, left int
	if win.borders&EdgeTop != 0 {
		top = 1
	}
	if win.borders&EdgeRight != 0 {
		right = 1
	}
	if win.borders&EdgeBottom != 0 {
		bottom = 1
	}
	if win.borders&EdgeLeft != 0 {
		left = 1
	}
	return r.Inset(top, right, bottom, left)
}
