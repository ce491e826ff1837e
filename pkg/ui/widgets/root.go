// Package widgets provides the stock widgets painted by the terminal core:
// a root surface, windows, dialogs and buttons.
package widgets

import (
	"slices"

	"github.com/odvcencio/tuikit/pkg/palette"
	"github.com/odvcencio/tuikit/pkg/ui/runtime"
)

// Root is the usual main widget. It fills the terminal, carries the classic
// palette and lets F6 move focus between its windows.
type Root struct {
	runtime.BaseBehavior
	w    *runtime.Widget
	fill rune

	// windows holds the children, most recently added first.
	windows []*runtime.Widget
}

// NewRoot creates a root widget with the classic palette and a minimum
// size of 40x7.
func NewRoot() *Root {
	r := &Root{fill: ' '}
	r.w = runtime.NewWidget(nil, r)
	r.w.SetPalette(palette.Classic())
	r.w.SetMinimumSize(runtime.Size{Width: 40, Height: 7})
	return r
}

// Widget returns the root's widget node.
func (r *Root) Widget() *runtime.Widget {
	return r.w
}

// FillChar returns the background fill character.
func (r *Root) FillChar() rune {
	return r.fill
}

// SetFillChar changes the background fill character.
func (r *Root) SetFillChar(ch rune) {
	if r.fill == ch {
		return
	}
	r.fill = ch
	r.w.Update()
}

func (r *Root) Paint(w *runtime.Widget, p *runtime.Painter) {
	p.ClearWithChar(w.Color("root.fg"), w.Color("root.bg"), r.fill)
}

// HandleKey cycles window focus on F6, backwards with Shift+F6. Dialogs
// are raised when they receive focus.
func (r *Root) HandleKey(w *runtime.Widget, ev *runtime.KeyEvent) bool {
	if ev.Key != runtime.KeyF6 || (ev.Modifiers != runtime.NoModifier && ev.Modifiers != runtime.ShiftModifier) {
		return false
	}

	var candidates []*runtime.Widget
	for _, win := range r.windows {
		if win.HasPaletteClass("window") && win.IsVisible() {
			candidates = append(candidates, win)
		}
	}
	if ev.Modifiers == runtime.ShiftModifier {
		slices.Reverse(candidates)
	}

	var first *runtime.Widget
	arm := false
	for _, win := range candidates {
		target := win.PlaceFocus(false)
		if first == nil && target != nil {
			first = win
		}
		if arm && target != nil {
			activateWindow(win, target)
			return true
		}
		if win.IsInFocusPath() {
			arm = true
		}
	}
	if first != nil {
		activateWindow(first, first.PlaceFocus(false))
	}
	return true
}

func activateWindow(win, target *runtime.Widget) {
	target.SetFocus()
	if win.HasPaletteClass("dialog") {
		win.Raise()
	}
}

func (r *Root) ChildAdded(_, child *runtime.Widget) {
	r.windows = slices.Insert(r.windows, 0, child)
}

func (r *Root) ChildRemoved(_, child *runtime.Widget) {
	r.windows = slices.DeleteFunc(r.windows, func(c *runtime.Widget) bool { return c == child })
}

// Resized places every window that is not manually placed.
func (r *Root) Resized(w *runtime.Widget, _ runtime.Rect) {
	available := w.Geometry().Size()
	for _, c := range w.Children() {
		if f := runtime.WindowFacetOf(c); f != nil && !f.IsManuallyPlaced() {
			f.AutoPlace(available, c)
		}
	}
}

// MinimumSizeHint grows the root so windows that extend the viewport stay
// reachable.
func (r *Root) MinimumSizeHint(w *runtime.Widget) runtime.Size {
	var hint runtime.Size
	for _, c := range w.Children() {
		if f := runtime.WindowFacetOf(c); f != nil && f.IsExtendViewport() {
			g := c.Geometry()
			hint = hint.Expanded(runtime.Size{Width: g.Right(), Height: g.Bottom()})
		}
	}
	return hint
}

// LayoutArea keeps the layout inside the terminal even when windows extend
// the viewport.
func (r *Root) LayoutArea(w *runtime.Widget) runtime.Rect {
	if t := w.Terminal(); t != nil && t.MainWidget() == w {
		return runtime.RectFromSize(t.Size().Expanded(w.MinimumSize()))
	}
	return w.ContentsRect()
}
