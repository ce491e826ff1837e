package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/tuikit/pkg/ui/backend"
	"github.com/odvcencio/tuikit/pkg/ui/runtime"
)

// Button is a single line push button. Space and Enter click it while it
// has focus.
type Button struct {
	runtime.BaseBehavior
	w    *runtime.Widget
	text string

	clicked        []clickListener
	nextListener   int
	removeShortcut func()
}

type clickListener struct {
	id int
	fn func()
}

// NewButton creates a button below parent.
func NewButton(parent *runtime.Widget, text string) *Button {
	b := &Button{text: text}
	b.w = runtime.NewWidget(parent, b)
	b.w.SetFocusPolicy(runtime.StrongFocus)
	return b
}

// Widget returns the button's widget node.
func (b *Button) Widget() *runtime.Widget {
	return b.w
}

// Text returns the label.
func (b *Button) Text() string {
	return b.text
}

// SetText changes the label and drops the shortcut.
func (b *Button) SetText(text string) {
	b.text = text
	b.RemoveShortcut()
	b.w.Update()
}

// SetShortcut makes chord click the button. It reports false when the
// button is not attached to a terminal using the default shortcut map.
func (b *Button) SetShortcut(chord runtime.Chord) bool {
	b.RemoveShortcut()
	t := b.w.Terminal()
	if t == nil || t.ShortcutMap() == nil {
		return false
	}
	b.removeShortcut = t.ShortcutMap().Register(b.w, chord, b.Click)
	return true
}

// RemoveShortcut drops the shortcut set with SetShortcut.
func (b *Button) RemoveShortcut() {
	if b.removeShortcut != nil {
		b.removeShortcut()
		b.removeShortcut = nil
	}
}

// SetDefault makes the button the default widget of the enclosing
// dialog, or clears it.
func (b *Button) SetDefault(on bool) {
	m := runtime.FindDefaultWidgetManager(b.w)
	if m == nil {
		return
	}
	if on {
		m.SetDefaultWidget(b.w)
	} else if b.IsDefault() {
		m.SetDefaultWidget(nil)
	}
}

// IsDefault reports whether the button is its dialog's default widget.
func (b *Button) IsDefault() bool {
	m := runtime.FindDefaultWidgetManager(b.w)
	return m != nil && m.DefaultWidget() == b.w
}

// OnClicked registers fn to run on every click.
func (b *Button) OnClicked(fn func()) (unregister func()) {
	id := b.nextListener
	b.nextListener++
	b.clicked = append(b.clicked, clickListener{id: id, fn: fn})
	return func() {
		for i, l := range b.clicked {
			if l.id == id {
				b.clicked = append(b.clicked[:i], b.clicked[i+1:]...)
				return
			}
		}
	}
}

// Click focuses the button and notifies the click listeners. Disabled
// buttons ignore it.
func (b *Button) Click() {
	if !b.w.IsEnabled() {
		return
	}
	b.w.SetFocus()
	b.emitClicked()
}

func (b *Button) emitClicked() {
	listeners := append([]clickListener(nil), b.clicked...)
	for _, l := range listeners {
		l.fn()
	}
}

// AcceptsEnter implements EnterAcceptor.
func (b *Button) AcceptsEnter(w *runtime.Widget) bool {
	return w.IsEnabled()
}

func (b *Button) SizeHint(*runtime.Widget) runtime.Size {
	return runtime.Size{Width: runewidth.StringWidth(b.text) + 6, Height: 1}
}

func (b *Button) HandleKey(w *runtime.Widget, ev *runtime.KeyEvent) bool {
	if !w.IsEnabled() || ev.Modifiers != runtime.NoModifier {
		return false
	}
	if ev.Key != runtime.KeySpace && ev.Key != runtime.KeyEnter {
		return false
	}
	w.SetFocus()
	b.emitClicked()
	return true
}

func (b *Button) Paint(w *runtime.Widget, p *runtime.Painter) {
	width := p.Width()
	markerFg, markerBg := w.Color("control.fg"), w.Color("control.bg")

	var fg, bg backend.Color
	switch {
	case !w.IsEnabled():
		fg, bg = w.Color("button.disabled.fg"), w.Color("button.disabled.bg")
	case w.HasFocus():
		fg, bg = w.Color("button.focused.fg"), w.Color("button.focused.bg")
		p.WriteWithColors(0, 0, "»", markerFg, markerBg)
		p.WriteWithColors(width-1, 0, "«", markerFg, markerBg)
	case b.defaultActive():
		fg, bg = w.Color("button.default.fg"), w.Color("button.default.bg")
		p.WriteWithColors(0, 0, "→", markerFg, markerBg)
		p.WriteWithColors(width-1, 0, "←", markerFg, markerBg)
	default:
		fg, bg = w.Color("button.fg"), w.Color("button.bg")
	}

	if width <= 4 {
		x := 0
		if width >= 3 {
			x = 1
		}
		p.WriteWithColors(x, 0, "[]", fg, bg)
		return
	}
	p.WriteWithColors(1, 0, "[ ", fg, bg)
	p.WriteWithColors(width-3, 0, " ]", fg, bg)
	if runewidth.StringWidth(b.text) > width-5 {
		p.WriteWithColors(2, 0, runewidth.Truncate(b.text, width-4, ""), fg, bg)
	} else {
		p.WriteWithColors(3, 0, runewidth.Truncate(b.text, width-5, ""), fg, bg)
	}
}

func (b *Button) defaultActive() bool {
	m := runtime.FindDefaultWidgetManager(b.w)
	return m != nil && m.DefaultWidget() == b.w && m.IsDefaultWidgetActive()
}
