package widgets

import "github.com/odvcencio/tuikit/pkg/ui/runtime"

// EnterAcceptor is implemented by behaviors that handle Enter themselves.
// While such a widget has focus the dialog's default widget is inactive.
type EnterAcceptor interface {
	AcceptsEnter(w *runtime.Widget) bool
}

// Clicker is implemented by behaviors the dialog can activate on Enter.
type Clicker interface {
	Click()
}

// Dialog is a window with the "dialog" palette class. It manages a
// default widget that Enter activates and closes on Escape.
type Dialog struct {
	Window

	defaultWidget *runtime.Widget
	rejected      []func()
}

// NewDialog creates a dialog below parent.
func NewDialog(parent *runtime.Widget, title string) *Dialog {
	d := &Dialog{}
	d.init(runtime.NewWidget(parent, d), title)
	d.w.AddPaletteClass("dialog")
	d.w.SetFacet(runtime.FacetDefaultWidgetManager, runtime.DefaultWidgetManager(d))
	return d
}

// DefaultWidget returns the widget Enter activates, or nil.
func (d *Dialog) DefaultWidget() *runtime.Widget {
	return d.defaultWidget
}

// SetDefaultWidget changes the widget Enter activates.
func (d *Dialog) SetDefaultWidget(w *runtime.Widget) {
	if d.defaultWidget == w {
		return
	}
	d.defaultWidget = w
	d.w.Update()
}

// IsDefaultWidgetActive reports whether Enter currently reaches the
// default widget: focus is inside the dialog on a widget that does not
// take Enter itself, or on the default widget.
func (d *Dialog) IsDefaultWidgetActive() bool {
	dw := d.defaultWidget
	if dw == nil || !dw.IsEnabled() || !dw.IsVisibleTo(d.w) {
		return false
	}
	t := d.w.Terminal()
	if t == nil {
		return false
	}
	f := t.FocusWidget()
	if f == nil || (f != d.w && !d.w.IsAncestorOf(f)) {
		return false
	}
	if f == dw {
		return true
	}
	if ea, ok := f.Behavior().(EnterAcceptor); ok && ea.AcceptsEnter(f) {
		return false
	}
	return true
}

// OnRejected registers fn to run when the dialog is closed with Escape.
func (d *Dialog) OnRejected(fn func()) {
	d.rejected = append(d.rejected, fn)
}

// Reject hides the dialog and notifies the rejection listeners.
func (d *Dialog) Reject() {
	d.w.SetVisible(false)
	for _, fn := range d.rejected {
		fn()
	}
}

// HandleKey activates the default widget on Enter and rejects the dialog
// on Escape. Tab handling is inherited from Window.
func (d *Dialog) HandleKey(w *runtime.Widget, ev *runtime.KeyEvent) bool {
	if ev.Modifiers == runtime.NoModifier {
		switch ev.Key {
		case runtime.KeyEnter:
			if d.IsDefaultWidgetActive() {
				if c, ok := d.defaultWidget.Behavior().(Clicker); ok {
					c.Click()
					return true
				}
			}
		case runtime.KeyEscape:
			d.Reject()
			return true
		}
	}
	return d.Window.HandleKey(w, ev)
}
