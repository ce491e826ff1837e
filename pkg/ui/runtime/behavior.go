package runtime

// Behavior supplies what a widget draws and how it reacts to input.
type Behavior interface {
	// Paint draws the widget. Children are painted afterwards by the
	// terminal, each into its own clipped painter.
	Paint(w *Widget, p *Painter)

	// HandleKey returns true when the event was handled. Unhandled events
	// bubble to the parent.
	HandleKey(w *Widget, ev *KeyEvent) bool

	// HandlePaste returns true when the paste was handled.
	HandlePaste(w *Widget, ev *PasteEvent) bool

	// SizeHint is the preferred size, zero when the widget has none.
	SizeHint(w *Widget) Size

	// LayoutArea is the local rectangle available to children.
	LayoutArea(w *Widget) Rect
}

// Optional behavior hooks, detected by type assertion.
type (
	// FocusHandler is notified when the widget gains or loses focus.
	FocusHandler interface {
		FocusIn(w *Widget)
		FocusOut(w *Widget)
	}

	// Resizer is notified after the geometry changed.
	Resizer interface {
		Resized(w *Widget, old Rect)
	}

	// MinimumSizeHinter reports a computed minimum size.
	MinimumSizeHinter interface {
		MinimumSizeHint(w *Widget) Size
	}

	// ChildObserver is notified when children are added or removed.
	ChildObserver interface {
		ChildAdded(w, child *Widget)
		ChildRemoved(w, child *Widget)
	}
)

// BaseBehavior paints nothing, ignores input and lays children out over the
// whole widget. Embed it to implement only the hooks you need.
type BaseBehavior struct{}

func (BaseBehavior) Paint(*Widget, *Painter) {}

func (BaseBehavior) HandleKey(*Widget, *KeyEvent) bool { return false }

func (BaseBehavior) HandlePaste(*Widget, *PasteEvent) bool { return false }

func (BaseBehavior) SizeHint(*Widget) Size { return Size{} }

func (BaseBehavior) LayoutArea(w *Widget) Rect { return w.ContentsRect() }
