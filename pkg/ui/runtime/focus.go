package runtime

import "github.com/odvcencio/tuikit/pkg/logging"

// focusHistory is an intrusive list through Widget.histPrev/histNext,
// oldest first. It never owns widgets.
type focusHistory struct {
	head, tail *Widget
	n          int
}

// touch appends w, or moves it to the end when already present.
func (h *focusHistory) touch(w *Widget) {
	if w.inHistory {
		if h.tail == w {
			return
		}
		h.remove(w)
	}
	w.histPrev = h.tail
	w.histNext = nil
	if h.tail != nil {
		h.tail.histNext = w
	} else {
		h.head = w
	}
	h.tail = w
	w.inHistory = true
	h.n++
}

func (h *focusHistory) remove(w *Widget) {
	if !w.inHistory {
		return
	}
	if w.histPrev != nil {
		w.histPrev.histNext = w.histNext
	} else {
		h.head = w.histNext
	}
	if w.histNext != nil {
		w.histNext.histPrev = w.histPrev
	} else {
		h.tail = w.histPrev
	}
	w.histPrev, w.histNext = nil, nil
	w.inHistory = false
	h.n--
}

// newestFirst returns the entries from most to least recently focused.
func (h *focusHistory) newestFirst() []*Widget {
	out := make([]*Widget, 0, h.n)
	for w := h.tail; w != nil; w = w.histPrev {
		out = append(out, w)
	}
	return out
}

// FocusWidget returns the widget with keyboard focus, or nil.
func (t *Terminal) FocusWidget() *Widget {
	return t.focus
}

// SetFocus moves focus to w. A nil w clears focus.
func (t *Terminal) SetFocus(w *Widget) {
	if w == nil {
		t.changeFocus(nil)
		return
	}
	if w.Terminal() != t {
		return
	}
	if w.historyOwner != t {
		w.forgetHistory()
		w.historyOwner = t
	}
	t.history.touch(w)
	t.changeFocus(w)
}

func (t *Terminal) changeFocus(w *Widget) {
	old := t.focus
	if old == w {
		return
	}
	t.focus = w
	if old != nil {
		if fh, ok := old.behavior.(FocusHandler); ok {
			fh.FocusOut(old)
		}
		old.Update()
	}
	if w != nil {
		if fh, ok := w.behavior.(FocusHandler); ok {
			fh.FocusIn(w)
		}
		w.Update()
	}
	t.log.Debug(logging.CategoryFocus, "focus_changed", "", map[string]any{
		"has_focus": w != nil,
	})
}

// AboutToBlock repairs focus before the loop waits for input. When the
// focus widget is gone, disabled or hidden, the most recently focused
// usable widget takes over, falling back to the main widget.
func (t *Terminal) AboutToBlock() {
	if t.main == nil {
		return
	}
	if f := t.focus; f != nil && f.IsEnabled() && f.IsVisibleTo(t.main) {
		return
	}
	for _, w := range t.history.newestFirst() {
		if w.IsEnabled() && w.IsVisibleTo(t.main) {
			t.SetFocus(w)
			return
		}
	}
	t.SetFocus(t.main)
}

// forgetSubtree drops focus and grab held inside the subtree of w.
func (t *Terminal) forgetSubtree(w *Widget) {
	inside := func(n *Widget) bool { return n != nil && (n == w || w.IsAncestorOf(n)) }
	if inside(t.focus) {
		t.changeFocus(nil)
	}
	if inside(t.grabWidget) {
		t.grabWidget = nil
		t.grabHandler = nil
	}
}

// widgetDestroyed removes every reference the terminal keeps to w.
func (t *Terminal) widgetDestroyed(w *Widget) {
	t.forgetSubtree(w)
	w.forgetHistory()
	if sm, ok := t.shortcuts.(*ShortcutMap); ok {
		sm.RemoveWidget(w)
	}
	if t.main == w {
		t.main = nil
		w.term = nil
	}
}

// forgetHistory unlinks w from the focus history it was entered into.
func (w *Widget) forgetHistory() {
	if o := w.historyOwner; o != nil {
		o.history.remove(w)
		w.historyOwner = nil
	}
}
