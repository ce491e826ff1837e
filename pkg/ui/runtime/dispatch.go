package runtime

import (
	"fmt"

	"github.com/odvcencio/tuikit/pkg/logging"
	"github.com/odvcencio/tuikit/pkg/ui/backend"
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

// HandleNativeEvent processes one event from the backend.
func (t *Terminal) HandleNativeEvent(ev terminal.Event) {
	metricEventsDispatched.WithLabelValues(nativeKind(ev)).Inc()
	switch e := ev.(type) {
	case terminal.KeyEvent, terminal.CharEvent:
		if kev, ok := TranslateKeyEvent(ev); ok {
			t.DispatchKey(kev)
		}
	case terminal.PasteEvent:
		if e.Initial {
			t.paste.Reset()
		}
		t.paste.WriteString(e.Text)
		if e.Final {
			pev := NewPasteEvent(t.paste.String())
			t.paste.Reset()
			t.DispatchPaste(pev)
		}
	case terminal.ResizeEvent:
		t.Resize(e.Width, e.Height)
	case terminal.RepaintRequestedEvent:
		t.Update()
	case terminal.AutoDetectFinishedEvent:
		t.autoDetectFinished(e.Supported)
	}
}

func nativeKind(ev terminal.Event) string {
	switch ev.(type) {
	case terminal.KeyEvent:
		return "key"
	case terminal.CharEvent:
		return "char"
	case terminal.PasteEvent:
		return "paste"
	case terminal.ResizeEvent:
		return "resize"
	case terminal.RepaintRequestedEvent:
		return "repaint"
	case terminal.AutoDetectFinishedEvent:
		return "autodetect"
	default:
		return "other"
	}
}

// DispatchKey routes a key event. A keyboard grab gets it exclusively.
// Otherwise the viewport scroll mode, the shortcut manager and then the
// focus chain from the focus widget up to the root see it in turn.
// Ctrl+L repaints the whole terminal when nobody accepted it, grab
// included.
func (t *Terminal) DispatchKey(ev *KeyEvent) bool {
	if t.grabWidget != nil {
		if t.grabHandler != nil {
			if t.grabHandler(ev) {
				ev.Accept()
			}
		} else if t.grabWidget.behavior.HandleKey(t.grabWidget, ev) {
			ev.Accept()
		}
		return t.finishKey(ev)
	}

	if t.viewportKeyEvent(ev) {
		ev.Accept()
		return true
	}
	if t.shortcuts != nil && t.shortcuts.Process(ev) {
		ev.Accept()
		return true
	}

	for w := t.focus; w != nil; w = w.parent {
		if w.behavior.HandleKey(w, ev) {
			ev.Accept()
			break
		}
	}
	return t.finishKey(ev)
}

// finishKey applies the force repaint chord to an unaccepted key.
func (t *Terminal) finishKey(ev *KeyEvent) bool {
	if !ev.IsAccepted() && ev.Modifiers == ControlModifier && ev.Text == "l" {
		t.log.Debug(logging.CategoryInput, "force_repaint", "ctrl+l", nil)
		t.ForceRepaint()
	}
	if !ev.IsAccepted() {
		t.log.Debug(logging.CategoryInput, "key_ignored", keyLabel(ev), nil)
	}
	return ev.IsAccepted()
}

// DispatchPaste routes a completed paste to the grab or the focus chain.
func (t *Terminal) DispatchPaste(ev *PasteEvent) bool {
	if t.grabWidget != nil {
		if t.grabHandler != nil {
			if t.grabHandler(ev) {
				ev.Accept()
			}
		} else if t.grabWidget.behavior.HandlePaste(t.grabWidget, ev) {
			ev.Accept()
		}
		return ev.IsAccepted()
	}
	for w := t.focus; w != nil; w = w.parent {
		if w.behavior.HandlePaste(w, ev) {
			ev.Accept()
			break
		}
	}
	return ev.IsAccepted()
}

func keyLabel(ev *KeyEvent) string {
	if ev.Key == KeyUnknown {
		return fmt.Sprintf("%q mods=%d", ev.Text, ev.Modifiers)
	}
	return fmt.Sprintf("%s mods=%d", ev.Key, ev.Modifiers)
}

// autoDetectFinished completes terminal setup once detection reported.
func (t *Terminal) autoDetectFinished(supported bool) {
	t.be.ApplyInputQuirks()

	if supported || t.opts.ForceIncompatibleTerminals {
		cfg := backend.FullscreenConfig{
			AlternateScreen: !t.opts.DisableAlternativeScreen,
			KeyboardSignals: t.opts.keyboardSignals(),
			AllowInterrupt:  t.opts.AllowInterrupt,
			AllowQuit:       t.opts.AllowQuit,
			AllowSuspend:    t.opts.AllowSuspend,
		}
		if err := t.be.SetupFullscreen(cfg); err != nil {
			t.log.Error(logging.CategoryTerminal, "fullscreen_setup_failed", err.Error(), nil)
		}
		if t.state == InInitWithPendingPaintRequest {
			t.Update()
		}
		t.setState(Ready)
		if !supported {
			t.log.Warn(logging.CategoryTerminal, "incompatible_terminal_forced", "", nil)
			if t.incompatible != nil {
				t.incompatible()
			}
		}
		if !t.opts.DisableTaggedPaste {
			t.be.EnableTaggedPaste(true)
		}
		return
	}

	t.log.Error(logging.CategoryTerminal, "incompatible_terminal", "auto detection failed", nil)
	if t.incompatible != nil {
		t.Post(func() {
			t.deinit()
			t.incompatible()
		})
		return
	}
	fmt.Fprint(t.opts.Diagnostics, autoDetectFailedMessage)
	t.Post(func() {
		t.deinit()
		t.loopErr = ErrIncompatibleTerminal
		t.Quit()
	})
}
