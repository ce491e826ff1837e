package runtime

import (
	"testing"

	"github.com/odvcencio/tuikit/pkg/ui/backend"
	"github.com/odvcencio/tuikit/pkg/ui/backend/sim"
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

// recorder is a behavior that records what it receives.
type recorder struct {
	BaseBehavior
	name        string
	acceptKeys  bool
	acceptPaste bool
	text        string
	keys        []*KeyEvent
	pastes      []string
	focusIn     int
	focusOut    int
	paints      int
	cursor      *Point
}

func (r *recorder) Paint(w *Widget, p *Painter) {
	r.paints++
	if r.text != "" {
		p.WriteWithColors(0, 0, r.text, backend.ColorDefault, backend.ColorDefault)
	}
	if r.cursor != nil {
		p.SetCursor(r.cursor.X, r.cursor.Y)
	}
}

func (r *recorder) HandleKey(w *Widget, ev *KeyEvent) bool {
	r.keys = append(r.keys, ev)
	return r.acceptKeys
}

func (r *recorder) HandlePaste(w *Widget, ev *PasteEvent) bool {
	r.pastes = append(r.pastes, ev.Text)
	return r.acceptPaste
}

func (r *recorder) FocusIn(*Widget)  { r.focusIn++ }
func (r *recorder) FocusOut(*Widget) { r.focusOut++ }

// newTerminal returns an initialized terminal that has not finished
// detection yet.
func newTerminal(t *testing.T, w, h int, opts Options, simOpts ...sim.Option) (*Terminal, *sim.Backend) {
	t.Helper()
	be := sim.New(w, h, simOpts...)
	term := New(be, opts)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(term.deinit)
	return term, be
}

// newReadyTerminal returns a terminal past detection with main as its
// main widget and the first paint flushed.
func newReadyTerminal(t *testing.T, w, h int, main *Widget) (*Terminal, *sim.Backend) {
	t.Helper()
	term, be := newTerminal(t, w, h, Options{})
	term.HandleNativeEvent(terminal.AutoDetectFinishedEvent{Supported: true})
	if main != nil {
		term.SetMainWidget(main)
	}
	term.ProcessPending()
	return term, be
}

func key(k Key, mods KeyboardModifiers) *KeyEvent {
	return NewKeyEvent(k, mods, "")
}

func char(text string, mods KeyboardModifiers) *KeyEvent {
	return NewKeyEvent(KeyUnknown, mods, text)
}
