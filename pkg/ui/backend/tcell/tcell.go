// Package tcell provides a Backend implementation using tcell.
package tcell

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"

	"github.com/odvcencio/tuikit/pkg/ui/backend"
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

// Signal is a keyboard generated job control signal.
type Signal int

const (
	SignalInterrupt Signal = iota + 1
	SignalQuit
	SignalSuspend
)

func (s Signal) String() string {
	switch s {
	case SignalInterrupt:
		return "interrupt"
	case SignalQuit:
		return "quit"
	case SignalSuspend:
		return "suspend"
	default:
		return "unknown"
	}
}

// Option configures a Backend.
type Option func(*Backend)

// WithDetector replaces terminal detection. The result is reported as a
// terminal.AutoDetectFinishedEvent after Init.
func WithDetector(detect func() bool) Option {
	return func(b *Backend) { b.detect = detect }
}

// WithSignalHandler receives keyboard signals instead of the process.
func WithSignalHandler(fn func(Signal)) Option {
	return func(b *Backend) { b.onSignal = fn }
}

// Backend implements backend.Backend using tcell.
type Backend struct {
	screen   tcell.Screen
	detect   func() bool
	onSignal func(Signal)

	mu      sync.Mutex
	signals map[Signal]bool

	// bracketed paste state, only touched by PollEvent
	inPaste     bool
	pasteBuffer strings.Builder
}

// New creates a backend on the controlling terminal.
func New(opts ...Option) (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, opts...), nil
}

// NewWithScreen creates a backend with an existing tcell screen.
func NewWithScreen(screen tcell.Screen, opts ...Option) *Backend {
	b := &Backend{screen: screen, detect: detectTerminal}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// detectTerminal accepts anything that names a terminal type.
func detectTerminal() bool {
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

// Screen exposes the underlying tcell screen.
func (b *Backend) Screen() tcell.Screen {
	return b.screen
}

// Init initializes the screen and queues the detection result.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	supported := b.detect()
	return b.PostEvent(terminal.AutoDetectFinishedEvent{Supported: supported})
}

// Fini restores the terminal.
func (b *Backend) Fini() {
	b.screen.Fini()
}

// Size returns the terminal dimensions.
func (b *Backend) Size() (width, height int) {
	return b.screen.Size()
}

// SetContent sets a cell at position (x, y).
func (b *Backend) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, comb, convertStyle(style))
}

// Show synchronizes the buffer to the terminal.
func (b *Backend) Show() {
	b.screen.Show()
}

// Sync forces a full redraw.
func (b *Backend) Sync() {
	b.screen.Sync()
}

// Clear clears the screen.
func (b *Backend) Clear() {
	b.screen.Clear()
}

// HideCursor hides the cursor.
func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// SetCursorPos moves and shows the cursor.
func (b *Backend) SetCursorPos(x, y int) {
	b.screen.ShowCursor(x, y)
}

// SetCursorStyle sets the cursor shape and color.
func (b *Backend) SetCursorStyle(style backend.CursorStyle, color backend.Color) {
	if color == backend.ColorDefault {
		b.screen.SetCursorStyle(convertCursorStyle(style))
		return
	}
	b.screen.SetCursorStyle(convertCursorStyle(style), convertColor(color))
}

// HasCapability reports terminal features.
func (b *Backend) HasCapability(name string) bool {
	switch name {
	case backend.CapExtendedCharset:
		return b.screen.CanDisplay('═', false)
	case backend.CapTrueColor:
		return b.screen.Colors() >= 1<<24 || termenv.EnvColorProfile() == termenv.TrueColor
	default:
		return false
	}
}

// SetTitle sets the window title.
func (b *Backend) SetTitle(title string) {
	b.screen.SetTitle(title)
}

// SetIconTitle sets the icon title with OSC 1. Screens without a tty
// ignore it.
func (b *Backend) SetIconTitle(title string) {
	tty, ok := b.screen.Tty()
	if !ok || tty == nil {
		return
	}
	fmt.Fprintf(tty, "\x1b]1;%s\x1b\\", sanitizeTitle(title))
}

func sanitizeTitle(s string) string {
	return strings.Map(func(r rune) rune {
		if r < ' ' || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// ApplyInputQuirks is a no-op: tcell decodes input from terminfo.
func (b *Backend) ApplyInputQuirks() {}

// SetupFullscreen applies the alternate screen and keyboard signal
// settings. tcell always starts on the alternate screen, so leaving it is
// done by hand.
func (b *Backend) SetupFullscreen(cfg backend.FullscreenConfig) error {
	b.mu.Lock()
	b.signals = map[Signal]bool{
		SignalInterrupt: cfg.KeyboardSignals || cfg.AllowInterrupt,
		SignalQuit:      cfg.KeyboardSignals || cfg.AllowQuit,
		SignalSuspend:   cfg.KeyboardSignals || cfg.AllowSuspend,
	}
	b.mu.Unlock()
	if !cfg.AlternateScreen {
		if tty, ok := b.screen.Tty(); ok && tty != nil {
			if _, err := fmt.Fprint(tty, "\x1b[?1049l"); err != nil {
				return err
			}
		}
	}
	return nil
}

// EnableTaggedPaste turns bracketed paste on or off.
func (b *Backend) EnableTaggedPaste(on bool) {
	if on {
		b.screen.EnablePaste()
	} else {
		b.screen.DisablePaste()
	}
}

// Suspend hands the terminal back to the shell.
func (b *Backend) Suspend() error {
	return b.screen.Suspend()
}

// Resume reclaims the terminal.
func (b *Backend) Resume() error {
	return b.screen.Resume()
}

// Beep emits an audible bell.
func (b *Backend) Beep() {
	_ = b.screen.Beep()
}

// PostEvent injects a native event. It comes back out of PollEvent
// unchanged.
func (b *Backend) PostEvent(ev terminal.Event) error {
	return b.screen.PostEvent(tcell.NewEventInterrupt(ev))
}

// PollEvent blocks until an event is available.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch e := ev.(type) {
		case *tcell.EventInterrupt:
			if native, ok := e.Data().(terminal.Event); ok {
				return native
			}
			continue
		case *tcell.EventPaste:
			if e.Start() {
				b.inPaste = true
				b.pasteBuffer.Reset()
				continue
			}
			if e.End() {
				b.inPaste = false
				text := b.pasteBuffer.String()
				b.pasteBuffer.Reset()
				return terminal.PasteEvent{Text: text, Initial: true, Final: true}
			}
			continue
		case *tcell.EventKey:
			if b.inPaste {
				b.appendPaste(e)
				continue
			}
			native := translateKey(e.Key(), e.Rune(), e.Modifiers())
			if native == nil {
				continue
			}
			if sig, ok := keySignal(native); ok && b.signalEnabled(sig) {
				b.deliverSignal(sig)
				continue
			}
			return native
		case *tcell.EventResize:
			w, h := e.Size()
			return terminal.ResizeEvent{Width: w, Height: h}
		}
	}
}

func (b *Backend) appendPaste(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyRune:
		b.pasteBuffer.WriteRune(e.Rune())
	case tcell.KeyEnter:
		b.pasteBuffer.WriteRune('\n')
	case tcell.KeyTab:
		b.pasteBuffer.WriteRune('\t')
	}
}

func (b *Backend) signalEnabled(sig Signal) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.signals[sig]
}

// deliverSignal raises sig for the process. Suspending releases the
// terminal around the stop and asks for a repaint afterwards.
func (b *Backend) deliverSignal(sig Signal) {
	if b.onSignal != nil {
		b.onSignal(sig)
		return
	}
	if sig != SignalSuspend {
		_ = raise(sig)
		return
	}
	_ = b.screen.Suspend()
	_ = raise(sig)
	_ = b.screen.Resume()
	_ = b.PostEvent(terminal.RepaintRequestedEvent{})
}

var _ backend.Backend = (*Backend)(nil)
