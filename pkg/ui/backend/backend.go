// Package backend defines the terminal surface and input service the
// toolkit core runs on. The tcell backend drives real terminals and the
// simulation backend drives tests, so the same core paints golden frames
// in both.
package backend

import "github.com/odvcencio/tuikit/pkg/ui/terminal"

// Capability names understood by HasCapability.
const (
	CapExtendedCharset = "extendedCharset"
	CapTrueColor       = "truecolor"
)

// CursorStyle selects the terminal cursor shape.
type CursorStyle int

const (
	CursorUnset CursorStyle = iota
	CursorBar
	CursorBlock
	CursorUnderline
)

// FullscreenConfig is applied once terminal detection succeeded.
type FullscreenConfig struct {
	// AlternateScreen switches to the alternate screen buffer.
	AlternateScreen bool
	// KeyboardSignals keeps Ctrl-C, Ctrl-\ and Ctrl-Z delivering signals
	// instead of key events.
	KeyboardSignals bool
	// AllowInterrupt, AllowQuit and AllowSuspend enable one signal each
	// when KeyboardSignals is off.
	AllowInterrupt bool
	AllowQuit      bool
	AllowSuspend   bool
}

// Backend is the terminal abstraction layer.
// Implementations own escape-sequence generation, output diffing and input
// decoding. The core only sees cells and native events.
type Backend interface {
	// Init starts the backend. Detection results arrive later as a
	// terminal.AutoDetectFinishedEvent.
	Init() error

	// Fini restores the terminal.
	Fini()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetContent sets a cell at position (x, y) with the given rune and style.
	// The comb parameter contains combining characters (can be nil).
	SetContent(x, y int, mainc rune, comb []rune, style Style)

	// Show transmits cells changed since the previous Show.
	Show()

	// Sync forces every cell to be retransmitted.
	Sync()

	// Clear clears the screen.
	Clear()

	// HideCursor hides the terminal cursor.
	HideCursor()

	// SetCursorPos moves and shows the cursor.
	SetCursorPos(x, y int)

	// SetCursorStyle sets the cursor shape and color. ColorDefault resets
	// the color.
	SetCursorStyle(style CursorStyle, color Color)

	// HasCapability reports terminal features by name.
	HasCapability(name string) bool

	// SetTitle sets the window title.
	SetTitle(title string)

	// SetIconTitle sets the icon (tab) title.
	SetIconTitle(title string)

	// ApplyInputQuirks adjusts input decoding once detection finished.
	ApplyInputQuirks()

	// SetupFullscreen finishes terminal setup after detection.
	SetupFullscreen(cfg FullscreenConfig) error

	// EnableTaggedPaste turns bracketed paste reporting on or off.
	EnableTaggedPaste(on bool)

	// Suspend hands the terminal back to the shell.
	Suspend() error

	// Resume reclaims the terminal after Suspend.
	Resume() error

	// PollEvent blocks until an event is available and returns it.
	// Returns nil if the backend is shutting down.
	PollEvent() terminal.Event

	// PostEvent injects an event into the event queue.
	PostEvent(ev terminal.Event) error

	// Beep emits an audible bell.
	Beep()
}
