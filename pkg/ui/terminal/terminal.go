// Package terminal provides the native terminal events produced by backends.
// The core translates them into structured key and paste events.
package terminal

// Event represents a native terminal event.
type Event interface {
	eventMarker()
}

// ModMask holds the modifier keys reported with a key or char event.
type ModMask uint8

const (
	ModShift ModMask = 1 << iota
	ModAlt
	ModCtrl

	ModNone ModMask = 0
)

// Has reports whether all modifiers in m are set.
func (mods ModMask) Has(m ModMask) bool {
	return mods&m == m
}

// KeyEvent is a named key press such as "enter" or "f6".
type KeyEvent struct {
	Atom Atom
	Mods ModMask
}

func (KeyEvent) eventMarker() {}

// CharEvent is a text producing key press. Ctrl+letter chords arrive as a
// CharEvent with the lowercase letter and ModCtrl.
type CharEvent struct {
	Text string
	Mods ModMask
}

func (CharEvent) eventMarker() {}

// PasteEvent carries one chunk of bracketed paste content.
// Initial marks the first chunk, Final the last one. A single chunk paste
// has both set.
type PasteEvent struct {
	Text    string
	Initial bool
	Final   bool
}

func (PasteEvent) eventMarker() {}

// ResizeEvent indicates terminal size changed.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) eventMarker() {}

// RepaintRequestedEvent asks the core to schedule a paint pass.
type RepaintRequestedEvent struct{}

func (RepaintRequestedEvent) eventMarker() {}

// AutoDetectFinishedEvent reports the outcome of terminal detection.
type AutoDetectFinishedEvent struct {
	Supported bool
}

func (AutoDetectFinishedEvent) eventMarker() {}

// Atom names a non-text key.
type Atom string

const (
	AtomUnknown   Atom = ""
	AtomEscape    Atom = "escape"
	AtomEnter     Atom = "enter"
	AtomTab       Atom = "tab"
	AtomBackspace Atom = "backspace"
	AtomDelete    Atom = "delete"
	AtomInsert    Atom = "insert"
	AtomSpace     Atom = "space"
	AtomMenu      Atom = "menu"

	AtomUp       Atom = "up"
	AtomDown     Atom = "down"
	AtomLeft     Atom = "left"
	AtomRight    Atom = "right"
	AtomHome     Atom = "home"
	AtomEnd      Atom = "end"
	AtomPageUp   Atom = "page_up"
	AtomPageDown Atom = "page_down"

	AtomF1  Atom = "f1"
	AtomF2  Atom = "f2"
	AtomF3  Atom = "f3"
	AtomF4  Atom = "f4"
	AtomF5  Atom = "f5"
	AtomF6  Atom = "f6"
	AtomF7  Atom = "f7"
	AtomF8  Atom = "f8"
	AtomF9  Atom = "f9"
	AtomF10 Atom = "f10"
	AtomF11 Atom = "f11"
	AtomF12 Atom = "f12"

	// Numeric keypad.
	AtomKPDivide   Atom = "kp_divide"
	AtomKPMultiply Atom = "kp_multiply"
	AtomKPSubtract Atom = "kp_subtract"
	AtomKPAdd      Atom = "kp_add"
	AtomKPEnter    Atom = "kp_enter"
	AtomKPDecimal  Atom = "kp_decimal"
	AtomKP0        Atom = "kp_0"
	AtomKP1        Atom = "kp_1"
	AtomKP2        Atom = "kp_2"
	AtomKP3        Atom = "kp_3"
	AtomKP4        Atom = "kp_4"
	AtomKP5        Atom = "kp_5"
	AtomKP6        Atom = "kp_6"
	AtomKP7        Atom = "kp_7"
	AtomKP8        Atom = "kp_8"
	AtomKP9        Atom = "kp_9"
)
