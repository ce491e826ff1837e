package runtime

// Key identifies a non-text key in a KeyEvent.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyTab
	KeyBackspace
	KeyEnter
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyLeft
	KeyUp
	KeyRight
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyMenu
	KeySpace

	// Keypad keys, reported together with KeypadModifier.
	KeyDivision
	KeyMultiply
	KeyMinus
	KeyPlus
	KeyPeriod
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

var keyNames = map[Key]string{
	KeyUnknown: "unknown", KeyEscape: "escape", KeyTab: "tab", KeyBackspace: "backspace",
	KeyEnter: "enter", KeyInsert: "insert", KeyDelete: "delete", KeyHome: "home",
	KeyEnd: "end", KeyLeft: "left", KeyUp: "up", KeyRight: "right", KeyDown: "down",
	KeyPageUp: "page_up", KeyPageDown: "page_down",
	KeyF1: "f1", KeyF2: "f2", KeyF3: "f3", KeyF4: "f4", KeyF5: "f5", KeyF6: "f6",
	KeyF7: "f7", KeyF8: "f8", KeyF9: "f9", KeyF10: "f10", KeyF11: "f11", KeyF12: "f12",
	KeyMenu: "menu", KeySpace: "space",
	KeyDivision: "divide", KeyMultiply: "multiply", KeyMinus: "minus", KeyPlus: "plus",
	KeyPeriod: "period", Key0: "0", Key1: "1", Key2: "2", Key3: "3", Key4: "4",
	Key5: "5", Key6: "6", Key7: "7", Key8: "8", Key9: "9",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "unknown"
}

// KeyboardModifiers is the set of modifiers held during a key event.
type KeyboardModifiers uint8

const (
	ShiftModifier KeyboardModifiers = 1 << iota
	ControlModifier
	AltModifier
	KeypadModifier

	NoModifier KeyboardModifiers = 0
)

// Event is a structured input event routed through grab or focus.
type Event interface {
	// IsAccepted reports whether a receiver handled the event.
	IsAccepted() bool
	routedEvent()
}

// KeyEvent is a translated key press. Named keys carry a Key, text
// producing keys carry KeyUnknown and their Text.
type KeyEvent struct {
	Key       Key
	Modifiers KeyboardModifiers
	Text      string

	accepted bool
}

// NewKeyEvent creates a key event.
func NewKeyEvent(key Key, mods KeyboardModifiers, text string) *KeyEvent {
	return &KeyEvent{Key: key, Modifiers: mods, Text: text}
}

func (e *KeyEvent) routedEvent() {}

// IsAccepted reports whether a receiver handled the event.
func (e *KeyEvent) IsAccepted() bool { return e.accepted }

// Accept marks the event as handled.
func (e *KeyEvent) Accept() { e.accepted = true }

// Ignore clears the handled mark so the event keeps bubbling.
func (e *KeyEvent) Ignore() { e.accepted = false }

// PasteEvent carries a complete bracketed paste.
type PasteEvent struct {
	Text string

	accepted bool
}

// NewPasteEvent creates a paste event.
func NewPasteEvent(text string) *PasteEvent {
	return &PasteEvent{Text: text}
}

func (e *PasteEvent) routedEvent() {}

// IsAccepted reports whether a receiver handled the event.
func (e *PasteEvent) IsAccepted() bool { return e.accepted }

// Accept marks the event as handled.
func (e *PasteEvent) Accept() { e.accepted = true }

// Ignore clears the handled mark.
func (e *PasteEvent) Ignore() { e.accepted = false }
