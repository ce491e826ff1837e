package runtime

import (
	"fmt"
	"slices"

	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

// ShortcutManager gets key events before the focus chain does.
//
//go:generate mockgen -package=runtime -destination=mock_shortcut_test.go github.com/odvcencio/tuikit/pkg/ui/runtime ShortcutManager
type ShortcutManager interface {
	// Process returns true when a shortcut consumed the event.
	Process(ev *KeyEvent) bool
}

// Chord is a key combination as reported by TranslateKeyEvent.
type Chord struct {
	Key       Key
	Text      string
	Modifiers KeyboardModifiers
}

// ParseChord reads a chord name such as "ctrl_q", "shift_f6" or "alt_x".
func ParseChord(name string) (Chord, error) {
	atom, text, mods, ok := terminal.ParseChord(name)
	if !ok {
		return Chord{}, fmt.Errorf("unknown key chord %q", name)
	}
	var native terminal.Event = terminal.CharEvent{Text: text, Mods: mods}
	if atom != terminal.AtomUnknown {
		native = terminal.KeyEvent{Atom: atom, Mods: mods}
	}
	ev, _ := TranslateKeyEvent(native)
	return Chord{Key: ev.Key, Text: ev.Text, Modifiers: ev.Modifiers}, nil
}

// Matches reports whether ev is this chord.
func (c Chord) Matches(ev *KeyEvent) bool {
	if ev.Key != c.Key || ev.Modifiers != c.Modifiers {
		return false
	}
	return c.Key != KeyUnknown || ev.Text == c.Text
}

type shortcut struct {
	id     int
	chord  Chord
	widget *Widget
	fn     func()
}

// ShortcutMap is the default ShortcutManager. A shortcut fires while its
// widget is enabled and visible up to the main widget. Earlier
// registrations win.
type ShortcutMap struct {
	entries []shortcut
	nextID  int
}

// NewShortcutMap creates an empty shortcut map.
func NewShortcutMap() *ShortcutMap {
	return &ShortcutMap{}
}

// Register binds chord to fn on behalf of w.
func (m *ShortcutMap) Register(w *Widget, chord Chord, fn func()) (unregister func()) {
	id := m.nextID
	m.nextID++
	m.entries = append(m.entries, shortcut{id: id, chord: chord, widget: w, fn: fn})
	if w != nil && !slices.Contains(w.shortcutMaps, m) {
		w.shortcutMaps = append(w.shortcutMaps, m)
	}
	return func() {
		m.entries = slices.DeleteFunc(m.entries, func(s shortcut) bool { return s.id == id })
	}
}

// RemoveWidget drops every shortcut registered for w.
func (m *ShortcutMap) RemoveWidget(w *Widget) {
	m.entries = slices.DeleteFunc(m.entries, func(s shortcut) bool { return s.widget == w })
	if w != nil {
		w.shortcutMaps = slices.DeleteFunc(w.shortcutMaps, func(o *ShortcutMap) bool { return o == m })
	}
}

// Len returns the number of registered shortcuts.
func (m *ShortcutMap) Len() int {
	return len(m.entries)
}

// Process implements ShortcutManager.
func (m *ShortcutMap) Process(ev *KeyEvent) bool {
	for _, s := range slices.Clone(m.entries) {
		if !s.chord.Matches(ev) || !s.widget.IsEnabled() {
			continue
		}
		t := s.widget.Terminal()
		if t == nil || t.main == nil || !s.widget.IsVisibleTo(t.main) {
			continue
		}
		s.fn()
		return true
	}
	return false
}
