package runtime

import "github.com/odvcencio/tuikit/pkg/ui/terminal"

var atomKeys = map[terminal.Atom]Key{
	terminal.AtomPageUp:    KeyPageUp,
	terminal.AtomPageDown:  KeyPageDown,
	terminal.AtomRight:     KeyRight,
	terminal.AtomLeft:      KeyLeft,
	terminal.AtomDown:      KeyDown,
	terminal.AtomUp:        KeyUp,
	terminal.AtomTab:       KeyTab,
	terminal.AtomEnter:     KeyEnter,
	terminal.AtomBackspace: KeyBackspace,
	terminal.AtomMenu:      KeyMenu,
	terminal.AtomDelete:    KeyDelete,
	terminal.AtomHome:      KeyHome,
	terminal.AtomInsert:    KeyInsert,
	terminal.AtomEnd:       KeyEnd,
	terminal.AtomSpace:     KeySpace,
	terminal.AtomEscape:    KeyEscape,
	terminal.AtomF1:        KeyF1,
	terminal.AtomF2:        KeyF2,
	terminal.AtomF3:        KeyF3,
	terminal.AtomF4:        KeyF4,
	terminal.AtomF5:        KeyF5,
	terminal.AtomF6:        KeyF6,
	terminal.AtomF7:        KeyF7,
	terminal.AtomF8:        KeyF8,
	terminal.AtomF9:        KeyF9,
	terminal.AtomF10:       KeyF10,
	terminal.AtomF11:       KeyF11,
	terminal.AtomF12:       KeyF12,
}

var keypadKeys = map[terminal.Atom]Key{
	terminal.AtomKPDivide:   KeyDivision,
	terminal.AtomKPMultiply: KeyMultiply,
	terminal.AtomKPSubtract: KeyMinus,
	terminal.AtomKPAdd:      KeyPlus,
	terminal.AtomKPEnter:    KeyEnter,
	terminal.AtomKPDecimal:  KeyPeriod,
	terminal.AtomKP0:        Key0,
	terminal.AtomKP1:        Key1,
	terminal.AtomKP2:        Key2,
	terminal.AtomKP3:        Key3,
	terminal.AtomKP4:        Key4,
	terminal.AtomKP5:        Key5,
	terminal.AtomKP6:        Key6,
	terminal.AtomKP7:        Key7,
	terminal.AtomKP8:        Key8,
	terminal.AtomKP9:        Key9,
}

func translateMods(m terminal.ModMask) KeyboardModifiers {
	var mods KeyboardModifiers
	if m&terminal.ModShift != 0 {
		mods |= ShiftModifier
	}
	if m&terminal.ModCtrl != 0 {
		mods |= ControlModifier
	}
	if m&terminal.ModAlt != 0 {
		mods |= AltModifier
	}
	return mods
}

// TranslateKeyEvent converts a native key or char event. It returns false
// for every other native event.
func TranslateKeyEvent(ev terminal.Event) (*KeyEvent, bool) {
	switch e := ev.(type) {
	case terminal.KeyEvent:
		mods := translateMods(e.Mods)
		if k, ok := atomKeys[e.Atom]; ok {
			return NewKeyEvent(k, mods, ""), true
		}
		if k, ok := keypadKeys[e.Atom]; ok {
			return NewKeyEvent(k, mods|KeypadModifier, ""), true
		}
		return NewKeyEvent(KeyUnknown, mods, ""), true
	case terminal.CharEvent:
		return NewKeyEvent(KeyUnknown, translateMods(e.Mods), e.Text), true
	}
	return nil, false
}
