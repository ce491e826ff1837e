package tcell

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/tuikit/pkg/ui/backend"
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

// convertStyle converts backend.Style to tcell.Style.
func convertStyle(s backend.Style) tcell.Style {
	fg, bg, attrs := s.Decompose()
	style := tcell.StyleDefault.
		Foreground(convertColor(fg)).
		Background(convertColor(bg))

	if attrs&backend.AttrBold != 0 {
		style = style.Bold(true)
	}
	if attrs&backend.AttrItalic != 0 {
		style = style.Italic(true)
	}
	if attrs&backend.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if attrs&backend.AttrDim != 0 {
		style = style.Dim(true)
	}
	if attrs&backend.AttrBlink != 0 {
		style = style.Blink(true)
	}
	if attrs&backend.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	if attrs&backend.AttrStrikeThrough != 0 {
		style = style.StrikeThrough(true)
	}

	return style
}

// convertColor converts backend.Color to tcell.Color.
func convertColor(c backend.Color) tcell.Color {
	if c == backend.ColorDefault {
		return tcell.ColorDefault
	}
	if c.IsRGB() {
		r, g, b := c.RGB()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.PaletteColor(int(c))
}

// ConvertTcellStyle converts a tcell style back to backend.Style.
func ConvertTcellStyle(ts tcell.Style) backend.Style {
	fg, bg, attrs := ts.Decompose()
	style := backend.DefaultStyle().
		Foreground(convertTcellColor(fg)).
		Background(convertTcellColor(bg))

	if attrs&tcell.AttrBold != 0 {
		style = style.Bold(true)
	}
	if attrs&tcell.AttrItalic != 0 {
		style = style.Italic(true)
	}
	if attrs&tcell.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if attrs&tcell.AttrDim != 0 {
		style = style.Dim(true)
	}
	if attrs&tcell.AttrBlink != 0 {
		style = style.Blink(true)
	}
	if attrs&tcell.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	if attrs&tcell.AttrStrikeThrough != 0 {
		style = style.StrikeThrough(true)
	}

	return style
}

func convertTcellColor(tc tcell.Color) backend.Color {
	if tc == tcell.ColorDefault {
		return backend.ColorDefault
	}
	if tc&tcell.ColorIsRGB != 0 {
		r, g, b := tc.RGB()
		return backend.ColorRGB(uint8(r), uint8(g), uint8(b))
	}
	return backend.Color(tc & 0xFF)
}

func convertCursorStyle(s backend.CursorStyle) tcell.CursorStyle {
	switch s {
	case backend.CursorBar:
		return tcell.CursorStyleSteadyBar
	case backend.CursorBlock:
		return tcell.CursorStyleSteadyBlock
	case backend.CursorUnderline:
		return tcell.CursorStyleSteadyUnderline
	default:
		return tcell.CursorStyleDefault
	}
}

var keyAtoms = map[tcell.Key]terminal.Atom{
	tcell.KeyUp:         terminal.AtomUp,
	tcell.KeyDown:       terminal.AtomDown,
	tcell.KeyLeft:       terminal.AtomLeft,
	tcell.KeyRight:      terminal.AtomRight,
	tcell.KeyHome:       terminal.AtomHome,
	tcell.KeyEnd:        terminal.AtomEnd,
	tcell.KeyPgUp:       terminal.AtomPageUp,
	tcell.KeyPgDn:       terminal.AtomPageDown,
	tcell.KeyInsert:     terminal.AtomInsert,
	tcell.KeyDelete:     terminal.AtomDelete,
	tcell.KeyBackspace:  terminal.AtomBackspace,
	tcell.KeyBackspace2: terminal.AtomBackspace,
	tcell.KeyTab:        terminal.AtomTab,
	tcell.KeyEnter:      terminal.AtomEnter,
	tcell.KeyEscape:     terminal.AtomEscape,
	tcell.KeyF1:         terminal.AtomF1,
	tcell.KeyF2:         terminal.AtomF2,
	tcell.KeyF3:         terminal.AtomF3,
	tcell.KeyF4:         terminal.AtomF4,
	tcell.KeyF5:         terminal.AtomF5,
	tcell.KeyF6:         terminal.AtomF6,
	tcell.KeyF7:         terminal.AtomF7,
	tcell.KeyF8:         terminal.AtomF8,
	tcell.KeyF9:         terminal.AtomF9,
	tcell.KeyF10:        terminal.AtomF10,
	tcell.KeyF11:        terminal.AtomF11,
	tcell.KeyF12:        terminal.AtomF12,
}

func convertMods(m tcell.ModMask) terminal.ModMask {
	var mods terminal.ModMask
	if m&tcell.ModShift != 0 {
		mods |= terminal.ModShift
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mods |= terminal.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mods |= terminal.ModCtrl
	}
	return mods
}

// translateKey maps a tcell key press to a native key or char event.
// Ctrl+letter chords become a CharEvent with the lowercase letter. Returns
// nil for keys the toolkit does not know.
func translateKey(k tcell.Key, r rune, m tcell.ModMask) terminal.Event {
	mods := convertMods(m)
	switch {
	case k == tcell.KeyRune:
		if r == ' ' {
			return terminal.KeyEvent{Atom: terminal.AtomSpace, Mods: mods}
		}
		if mods.Has(terminal.ModCtrl) {
			r = unicode.ToLower(r)
		}
		return terminal.CharEvent{Text: string(r), Mods: mods}
	case k == tcell.KeyBacktab:
		return terminal.KeyEvent{Atom: terminal.AtomTab, Mods: mods | terminal.ModShift}
	}
	if atom, ok := keyAtoms[k]; ok {
		return terminal.KeyEvent{Atom: atom, Mods: mods}
	}
	switch {
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return terminal.CharEvent{Text: string(rune('a' + int(k-tcell.KeyCtrlA))), Mods: mods | terminal.ModCtrl}
	case k >= tcell.KeySOH && k <= tcell.KeySUB:
		return terminal.CharEvent{Text: string(rune('a' + int(k-tcell.KeySOH))), Mods: mods | terminal.ModCtrl}
	case k == tcell.KeyCtrlBackslash || k == tcell.KeyFS:
		return terminal.CharEvent{Text: "\\", Mods: mods | terminal.ModCtrl}
	case k == tcell.KeyCtrlSpace || k == tcell.KeyNUL:
		return terminal.KeyEvent{Atom: terminal.AtomSpace, Mods: mods | terminal.ModCtrl}
	}
	return nil
}

// keySignal reports which keyboard signal a native event stands for.
func keySignal(ev terminal.Event) (Signal, bool) {
	switch e := ev.(type) {
	case terminal.CharEvent:
		if e.Mods != terminal.ModCtrl {
			return 0, false
		}
		switch e.Text {
		case "c":
			return SignalInterrupt, true
		case "\\":
			return SignalQuit, true
		case "z":
			return SignalSuspend, true
		}
	}
	return 0, false
}
