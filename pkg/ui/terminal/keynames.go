package terminal

import "strings"

// knownAtoms lists every atom a backend may report.
var knownAtoms = []Atom{
	AtomEscape, AtomEnter, AtomTab, AtomBackspace, AtomDelete, AtomInsert,
	AtomSpace, AtomMenu,
	AtomUp, AtomDown, AtomLeft, AtomRight, AtomHome, AtomEnd,
	AtomPageUp, AtomPageDown,
	AtomF1, AtomF2, AtomF3, AtomF4, AtomF5, AtomF6,
	AtomF7, AtomF8, AtomF9, AtomF10, AtomF11, AtomF12,
	AtomKPDivide, AtomKPMultiply, AtomKPSubtract, AtomKPAdd, AtomKPEnter,
	AtomKPDecimal, AtomKP0, AtomKP1, AtomKP2, AtomKP3, AtomKP4,
	AtomKP5, AtomKP6, AtomKP7, AtomKP8, AtomKP9,
}

// nameToAtom is the reverse lookup, built from knownAtoms
var nameToAtom map[string]Atom

func init() {
	nameToAtom = make(map[string]Atom, len(knownAtoms)+8)
	for _, a := range knownAtoms {
		nameToAtom[string(a)] = a
	}
	// Aliases
	nameToAtom["esc"] = AtomEscape
	nameToAtom["return"] = AtomEnter
	nameToAtom["pgup"] = AtomPageUp
	nameToAtom["pgdn"] = AtomPageDown
	nameToAtom["del"] = AtomDelete
	nameToAtom["ins"] = AtomInsert
	nameToAtom["context_menu"] = AtomMenu
}

// AtomByName resolves a key name to an atom.
// Returns AtomUnknown and false if name is unknown.
func AtomByName(name string) (Atom, bool) {
	a, ok := nameToAtom[strings.ToLower(name)]
	return a, ok
}

// Known reports whether backends can produce the atom.
func (a Atom) Known() bool {
	_, ok := nameToAtom[string(a)]
	return ok
}

var modPrefixes = []struct {
	prefix string
	mod    ModMask
}{
	{"ctrl_", ModCtrl},
	{"alt_", ModAlt},
	{"shift_", ModShift},
}

// ParseChord reads a chord name such as "f6", "shift_f6" or "ctrl_l".
// Modifier prefixes may appear in any order. A single character after the
// modifiers yields text instead of an atom.
func ParseChord(name string) (atom Atom, text string, mods ModMask, ok bool) {
	rest := strings.ToLower(strings.TrimSpace(name))
	for {
		matched := false
		for _, p := range modPrefixes {
			if strings.HasPrefix(rest, p.prefix) && len(rest) > len(p.prefix) {
				mods |= p.mod
				rest = rest[len(p.prefix):]
				matched = true
			}
		}
		if !matched {
			break
		}
	}
	if a, found := AtomByName(rest); found {
		return a, "", mods, true
	}
	if len([]rune(rest)) == 1 {
		return AtomUnknown, rest, mods, true
	}
	return AtomUnknown, "", 0, false
}
