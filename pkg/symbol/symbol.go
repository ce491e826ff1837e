// Package symbol interns style keys and other short names into comparable
// handles. Equal strings always map to the same Symbol, so symbols can be
// compared and used as map keys without touching the string data.
package symbol

import "sync"

// Symbol is an interned name. The zero Symbol is the empty name.
type Symbol uint32

// Table is an intern registry. Symbols are never removed.
type Table struct {
	mu    sync.RWMutex
	ids   map[string]Symbol
	names []string
}

// NewTable creates an empty table. Symbol 0 is reserved for "".
func NewTable() *Table {
	return &Table{
		ids:   map[string]Symbol{"": 0},
		names: []string{""},
	}
}

// Intern returns the symbol for name, allocating it on first use.
func (t *Table) Intern(name string) Symbol {
	t.mu.RLock()
	id, ok := t.ids[name]
	t.mu.RUnlock()
	if ok {
		return id
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.ids[name]; ok {
		return id
	}
	id = Symbol(len(t.names))
	t.names = append(t.names, name)
	t.ids[name] = id
	return id
}

// Lookup returns the symbol for name without interning it.
func (t *Table) Lookup(name string) (Symbol, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.ids[name]
	return id, ok
}

// Name returns the string a symbol was interned from.
// Unknown symbols return "".
func (t *Table) Name(s Symbol) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(s) >= len(t.names) {
		return ""
	}
	return t.names[s]
}

// Len returns the number of interned names, including the empty name.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}

var defaultTable = NewTable()

// Default returns the process-wide table.
func Default() *Table {
	return defaultTable
}

// Intern interns name in the process-wide table.
func Intern(name string) Symbol {
	return defaultTable.Intern(name)
}

// String returns the symbol's name in the process-wide table.
func (s Symbol) String() string {
	return defaultTable.Name(s)
}
