package palette

import (
	"github.com/odvcencio/tuikit/pkg/symbol"
	"github.com/odvcencio/tuikit/pkg/ui/backend"
)

// Versioned is a Node whose generation changes whenever anything that can
// affect resolution at that node changes: its palette, its classes, its
// parent, or any of that in an ancestor.
type Versioned interface {
	Node
	Generation() uint64
}

type memoKey struct {
	node Node
	gen  uint64
	key  symbol.Symbol
}

const defaultMemoLimit = 4096

// Memo caches resolved values per (node, generation, key). Stale
// generations are never hit again and are dropped wholesale once the cache
// grows past its limit. A Memo is not safe for concurrent use.
type Memo struct {
	limit  int
	colors map[memoKey]backend.Color
	attrs  map[memoKey]backend.AttrMask
	hits   uint64
	misses uint64
}

// NewMemo creates a cache holding at most limit entries per value kind.
// A non-positive limit selects a default.
func NewMemo(limit int) *Memo {
	if limit <= 0 {
		limit = defaultMemoLimit
	}
	return &Memo{
		limit:  limit,
		colors: make(map[memoKey]backend.Color),
		attrs:  make(map[memoKey]backend.AttrMask),
	}
}

// Color resolves key for target through the cache.
func (m *Memo) Color(target Versioned, key symbol.Symbol) backend.Color {
	k := memoKey{node: target, gen: target.Generation(), key: key}
	if c, ok := m.colors[k]; ok {
		m.hits++
		return c
	}
	m.misses++
	c := ResolveColor(target, key)
	if len(m.colors) >= m.limit {
		clear(m.colors)
	}
	m.colors[k] = c
	return c
}

// Attributes resolves an attribute key for target through the cache.
func (m *Memo) Attributes(target Versioned, key symbol.Symbol) backend.AttrMask {
	k := memoKey{node: target, gen: target.Generation(), key: key}
	if a, ok := m.attrs[k]; ok {
		m.hits++
		return a
	}
	m.misses++
	a := ResolveAttributes(target, key)
	if len(m.attrs) >= m.limit {
		clear(m.attrs)
	}
	m.attrs[k] = a
	return a
}

// Reset drops every cached value.
func (m *Memo) Reset() {
	clear(m.colors)
	clear(m.attrs)
}

// Stats returns the cache hit and miss counts.
func (m *Memo) Stats() (hits, misses uint64) {
	return m.hits, m.misses
}
