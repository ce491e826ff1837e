package symbol

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_InternIsStable(t *testing.T) {
	tbl := NewTable()

	a := tbl.Intern("button.fg")
	b := tbl.Intern("button.fg")
	c := tbl.Intern("button.bg")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "button.fg", tbl.Name(a))
	assert.Equal(t, "button.bg", tbl.Name(c))
}

func TestTable_EmptyNameIsZero(t *testing.T) {
	tbl := NewTable()
	assert.Equal(t, Symbol(0), tbl.Intern(""))
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_Lookup(t *testing.T) {
	tbl := NewTable()

	_, ok := tbl.Lookup("window.bg")
	assert.False(t, ok)

	want := tbl.Intern("window.bg")
	got, ok := tbl.Lookup("window.bg")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestTable_NameOutOfRange(t *testing.T) {
	tbl := NewTable()
	assert.Equal(t, "", tbl.Name(Symbol(99)))
}

func TestTable_ConcurrentIntern(t *testing.T) {
	tbl := NewTable()
	var wg sync.WaitGroup
	results := make([][]Symbol, 8)

	for g := range results {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				results[g] = append(results[g], tbl.Intern(fmt.Sprintf("key.%d", i)))
			}
		}(g)
	}
	wg.Wait()

	for g := 1; g < len(results); g++ {
		assert.Equal(t, results[0], results[g])
	}
	assert.Equal(t, 101, tbl.Len())
}

func TestDefaultTable(t *testing.T) {
	s := Intern("root.bg")
	assert.Equal(t, s, Default().Intern("root.bg"))
	assert.Equal(t, "root.bg", s.String())
}
