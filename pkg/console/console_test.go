package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/tuikit/pkg/palette"
	"github.com/odvcencio/tuikit/pkg/ui/backend"
)

func plainWriter() (*Writer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWithOutput(&buf, WithProfile(termenv.Ascii)), &buf
}

func TestWriterMessages(t *testing.T) {
	w, buf := plainWriter()

	w.Error("terminal %s is incompatible", "dumb")
	w.Warn("be careful")
	w.Success("it worked")
	w.Println("plain %d", 1)

	got := buf.String()
	assert.Contains(t, got, "error: terminal dumb is incompatible\n")
	assert.Contains(t, got, "warning: be careful\n")
	assert.Contains(t, got, "✓ it worked\n")
	assert.Contains(t, got, "plain 1\n")
	assert.NotContains(t, got, "\x1b[", "the ascii profile strips colors")
}

func TestWriterBox(t *testing.T) {
	w, buf := plainWriter()
	w.Box("Title", "content")
	got := buf.String()
	assert.Contains(t, got, "╭")
	assert.Contains(t, got, "Title")
	assert.Contains(t, got, "content")
}

func TestApprox(t *testing.T) {
	c, ok := Approx(backend.ColorRGB(0x80, 0x80, 0x80))
	require.True(t, ok)
	assert.Equal(t, "#808080", c.Hex())

	c, ok = Approx(backend.ColorBlue)
	require.True(t, ok)
	assert.Equal(t, "#0000ee", c.Hex())

	_, ok = Approx(backend.ColorDefault)
	assert.False(t, ok)
}

func TestSwatch(t *testing.T) {
	w, _ := plainWriter()
	s := w.Swatch(backend.ColorBrightWhite)
	assert.True(t, strings.HasPrefix(s, " brightWhite"))
	assert.Equal(t, " default", strings.TrimRight(w.Swatch(backend.ColorDefault), " "))
}

func TestResolved(t *testing.T) {
	p := palette.Classic()

	root := Resolved(p, nil)
	assert.Equal(t, backend.ColorBlack, root["root.bg"])
	_, ok := root["button.fg"]
	assert.False(t, ok, "rules only apply below a window")

	win := Resolved(p, []string{"window"})
	assert.Equal(t, backend.ColorBlue, win["window.bg"])
	assert.Equal(t, backend.ColorBlack, win["button.fg"])

	dialog := Resolved(p, []string{"window", "dialog"})
	assert.Equal(t, backend.ColorLightGray, dialog["window.bg"])
}

func TestDumpPalette(t *testing.T) {
	w, buf := plainWriter()
	w.DumpPalette("classic", palette.Classic())

	got := buf.String()
	assert.Contains(t, got, "palette classic")
	assert.Contains(t, got, "[window dialog]")
	assert.Contains(t, got, "root.bg")
	assert.Regexp(t, `button\.fg\s+ black`, got)
}
