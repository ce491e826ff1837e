package palette

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tkerrors "github.com/odvcencio/tuikit/pkg/errors"
	"github.com/odvcencio/tuikit/pkg/ui/backend"
)

func TestParseStandaloneTheme(t *testing.T) {
	f, err := Parse([]byte(`
name: mono
colors:
  window.default.control.bg: "#102030"
  window.default.control.fg: brightWhite
attributes:
  window.default.control.attrs: [bold, underline]
`))
	require.NoError(t, err)
	assert.Equal(t, "mono", f.Name)
	require.Len(t, f.Palette.Rules(), 3, "themes without a base get the default rules")

	w := child(withPalette(f.Palette), "window")
	assert.Equal(t, backend.ColorRGB(0x10, 0x20, 0x30), ResolveColor(w, key("control.bg")))
	assert.Equal(t, backend.ColorBrightWhite, ResolveColor(w, key("control.fg")))
	assert.Equal(t, backend.AttrBold|backend.AttrUnderline, ResolveAttributes(w, key("control.attrs")))
}

func TestParseWithBaseOverridesPreset(t *testing.T) {
	f, err := Parse([]byte(`
base: classic
colors:
  window.default.control.bg: red
`))
	require.NoError(t, err)
	assert.Equal(t, "classic", f.Name)
	assert.Len(t, f.Palette.Rules(), 3, "base already carries the default rules")

	w := child(withPalette(f.Palette), "window")
	assert.Equal(t, backend.ColorRed, ResolveColor(w, key("control.bg")))
	assert.Equal(t, backend.ColorBlack, ResolveColor(w, key("button.fg")))
}

func TestParseRules(t *testing.T) {
	f, err := Parse([]byte(`
default_rules: false
colors:
  accent: green
rules:
  - classes: [status]
    publish:
      - [status.fg, accent]
    local:
      - [status.self, accent]
`))
	require.NoError(t, err)
	rules := f.Palette.Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, []string{"status"}, rules[0].Classes)
	assert.Equal(t, []RuleCmd{PublishCmd("status.fg", "accent"), LocalCmd("status.self", "accent")}, rules[0].Commands)

	root := withPalette(f.Palette)
	bar := child(root, "status")
	label := child(bar)
	assert.Equal(t, backend.ColorGreen, ResolveColor(label, key("status.fg")))
	assert.Equal(t, backend.ColorGreen, ResolveColor(bar, key("status.self")))
	assert.Equal(t, FallbackColor, ResolveColor(label, key("status.self")))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code tkerrors.ErrorCode
	}{
		{"bad yaml", "colors: [", tkerrors.ErrCodePaletteParse},
		{"bad color", "colors:\n  a: mauve\n", tkerrors.ErrCodePaletteParse},
		{"bad hex", "colors:\n  a: \"#zzzzzz\"\n", tkerrors.ErrCodePaletteParse},
		{"bad attribute", "attributes:\n  a: [sparkle]\n", tkerrors.ErrCodePaletteParse},
		{"short rule", "rules:\n  - publish:\n      - [only]\n", tkerrors.ErrCodePaletteParse},
		{"unknown base", "base: neon\n", tkerrors.ErrCodePaletteUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, tkerrors.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestParseRuleErrorNamesRule(t *testing.T) {
	doc := `
rules:
  - classes: [window]
    publish:
      - [a, b]
  - classes: [window, dialog]
    local:
      - [a, b, c]
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	var tkErr *tkerrors.Error
	require.True(t, errors.As(err, &tkErr))
	assert.Equal(t, tkerrors.ErrCodePaletteParse, tkErr.Code)
	assert.Equal(t, "rule 1: local entry needs [target, source], got 3 names", tkErr.Message)
	assert.Equal(t, 1, tkErr.Context["rule"])
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base: black\nname: night\n"), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "night", f.Name)
	assert.Equal(t, path, f.Path)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, tkerrors.IsCode(err, tkerrors.ErrCodePaletteParse))
}

func TestMarshalRoundTrip(t *testing.T) {
	p := Black()
	p.SetAttribute("window.default.button.attrs", backend.AttrBold)

	data, err := Marshal("copy", &p)
	require.NoError(t, err)

	f, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "copy", f.Name)
	assert.Equal(t, p.ColorKeys(), f.Palette.ColorKeys())

	w := child(withPalette(f.Palette), "window")
	assert.Equal(t, backend.ColorBlack, ResolveColor(w, key("control.bg")))
	assert.Equal(t, backend.AttrBold, ResolveAttributes(w, key("button.attrs")))
}
