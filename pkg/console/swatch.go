package console

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/odvcencio/tuikit/pkg/palette"
	"github.com/odvcencio/tuikit/pkg/ui/backend"
)

// ansiRGB approximates the 16 palette colors with the xterm defaults.
var ansiRGB = [16]string{
	"#000000", "#cd0000", "#00cd00", "#cdcd00", "#0000ee", "#cd00cd", "#00cdcd", "#e5e5e5",
	"#7f7f7f", "#ff0000", "#00ff00", "#ffff00", "#5c5cff", "#ff00ff", "#00ffff", "#ffffff",
}

// Approx returns an RGB approximation of c. ok is false for the default
// color and for indices beyond the 16 base colors.
func Approx(c backend.Color) (colorful.Color, bool) {
	if c.IsRGB() {
		r, g, b := c.RGB()
		return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
	}
	if c >= 0 && int(c) < len(ansiRGB) {
		cc, err := colorful.Hex(ansiRGB[c])
		return cc, err == nil
	}
	return colorful.Color{}, false
}

// lipglossColor maps a backend color to lipgloss, keeping palette indices
// so the user's terminal theme applies.
func lipglossColor(c backend.Color) lipgloss.TerminalColor {
	switch {
	case c == backend.ColorDefault:
		return lipgloss.NoColor{}
	case c.IsRGB():
		return lipgloss.Color(c.String())
	default:
		return lipgloss.Color(strconv.Itoa(int(c)))
	}
}

// Swatch renders a sample of c labelled with its name. The label is black
// on light colors and white on dark ones.
func (w *Writer) Swatch(c backend.Color) string {
	text := lipgloss.Color("#ffffff")
	if cc, ok := Approx(c); ok {
		if _, _, l := cc.Hcl(); l > 0.6 {
			text = lipgloss.Color("#000000")
		}
	}
	return w.renderer.NewStyle().
		Background(lipglossColor(c)).
		Foreground(text).
		Width(16).
		Render(" " + c.String())
}

// classNode is a synthetic widget used to resolve a palette for a class
// set without building a widget tree.
type classNode struct {
	parent  *classNode
	classes []string
	pal     *palette.Palette
}

func (n *classNode) ParentNode() palette.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *classNode) PaletteClasses() []string { return n.classes }

func (n *classNode) PaletteView() palette.View { return palette.ViewOf(n.pal) }

// DumpSections are the class sets a palette dump resolves.
var DumpSections = [][]string{
	nil,
	{"window"},
	{"window", "dialog"},
	{"window", "cyan"},
}

// Resolved returns every color key visible below a root carrying p, inside
// a widget with the given classes.
func Resolved(p palette.Palette, classes []string) map[string]backend.Color {
	root := &classNode{pal: &p}
	target := root
	if len(classes) > 0 {
		target = &classNode{parent: root, classes: classes}
	}
	out := make(map[string]backend.Color)
	for sym, c := range palette.ResolveAllColors(target) {
		out[sym.String()] = c
	}
	return out
}

// DumpPalette prints the resolved colors of p for every DumpSections
// entry, one swatch per key.
func (w *Writer) DumpPalette(name string, p palette.Palette) {
	w.Header(fmt.Sprintf("palette %s", name))
	for _, classes := range DumpSections {
		label := "root"
		if len(classes) > 0 {
			label = fmt.Sprint(classes)
		}
		w.Info("%s", label)

		colors := Resolved(p, classes)
		keys := make([]string, 0, len(colors))
		for k := range colors {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		w.mu.Lock()
		for _, k := range keys {
			fmt.Fprintf(w.out, "  %-44s %s\n", k, w.Swatch(colors[k]))
		}
		w.mu.Unlock()
	}
}
