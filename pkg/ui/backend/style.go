package backend

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a terminal color.
// Values 0-255 are palette indices, ColorRGB sets a flag bit for true colors.
type Color int32

const (
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7

	ColorBrightBlack   Color = 8
	ColorBrightRed     Color = 9
	ColorBrightGreen   Color = 10
	ColorBrightYellow  Color = 11
	ColorBrightBlue    Color = 12
	ColorBrightMagenta Color = 13
	ColorBrightCyan    Color = 14
	ColorBrightWhite   Color = 15

	// The 16 color scheme used by palettes calls index 7 "light gray"
	// and index 8 "dark gray".
	ColorLightGray = ColorWhite
	ColorDarkGray  = ColorBrightBlack
)

const rgbFlag = 0x01000000

// ColorRGB creates a true color from RGB components.
func ColorRGB(r, g, b uint8) Color {
	return Color(int32(r)<<16 | int32(g)<<8 | int32(b) | rgbFlag)
}

// IsRGB reports whether c is a true color.
func (c Color) IsRGB() bool {
	return c != ColorDefault && c&rgbFlag != 0
}

// RGB returns the components of a true color, or zeros for palette colors.
func (c Color) RGB() (r, g, b uint8) {
	if !c.IsRGB() {
		return 0, 0, 0
	}
	return uint8((c >> 16) & 0xFF), uint8((c >> 8) & 0xFF), uint8(c & 0xFF)
}

// String renders the color the way ParseColor reads it back.
func (c Color) String() string {
	switch {
	case c == ColorDefault:
		return "default"
	case c.IsRGB():
		r, g, b := c.RGB()
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("%d", int32(c))
}

var colorNames = []string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "lightGray",
	"darkGray", "brightRed", "brightGreen", "brightYellow", "brightBlue", "brightMagenta", "brightCyan", "brightWhite",
}

var colorAliases = map[string]Color{
	"white":       ColorWhite,
	"gray":        ColorLightGray,
	"grey":        ColorLightGray,
	"lightgrey":   ColorLightGray,
	"brightblack": ColorBrightBlack,
	"darkgrey":    ColorDarkGray,
}

// ParseColor reads a color name ("blue", "lightGray", "brightWhite"),
// "default", or a "#rrggbb" literal.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ColorDefault, fmt.Errorf("empty color")
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return ColorDefault, fmt.Errorf("invalid color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return ColorRGB(r, g, b), nil
	}
	lower := strings.ToLower(s)
	if lower == "default" {
		return ColorDefault, nil
	}
	for i, name := range colorNames {
		if strings.ToLower(name) == lower {
			return Color(i), nil
		}
	}
	if c, ok := colorAliases[lower]; ok {
		return c, nil
	}
	return ColorDefault, fmt.Errorf("unknown color %q", s)
}

// AttrMask represents text attributes.
type AttrMask uint32

const (
	AttrBold AttrMask = 1 << iota
	AttrBlink
	AttrReverse
	AttrUnderline
	AttrDim
	AttrItalic
	AttrStrikeThrough

	AttrNone AttrMask = 0
)

var attrNames = []struct {
	name string
	attr AttrMask
}{
	{"bold", AttrBold},
	{"blink", AttrBlink},
	{"reverse", AttrReverse},
	{"underline", AttrUnderline},
	{"dim", AttrDim},
	{"italic", AttrItalic},
	{"strike", AttrStrikeThrough},
}

// ParseAttributes combines attribute names into a mask.
func ParseAttributes(names []string) (AttrMask, error) {
	var mask AttrMask
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		found := false
		for _, a := range attrNames {
			if a.name == n || (n == "strikethrough" && a.attr == AttrStrikeThrough) {
				mask |= a.attr
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown attribute %q", n)
		}
	}
	return mask, nil
}

// Names lists the attributes set in the mask.
func (a AttrMask) Names() []string {
	var out []string
	for _, n := range attrNames {
		if a&n.attr != 0 {
			out = append(out, n.name)
		}
	}
	return out
}

// Style combines foreground, background colors and attributes.
type Style struct {
	fg    Color
	bg    Color
	attrs AttrMask
}

// DefaultStyle returns the default style (default colors, no attributes).
func DefaultStyle() Style {
	return Style{fg: ColorDefault, bg: ColorDefault}
}

// NewStyle builds a style from its parts.
func NewStyle(fg, bg Color, attrs AttrMask) Style {
	return Style{fg: fg, bg: bg, attrs: attrs}
}

// Foreground sets the foreground color.
func (s Style) Foreground(c Color) Style {
	s.fg = c
	return s
}

// Background sets the background color.
func (s Style) Background(c Color) Style {
	s.bg = c
	return s
}

// WithAttributes replaces the attribute mask.
func (s Style) WithAttributes(a AttrMask) Style {
	s.attrs = a
	return s
}

// Attr enables or disables a single attribute.
func (s Style) Attr(a AttrMask, on bool) Style {
	if on {
		s.attrs |= a
	} else {
		s.attrs &^= a
	}
	return s
}

// Bold enables or disables bold.
func (s Style) Bold(on bool) Style { return s.Attr(AttrBold, on) }

// Italic enables or disables italic.
func (s Style) Italic(on bool) Style { return s.Attr(AttrItalic, on) }

// Dim enables or disables dim.
func (s Style) Dim(on bool) Style { return s.Attr(AttrDim, on) }

// Underline enables or disables underline.
func (s Style) Underline(on bool) Style { return s.Attr(AttrUnderline, on) }

// Reverse enables or disables reverse video.
func (s Style) Reverse(on bool) Style { return s.Attr(AttrReverse, on) }

// Blink enables or disables blink.
func (s Style) Blink(on bool) Style { return s.Attr(AttrBlink, on) }

// StrikeThrough enables or disables strikethrough.
func (s Style) StrikeThrough(on bool) Style { return s.Attr(AttrStrikeThrough, on) }

// Attributes returns all attributes.
func (s Style) Attributes() AttrMask {
	return s.attrs
}

// FG returns the foreground color.
func (s Style) FG() Color {
	return s.fg
}

// BG returns the background color.
func (s Style) BG() Color {
	return s.bg
}

// Decompose returns the foreground, background, and attributes.
func (s Style) Decompose() (fg, bg Color, attrs AttrMask) {
	return s.fg, s.bg, s.attrs
}
