package runtime

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/tuikit/pkg/ui/backend"
)

// Painter is a translated and clipped view of a buffer, handed to a widget
// for the duration of one paint call. Coordinates are local to the widget.
// Writes outside the clip area are dropped silently.
type Painter struct {
	buf    *Buffer
	origin Point
	clip   Rect
	size   Size
	cursor *Point
}

// NewPainter creates a painter over the whole buffer. Cursor placements
// are stored into cursor when it is non-nil.
func NewPainter(buf *Buffer, cursor *Point) *Painter {
	w, h := buf.Size()
	return &Painter{
		buf:    buf,
		clip:   Rect{Width: w, Height: h},
		size:   Size{Width: w, Height: h},
		cursor: cursor,
	}
}

// Width is the painter's logical width.
func (p *Painter) Width() int { return p.size.Width }

// Height is the painter's logical height.
func (p *Painter) Height() int { return p.size.Height }

// TranslateAndClip returns a painter for the local rectangle (x, y, w, h).
// The new painter is clipped to both the rectangle and p's clip area.
func (p *Painter) TranslateAndClip(x, y, w, h int) *Painter {
	origin := Point{X: p.origin.X + x, Y: p.origin.Y + y}
	r := Rect{X: origin.X, Y: origin.Y, Width: max(0, w), Height: max(0, h)}
	return &Painter{
		buf:    p.buf,
		origin: origin,
		clip:   r.Intersection(p.clip),
		size:   Size{Width: max(0, w), Height: max(0, h)},
		cursor: p.cursor,
	}
}

// Clear fills the painter area with spaces in the given colors.
func (p *Painter) Clear(fg, bg backend.Color) {
	p.ClearWithChar(fg, bg, ' ')
}

// ClearWithChar fills the painter area with ch in the given colors.
func (p *Painter) ClearWithChar(fg, bg backend.Color, ch rune) {
	p.ClearRectWithChar(0, 0, p.size.Width, p.size.Height, fg, bg, ch)
}

// ClearRect fills a local rectangle with spaces.
func (p *Painter) ClearRect(x, y, w, h int, fg, bg backend.Color) {
	p.ClearRectWithChar(x, y, w, h, fg, bg, ' ')
}

// ClearRectWithChar fills a local rectangle with ch.
func (p *Painter) ClearRectWithChar(x, y, w, h int, fg, bg backend.Color, ch rune) {
	r := Rect{X: p.origin.X + x, Y: p.origin.Y + y, Width: w, Height: h}.Intersection(p.clip)
	if r.Empty() {
		return
	}
	p.buf.Fill(r, ch, backend.NewStyle(fg, bg, 0))
}

// WriteWithColors writes text at a local position.
func (p *Painter) WriteWithColors(x, y int, text string, fg, bg backend.Color) {
	p.WriteWithAttributes(x, y, text, fg, bg, 0)
}

// WriteWithAttributes writes text at a local position with attributes.
// Zero width runes are dropped. A wide glyph cut by the clip area is
// replaced by a space.
func (p *Painter) WriteWithAttributes(x, y int, text string, fg, bg backend.Color, attrs backend.AttrMask) {
	ay := p.origin.Y + y
	if ay < p.clip.Y || ay >= p.clip.Bottom() {
		return
	}
	style := backend.NewStyle(fg, bg, attrs)
	ax := p.origin.X + x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if ax >= p.clip.Right() {
			return
		}
		switch {
		case ax >= p.clip.X && ax+w <= p.clip.Right():
			p.buf.Set(ax, ay, r, style)
		case ax+w > p.clip.X:
			// Partially visible wide glyph.
			for cx := max(ax, p.clip.X); cx < min(ax+w, p.clip.Right()); cx++ {
				p.buf.Set(cx, ay, ' ', style)
			}
		}
		ax += w
	}
}

// SetCursor places the terminal cursor at a local position. Positions
// outside the painter area are ignored.
func (p *Painter) SetCursor(x, y int) {
	if p.cursor == nil {
		return
	}
	if x < 0 || y < 0 || x >= p.size.Width || y >= p.size.Height {
		return
	}
	*p.cursor = Point{X: p.origin.X + x, Y: p.origin.Y + y}
}

// TextWidth returns the number of columns text occupies.
func (p *Painter) TextWidth(text string) int {
	return runewidth.StringWidth(text)
}
