package runtime

import (
	"testing"

	"github.com/odvcencio/tuikit/pkg/ui/backend"
)

func TestPainter_TranslateAndClip(t *testing.T) {
	buf := NewBuffer(10, 3)
	p := NewPainter(buf, nil).TranslateAndClip(2, 1, 4, 1)

	if p.Width() != 4 || p.Height() != 1 {
		t.Fatalf("size = %dx%d, want 4x1", p.Width(), p.Height())
	}
	p.WriteWithColors(0, 0, "abcdefgh", backend.ColorDefault, backend.ColorDefault)
	p.WriteWithColors(0, 1, "below", backend.ColorDefault, backend.ColorDefault)
	p.WriteWithColors(-2, 0, "xy", backend.ColorDefault, backend.ColorDefault)

	if got := buf.Row(1); got != "  abcd    " {
		t.Errorf("row 1 = %q", got)
	}
	if got := buf.Row(2); got != "          " {
		t.Errorf("row 2 = %q, writes below the clip must be dropped", got)
	}
}

func TestPainter_NestedClip(t *testing.T) {
	buf := NewBuffer(10, 1)
	outer := NewPainter(buf, nil).TranslateAndClip(1, 0, 3, 1)
	inner := outer.TranslateAndClip(2, 0, 5, 1)

	inner.Clear(backend.ColorRed, backend.ColorBlue)
	inner.WriteWithColors(0, 0, "zzzzz", backend.ColorDefault, backend.ColorDefault)

	if got := buf.Row(0); got != "   z      " {
		t.Errorf("row = %q", got)
	}
	if inner.Width() != 5 {
		t.Errorf("logical width = %d, want 5", inner.Width())
	}
}

func TestPainter_ClearRectWithChar(t *testing.T) {
	buf := NewBuffer(5, 2)
	p := NewPainter(buf, nil)
	p.ClearRectWithChar(1, 0, 3, 2, backend.ColorGreen, backend.ColorBlack, '#')

	if got := buf.Row(0); got != " ### " {
		t.Errorf("row 0 = %q", got)
	}
	c := buf.Get(2, 1)
	if c.Style.FG() != backend.ColorGreen || c.Style.BG() != backend.ColorBlack {
		t.Errorf("style = %v on %v", c.Style.FG(), c.Style.BG())
	}
}

func TestPainter_WideGlyphCutByClip(t *testing.T) {
	buf := NewBuffer(6, 1)
	p := NewPainter(buf, nil).TranslateAndClip(0, 0, 3, 1)
	p.WriteWithColors(0, 0, "a世b", backend.ColorDefault, backend.ColorDefault)

	if got := buf.Row(0); got != "a世   " {
		t.Errorf("row = %q", got)
	}

	buf = NewBuffer(6, 1)
	p = NewPainter(buf, nil).TranslateAndClip(0, 0, 2, 1)
	p.WriteWithColors(0, 0, "a世", backend.ColorDefault, backend.ColorDefault)
	if got := buf.Row(0); got != "a     " {
		t.Errorf("cut glyph must become a space, row = %q", got)
	}
}

func TestPainter_Attributes(t *testing.T) {
	buf := NewBuffer(3, 1)
	NewPainter(buf, nil).WriteWithAttributes(0, 0, "b", backend.ColorWhite, backend.ColorBlue, backend.AttrBold)
	if got := buf.Get(0, 0).Style.Attributes(); got&backend.AttrBold == 0 {
		t.Errorf("attributes = %v, want bold", got)
	}
}

func TestPainter_SetCursor(t *testing.T) {
	cursor := Point{X: -1, Y: -1}
	p := NewPainter(NewBuffer(10, 5), &cursor).TranslateAndClip(3, 2, 4, 2)

	p.SetCursor(4, 0)
	if cursor != (Point{X: -1, Y: -1}) {
		t.Errorf("out of area cursor accepted: %v", cursor)
	}
	p.SetCursor(1, 1)
	if cursor != (Point{X: 4, Y: 3}) {
		t.Errorf("cursor = %v, want (4,3)", cursor)
	}

	NewPainter(NewBuffer(1, 1), nil).SetCursor(0, 0)
}

func TestPainter_TextWidth(t *testing.T) {
	p := NewPainter(NewBuffer(1, 1), nil)
	if w := p.TextWidth("a世"); w != 3 {
		t.Errorf("TextWidth = %d, want 3", w)
	}
}
