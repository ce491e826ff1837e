package runtime

import "github.com/odvcencio/tuikit/pkg/logging"

// viewport scrolls a main widget that is larger than the terminal.
// Offsets are always in [range, 0].
type viewport struct {
	active   bool
	scrollUI bool
	rangeX   int
	rangeY   int
	offsetX  int
	offsetY  int
}

// ViewportActive reports whether the main widget is painted through the
// scrolling viewport.
func (t *Terminal) ViewportActive() bool {
	return t.vp.active
}

// ViewportScrolling reports whether the scroll keys are engaged.
func (t *Terminal) ViewportScrolling() bool {
	return t.vp.scrollUI
}

// ViewportOffset returns where the main widget's top left corner lands on
// the terminal. Both coordinates are zero or negative.
func (t *Terminal) ViewportOffset() Point {
	return Point{X: t.vp.offsetX, Y: t.vp.offsetY}
}

func (t *Terminal) enterViewport(screen, minSize Size) {
	if !t.vp.active {
		t.vp.active = true
		metricViewportActive.Set(1)
		t.log.Debug(logging.CategoryPaint, "viewport_entered", "", map[string]any{
			"min_width":  minSize.Width,
			"min_height": minSize.Height,
		})
	}
	// the last row is reserved for the scroll hint
	t.vp.rangeX = min(0, screen.Width-minSize.Width)
	t.vp.rangeY = min(0, screen.Height-minSize.Height-1)
	t.clampViewport()
}

func (t *Terminal) leaveViewport() {
	if t.vp.active {
		metricViewportActive.Set(0)
		t.log.Debug(logging.CategoryPaint, "viewport_left", "", nil)
	}
	t.vp = viewport{}
	t.vpImage = nil
}

func (t *Terminal) clampViewport() {
	t.vp.offsetX = clamp(t.vp.offsetX, t.vp.rangeX, 0)
	t.vp.offsetY = clamp(t.vp.offsetY, t.vp.rangeY, 0)
}

// viewportKeyEvent runs the scroll mode. It returns true when the event
// was consumed.
func (t *Terminal) viewportKeyEvent(ev *KeyEvent) bool {
	if t.vp.scrollUI {
		if ev.Key == t.scrollKey && ev.Modifiers == NoModifier {
			t.vp.scrollUI = false
			t.Update()
			return false
		}
		switch ev.Key {
		case KeyEscape:
			t.vp.scrollUI = false
		case KeyLeft:
			t.vp.offsetX++
		case KeyRight:
			t.vp.offsetX--
		case KeyDown:
			t.vp.offsetY--
		case KeyUp:
			t.vp.offsetY++
		}
		t.clampViewport()
		t.Update()
		return true
	}
	if t.vp.active && ev.Key == t.scrollKey && ev.Modifiers == NoModifier {
		t.vp.scrollUI = true
		t.Update()
		return true
	}
	return false
}
