package runtime

import (
	"github.com/odvcencio/tuikit/pkg/logging"
	"github.com/odvcencio/tuikit/pkg/ui/backend"
)

// Update schedules one paint pass. Repeated calls before the pass runs
// collapse into it.
func (t *Terminal) Update() {
	if t.updateRequested {
		return
	}
	t.updateRequested = true
	t.PostLow(func() {
		t.updateRequested = false
		t.paint(false)
	})
}

// ForceRepaint paints immediately and retransmits every cell.
func (t *Terminal) ForceRepaint() {
	t.paint(true)
}

// Resize adopts a new terminal size and repaints.
func (t *Terminal) Resize(width, height int) {
	if t.surface == nil {
		return
	}
	t.surface.Resize(width, height)
	if t.main != nil {
		ms := t.main.EffectiveMinimumSize()
		t.main.SetGeometry(Rect{Width: max(ms.Width, width), Height: max(ms.Height, height)})
	}
	t.log.Debug(logging.CategoryTerminal, "resized", "", map[string]any{
		"width":  width,
		"height": height,
	})
	t.ForceRepaint()
}

// GrabCurrentImage copies what the terminal currently shows.
func (t *Terminal) GrabCurrentImage() *Buffer {
	if t.surface == nil {
		return NewBuffer(0, 0)
	}
	return t.surface.Buffer().Clone()
}

// UpdateOutput sends changed cells to the backend.
func (t *Terminal) UpdateOutput() {
	t.updateOutput(false)
}

// UpdateOutputForceFullRepaint sends every cell to the backend.
func (t *Terminal) UpdateOutputForceFullRepaint() {
	t.updateOutput(true)
}

func (t *Terminal) updateOutput(force bool) {
	switch t.state {
	case InInitWithoutPendingPaintRequest:
		t.setState(InInitWithPendingPaintRequest)
	case InInitWithPendingPaintRequest:
	case Ready:
		t.updateNativeTerminalState()
		mode := "diff"
		if force {
			mode = "full"
		}
		metricFlushes.WithLabelValues(mode).Inc()
		t.surface.Flush(force)
	case Paused:
	}
}

// PauseOperation hands the terminal back to the shell, for example to run
// an editor. Only valid while Ready.
func (t *Terminal) PauseOperation() {
	if t.state != Ready {
		return
	}
	if err := t.be.Suspend(); err != nil {
		t.log.Warn(logging.CategoryTerminal, "suspend_failed", err.Error(), nil)
	}
	t.setState(Paused)
}

// UnpauseOperation reclaims the terminal and repaints it completely.
func (t *Terminal) UnpauseOperation() {
	if t.state != Paused {
		return
	}
	if err := t.be.Resume(); err != nil {
		t.log.Warn(logging.CategoryTerminal, "resume_failed", err.Error(), nil)
	}
	t.setState(Ready)
	t.UpdateOutputForceFullRepaint()
}

func (t *Terminal) paint(force bool) {
	if t.main == nil || t.surface == nil {
		return
	}
	mode := "update"
	if force {
		mode = "forced"
	}
	metricPaintPasses.WithLabelValues(mode).Inc()

	t.cursor = Point{X: -1, Y: -1}
	screen := t.surface.Size()
	minSize := t.main.EffectiveMinimumSize()

	target := t.surface.Buffer()
	if minSize.Width > screen.Width || minSize.Height > screen.Height {
		t.enterViewport(screen, minSize)
		size := minSize.Expanded(screen)
		t.vpImage = NewBuffer(size.Width, size.Height)
		target = t.vpImage
	} else {
		t.leaveViewport()
	}

	t.paintWidget(t.main, NewPainter(target, &t.cursor))

	if t.state == Ready {
		real := Point{X: t.cursor.X + t.vp.offsetX, Y: t.cursor.Y + t.vp.offsetY}
		if RectFromSize(screen).Contains(real.X, real.Y) {
			t.be.SetCursorPos(real.X, real.Y)
			if f := t.focus; f != nil {
				t.be.SetCursorStyle(f.cursorStyle, f.cursorColor)
			} else {
				t.be.SetCursorStyle(backend.CursorUnset, backend.ColorDefault)
			}
		} else {
			t.be.HideCursor()
		}
	}

	for id := 0; id < t.nextListener; id++ {
		if fn, ok := t.afterRendering[id]; ok {
			fn()
		}
	}

	if t.vp.active {
		t.surface.Clear(backend.ColorDefault, backend.ColorDefault, ' ')
		t.surface.CopyRect(t.vpImage, t.vp.offsetX, t.vp.offsetY)
		NewPainter(t.surface.Buffer(), nil).
			WriteWithColors(0, screen.Height-1, t.scrollHint(), backend.ColorDefault, backend.ColorDefault)
	}

	t.updateOutput(force)
}

// paintWidget paints w and then its visible children in stacking order,
// each through a painter clipped to its geometry.
func (t *Terminal) paintWidget(w *Widget, parent *Painter) {
	if w.hidden {
		return
	}
	g := w.geometry
	p := parent.TranslateAndClip(g.X, g.Y, g.Width, g.Height)
	if p.clip.Empty() {
		return
	}
	w.behavior.Paint(w, p)
	for _, c := range w.StackingOrder() {
		t.paintWidget(c, p)
	}
}
