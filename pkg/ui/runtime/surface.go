package runtime

import "github.com/odvcencio/tuikit/pkg/ui/backend"

// Surface is the terminal-sized cell buffer bound to a backend.
type Surface struct {
	be  backend.Backend
	buf *Buffer
}

// NewSurface creates a surface matching the backend's current size.
func NewSurface(be backend.Backend) *Surface {
	w, h := be.Size()
	return &Surface{be: be, buf: NewBuffer(w, h)}
}

// Width returns the surface width in cells.
func (s *Surface) Width() int { return s.buf.width }

// Height returns the surface height in cells.
func (s *Surface) Height() int { return s.buf.height }

// Size returns the surface dimensions.
func (s *Surface) Size() Size {
	return Size{Width: s.buf.width, Height: s.buf.height}
}

// Buffer exposes the cell grid.
func (s *Surface) Buffer() *Buffer {
	return s.buf
}

// Resize changes the surface dimensions.
func (s *Surface) Resize(w, h int) {
	s.buf.Resize(w, h)
}

// Clear fills every cell with fill in the given colors.
func (s *Surface) Clear(fg, bg backend.Color, fill rune) {
	s.buf.Fill(Rect{Width: s.buf.width, Height: s.buf.height}, fill, backend.NewStyle(fg, bg, 0))
}

// CopyRect draws src onto the surface with its origin at (x, y).
func (s *Surface) CopyRect(src *Buffer, x, y int) {
	s.buf.DrawImage(x, y, src)
}

// Flush transmits the buffer to the backend. Without force only dirty
// cells are sent and the backend diffs its output. With force every cell
// is sent and the backend retransmits the whole screen.
func (s *Surface) Flush(force bool) {
	put := func(x, y int, c Cell) {
		if c.IsContinuation() {
			return
		}
		s.be.SetContent(x, y, c.Rune, nil, c.Style)
	}
	if force {
		s.buf.ForEachCell(put)
		s.buf.ClearDirty()
		s.be.Sync()
		return
	}
	s.buf.ForEachDirtyCell(put)
	s.buf.ClearDirty()
	s.be.Show()
}
