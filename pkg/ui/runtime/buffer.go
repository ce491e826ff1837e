package runtime

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/tuikit/pkg/ui/backend"
)

// Cell represents a single character cell in the buffer.
// A double width glyph occupies its cell (Width 2) and a continuation
// cell to its right (Width 0).
type Cell struct {
	Rune  rune
	Width int
	Style backend.Style
}

var blankCell = Cell{Rune: ' ', Width: 1, Style: backend.DefaultStyle()}

// IsContinuation reports whether c is the right half of a wide glyph.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// Buffer is a 2D grid of cells for rendering widgets.
// Widgets render to the buffer, then the buffer is flushed to the backend.
// Supports dirty-region tracking for partial redraws.
type Buffer struct {
	cells  []Cell
	width  int
	height int

	// Dirty tracking - tracks which cells have changed
	dirty      []bool // Parallel to cells, true if cell changed
	dirtyCount int    // Number of dirty cells (fast check)
	dirtyRect  Rect   // Bounding box of dirty region
}

// NewBuffer creates a blank buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	w, h = max(0, w), max(0, h)
	b := &Buffer{
		cells:  make([]Cell, w*h),
		dirty:  make([]bool, w*h),
		width:  w,
		height: h,
	}
	for i := range b.cells {
		b.cells[i] = blankCell
	}
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes the buffer dimensions, preserving content where possible.
func (b *Buffer) Resize(w, h int) {
	w, h = max(0, w), max(0, h)
	if w == b.width && h == b.height {
		return
	}
	newCells := make([]Cell, w*h)
	for i := range newCells {
		newCells[i] = blankCell
	}
	// Copy existing content
	for y := 0; y < min(h, b.height); y++ {
		for x := 0; x < min(w, b.width); x++ {
			newCells[y*w+x] = b.cells[y*b.width+x]
		}
	}
	b.cells = newCells
	b.dirty = make([]bool, w*h)
	b.width = w
	b.height = h
	// A wide glyph cut at the new right edge loses its continuation.
	if w > 0 {
		for y := 0; y < h; y++ {
			if c := b.cells[y*w+w-1]; c.Width == 2 {
				b.cells[y*w+w-1] = Cell{Rune: ' ', Width: 1, Style: c.Style}
			}
		}
	}
	// Mark entire buffer dirty on resize
	b.MarkAllDirty()
}

// Clone returns an independent copy of the buffer, dirty state included.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		cells:      append([]Cell(nil), b.cells...),
		dirty:      append([]bool(nil), b.dirty...),
		width:      b.width,
		height:     b.height,
		dirtyCount: b.dirtyCount,
		dirtyRect:  b.dirtyRect,
	}
}

// Clear fills the buffer with spaces and default style.
func (b *Buffer) Clear() {
	b.Fill(Rect{0, 0, b.width, b.height}, ' ', backend.DefaultStyle())
}

// ClearRect fills a rectangular region with spaces and default style.
func (b *Buffer) ClearRect(r Rect) {
	b.Fill(r, ' ', backend.DefaultStyle())
}

// Get returns the cell at position (x, y).
// Returns a blank cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return blankCell
	}
	return b.cells[y*b.width+x]
}

// Set writes a rune with style at position (x, y) and returns the number
// of columns it took. Wide runes that do not fit are replaced by a space.
// No-op if out of bounds.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0
	}
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		w = 1
	}
	if w == 2 && x+1 >= b.width {
		r, w = ' ', 1
	}
	b.setCell(x, y, Cell{Rune: r, Width: w, Style: s})
	if w == 2 {
		b.setCell(x+1, y, Cell{Width: 0, Style: s})
	}
	return w
}

// SetString writes a string starting at (x, y) and returns the number of
// columns advanced. Clips to buffer bounds. Marks changed cells as dirty.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) int {
	if y < 0 || y >= b.height {
		return 0
	}
	px := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if px >= b.width {
			break
		}
		if px >= 0 {
			b.Set(px, y, r, style)
		} else if px+w > 0 {
			// Right half of a wide glyph hanging over the left edge.
			b.Set(0, y, ' ', style)
		}
		px += w
	}
	return px - x
}

// setCell stores c, repairing the neighbours of a wide glyph it overwrites.
func (b *Buffer) setCell(x, y int, c Cell) {
	idx := y*b.width + x
	old := b.cells[idx]
	if old == c {
		return
	}
	if old.Width == 0 && c.Width != 0 && x > 0 {
		if lead := b.cells[idx-1]; lead.Width == 2 {
			b.cells[idx-1] = Cell{Rune: ' ', Width: 1, Style: lead.Style}
			b.markCellDirty(x-1, y, idx-1)
		}
	}
	if old.Width == 2 && c.Width != 2 && x+1 < b.width {
		if cont := b.cells[idx+1]; cont.Width == 0 {
			b.cells[idx+1] = Cell{Rune: ' ', Width: 1, Style: cont.Style}
			b.markCellDirty(x+1, y, idx+1)
		}
	}
	b.cells[idx] = c
	b.markCellDirty(x, y, idx)
}

// Fill fills a rectangular region with a rune and style.
// Marks changed cells as dirty.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	// Clip to buffer bounds
	x0 := max(0, r.X)
	y0 := max(0, r.Y)
	x1 := min(b.width, r.X+r.Width)
	y1 := min(b.height, r.Y+r.Height)

	if runewidth.RuneWidth(ch) != 1 {
		ch = ' '
	}
	cell := Cell{Rune: ch, Width: 1, Style: s}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			b.setCell(x, y, cell)
		}
	}
}

// DrawImage copies src into b with its top-left corner at (x, y).
func (b *Buffer) DrawImage(x, y int, src *Buffer) {
	for sy := 0; sy < src.height; sy++ {
		ty := y + sy
		if ty < 0 || ty >= b.height {
			continue
		}
		for sx := 0; sx < src.width; sx++ {
			tx := x + sx
			if tx < 0 || tx >= b.width {
				continue
			}
			c := src.cells[sy*src.width+sx]
			switch {
			case c.Width == 2 && tx+1 >= b.width:
				c = Cell{Rune: ' ', Width: 1, Style: c.Style}
			case c.Width == 0 && tx == 0:
				c = Cell{Rune: ' ', Width: 1, Style: c.Style}
			}
			b.setCell(tx, ty, c)
		}
	}
}

// --- Dirty Tracking Methods ---

// markCellDirty marks a single cell as dirty and updates the bounding box.
func (b *Buffer) markCellDirty(x, y, idx int) {
	if !b.dirty[idx] {
		b.dirty[idx] = true
		b.dirtyCount++

		// Expand dirty rect
		if b.dirtyCount == 1 {
			// First dirty cell - initialize rect
			b.dirtyRect = Rect{X: x, Y: y, Width: 1, Height: 1}
		} else {
			// Expand to include this cell
			if x < b.dirtyRect.X {
				b.dirtyRect.Width += b.dirtyRect.X - x
				b.dirtyRect.X = x
			} else if x >= b.dirtyRect.X+b.dirtyRect.Width {
				b.dirtyRect.Width = x - b.dirtyRect.X + 1
			}
			if y < b.dirtyRect.Y {
				b.dirtyRect.Height += b.dirtyRect.Y - y
				b.dirtyRect.Y = y
			} else if y >= b.dirtyRect.Y+b.dirtyRect.Height {
				b.dirtyRect.Height = y - b.dirtyRect.Y + 1
			}
		}
	}
}

// MarkAllDirty marks the entire buffer as dirty.
func (b *Buffer) MarkAllDirty() {
	for i := range b.dirty {
		b.dirty[i] = true
	}
	b.dirtyCount = len(b.dirty)
	b.dirtyRect = Rect{X: 0, Y: 0, Width: b.width, Height: b.height}
}

// ClearDirty resets all dirty flags.
func (b *Buffer) ClearDirty() {
	clear(b.dirty)
	b.dirtyCount = 0
	b.dirtyRect = Rect{}
}

// IsDirty returns true if any cells have changed.
func (b *Buffer) IsDirty() bool {
	return b.dirtyCount > 0
}

// DirtyCount returns the number of dirty cells.
func (b *Buffer) DirtyCount() int {
	return b.dirtyCount
}

// DirtyRect returns the bounding box of dirty cells.
// Returns empty rect if nothing is dirty.
func (b *Buffer) DirtyRect() Rect {
	return b.dirtyRect
}

// IsCellDirty returns true if the cell at (x, y) is dirty.
func (b *Buffer) IsCellDirty(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	return b.dirty[y*b.width+x]
}

// ForEachDirtyCell calls fn for each dirty cell.
// More efficient than iterating all cells when few are dirty.
func (b *Buffer) ForEachDirtyCell(fn func(x, y int, cell Cell)) {
	if b.dirtyCount == 0 {
		return
	}
	// If most cells are dirty, iterate linearly
	if b.dirtyCount > b.width*b.height/2 {
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				idx := y*b.width + x
				if b.dirty[idx] {
					fn(x, y, b.cells[idx])
				}
			}
		}
		return
	}
	// Otherwise, iterate only within dirty rect
	for y := b.dirtyRect.Y; y < b.dirtyRect.Y+b.dirtyRect.Height && y < b.height; y++ {
		for x := b.dirtyRect.X; x < b.dirtyRect.X+b.dirtyRect.Width && x < b.width; x++ {
			idx := y*b.width + x
			if b.dirty[idx] {
				fn(x, y, b.cells[idx])
			}
		}
	}
}

// ForEachCell calls fn for every cell in row-major order.
func (b *Buffer) ForEachCell(fn func(x, y int, cell Cell)) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			fn(x, y, b.cells[y*b.width+x])
		}
	}
}

// Row returns the text of row y, continuation cells skipped.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	out := make([]rune, 0, b.width)
	for x := 0; x < b.width; x++ {
		c := b.cells[y*b.width+x]
		if c.Width == 0 {
			continue
		}
		out = append(out, c.Rune)
	}
	return string(out)
}
