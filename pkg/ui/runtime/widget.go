package runtime

import (
	"slices"
	"sort"

	"github.com/odvcencio/tuikit/pkg/palette"
	"github.com/odvcencio/tuikit/pkg/symbol"
	"github.com/odvcencio/tuikit/pkg/ui/backend"
)

// FocusPolicy controls how a widget accepts keyboard focus.
type FocusPolicy int

const (
	NoFocus FocusPolicy = iota
	TabFocus
	StrongFocus
)

// FocusContainerMode controls how Tab focus travels inside a subtree.
type FocusContainerMode int

const (
	FocusContainerNone FocusContainerMode = iota
	// FocusContainerSubOrdering keeps the subtree together in the tab order.
	FocusContainerSubOrdering
	// FocusContainerCycle wraps tab focus around inside the subtree.
	FocusContainerCycle
)

// Widget is a node in the widget tree.
//
// Widgets own their children. Behavior supplies painting and input
// handling, everything else (geometry, palette, focus, stacking) lives here.
// A Widget must only be used from the terminal's loop goroutine.
type Widget struct {
	parent   *Widget
	children []*Widget
	behavior Behavior

	// term is only set on the main widget; Terminal() walks up to it.
	term *Terminal

	geometry Rect
	minSize  Size
	disabled bool
	hidden   bool

	focusPolicy FocusPolicy
	focusMode   FocusContainerMode

	stackingLayer int
	stackSeq      int64
	nextStackSeq  int64

	palette        palette.Palette
	paletteClasses []string
	gen            uint64
	paletteSubs    map[int]func()
	nextSub        int

	cursorStyle backend.CursorStyle
	cursorColor backend.Color

	facets map[FacetTag]any

	// Focus history links, owned by the terminal.
	histPrev, histNext *Widget
	// historyOwner and shortcutMaps outlive detaching so Destroy can
	// still unlink w.
	historyOwner *Terminal
	shortcutMaps []*ShortcutMap
	inHistory          bool

	destroyed bool
}

// NewWidget creates a widget below parent. A nil behavior selects
// BaseBehavior.
func NewWidget(parent *Widget, behavior Behavior) *Widget {
	if behavior == nil {
		behavior = BaseBehavior{}
	}
	w := &Widget{
		behavior:    behavior,
		cursorColor: backend.ColorDefault,
	}
	if parent != nil {
		w.SetParent(parent)
	}
	return w
}

// Behavior returns the widget's behavior.
func (w *Widget) Behavior() Behavior {
	return w.behavior
}

// Parent returns the parent widget, nil for a tree root.
func (w *Widget) Parent() *Widget {
	return w.parent
}

// Children returns the children in insertion order.
func (w *Widget) Children() []*Widget {
	return slices.Clone(w.children)
}

// SetParent moves w below parent. A nil parent detaches w.
func (w *Widget) SetParent(parent *Widget) {
	if w.parent == parent {
		return
	}
	if parent != nil && (parent == w || w.IsAncestorOf(parent)) {
		return
	}
	if old := w.parent; old != nil {
		old.children = slices.DeleteFunc(old.children, func(c *Widget) bool { return c == w })
		if obs, ok := old.behavior.(ChildObserver); ok {
			obs.ChildRemoved(old, w)
		}
		// Focus and grab can not stay on a detached subtree.
		if t := old.Terminal(); t != nil {
			t.forgetSubtree(w)
		}
		old.Update()
	}
	w.parent = parent
	if parent != nil {
		parent.nextStackSeq++
		w.stackSeq = parent.nextStackSeq
		parent.children = append(parent.children, w)
		if obs, ok := parent.behavior.(ChildObserver); ok {
			obs.ChildAdded(parent, w)
		}
	}
	w.paletteChanged()
}

// Destroy detaches w from the tree and drops every reference the
// terminal holds to w or its descendants.
func (w *Widget) Destroy() {
	if w.destroyed {
		return
	}
	for _, c := range slices.Clone(w.children) {
		c.Destroy()
	}
	if t := w.Terminal(); t != nil {
		t.widgetDestroyed(w)
	}
	w.forgetHistory()
	for _, m := range slices.Clone(w.shortcutMaps) {
		m.RemoveWidget(w)
	}
	w.shortcutMaps = nil
	w.SetParent(nil)
	w.paletteSubs = nil
	w.destroyed = true
}

// IsAncestorOf reports whether w is a strict ancestor of other.
func (w *Widget) IsAncestorOf(other *Widget) bool {
	if other == nil {
		return false
	}
	for p := other.parent; p != nil; p = p.parent {
		if p == w {
			return true
		}
	}
	return false
}

// Terminal returns the terminal the tree is attached to, or nil.
func (w *Widget) Terminal() *Terminal {
	n := w
	for n.parent != nil {
		n = n.parent
	}
	return n.term
}

// Update requests a paint pass on the attached terminal.
func (w *Widget) Update() {
	if t := w.Terminal(); t != nil {
		t.Update()
	}
}

// --- Geometry ---

// Geometry returns the widget rectangle in parent coordinates.
func (w *Widget) Geometry() Rect {
	return w.geometry
}

// SetGeometry moves and resizes the widget.
func (w *Widget) SetGeometry(r Rect) {
	r.Width = max(0, r.Width)
	r.Height = max(0, r.Height)
	if r == w.geometry {
		return
	}
	old := w.geometry
	w.geometry = r
	if rs, ok := w.behavior.(Resizer); ok {
		rs.Resized(w, old)
	}
	w.Update()
}

// MinimumSize returns the explicitly set minimum size.
func (w *Widget) MinimumSize() Size {
	return w.minSize
}

// SetMinimumSize sets the minimum size. The terminal scrolls a viewport
// when the main widget's minimum exceeds the terminal.
func (w *Widget) SetMinimumSize(s Size) {
	if w.minSize == s {
		return
	}
	w.minSize = s
	w.Update()
}

// EffectiveMinimumSize combines the explicit minimum with the behavior's
// minimum size hint.
func (w *Widget) EffectiveMinimumSize() Size {
	if h, ok := w.behavior.(MinimumSizeHinter); ok {
		return w.minSize.Expanded(h.MinimumSizeHint(w))
	}
	return w.minSize
}

// SizeHint returns the preferred size from the behavior.
func (w *Widget) SizeHint() Size {
	return w.behavior.SizeHint(w)
}

// MinimumSizeHint returns the behavior's minimum size hint, if any.
func (w *Widget) MinimumSizeHint() Size {
	if h, ok := w.behavior.(MinimumSizeHinter); ok {
		return h.MinimumSizeHint(w)
	}
	return Size{}
}

// LayoutArea is the part of the widget available to children.
func (w *Widget) LayoutArea() Rect {
	return w.behavior.LayoutArea(w)
}

// ContentsRect is the widget area in local coordinates.
func (w *Widget) ContentsRect() Rect {
	return Rect{Width: w.geometry.Width, Height: w.geometry.Height}
}

// MapToTerminal converts a local point to terminal coordinates.
func (w *Widget) MapToTerminal(p Point) Point {
	for n := w; n != nil; n = n.parent {
		p.X += n.geometry.X
		p.Y += n.geometry.Y
	}
	return p
}

// MapFromTerminal converts a terminal point to local coordinates.
func (w *Widget) MapFromTerminal(p Point) Point {
	o := w.MapToTerminal(Point{})
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// --- Enabled and visible state ---

// IsEnabled reports whether w and all of its ancestors are enabled.
func (w *Widget) IsEnabled() bool {
	for n := w; n != nil; n = n.parent {
		if n.disabled {
			return false
		}
	}
	return true
}

// IsLocallyEnabled reports the widget's own enabled flag.
func (w *Widget) IsLocallyEnabled() bool {
	return !w.disabled
}

// SetEnabled enables or disables the widget.
func (w *Widget) SetEnabled(on bool) {
	if w.disabled == !on {
		return
	}
	w.disabled = !on
	w.Update()
}

// IsVisible reports the widget's own visible flag.
func (w *Widget) IsVisible() bool {
	return !w.hidden
}

// SetVisible shows or hides the widget.
func (w *Widget) SetVisible(on bool) {
	if w.hidden == !on {
		return
	}
	w.hidden = !on
	w.Update()
}

// IsVisibleTo reports whether w and every widget up to ancestor are
// visible. It returns false when ancestor is not above w.
func (w *Widget) IsVisibleTo(ancestor *Widget) bool {
	for n := w; n != nil; n = n.parent {
		if n.hidden {
			return false
		}
		if n == ancestor {
			return true
		}
	}
	return false
}

// --- Stacking ---

// StackingLayer returns the widget's layer among its siblings.
func (w *Widget) StackingLayer() int {
	return w.stackingLayer
}

// SetStackingLayer moves w to another layer. Higher layers paint last.
func (w *Widget) SetStackingLayer(layer int) {
	if w.stackingLayer == layer {
		return
	}
	w.stackingLayer = layer
	w.Update()
}

// Raise moves w to the top of its layer.
func (w *Widget) Raise() {
	if w.parent == nil {
		return
	}
	w.parent.nextStackSeq++
	w.stackSeq = w.parent.nextStackSeq
	w.Update()
}

// Lower moves w to the bottom of its layer.
func (w *Widget) Lower() {
	if w.parent == nil {
		return
	}
	lowest := w.stackSeq
	for _, c := range w.parent.children {
		lowest = min(lowest, c.stackSeq)
	}
	w.stackSeq = lowest - 1
	w.Update()
}

// StackingOrder returns the children in paint order.
func (w *Widget) StackingOrder() []*Widget {
	out := slices.Clone(w.children)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].stackingLayer != out[j].stackingLayer {
			return out[i].stackingLayer < out[j].stackingLayer
		}
		return out[i].stackSeq < out[j].stackSeq
	})
	return out
}

// --- Palette ---

// ParentNode implements palette.Node.
func (w *Widget) ParentNode() palette.Node {
	if w.parent == nil {
		return nil
	}
	return w.parent
}

// Palette returns a copy of the widget's own palette. Edit the copy and
// pass it to SetPalette to apply it.
func (w *Widget) Palette() palette.Palette {
	return w.palette.Clone()
}

// PaletteView implements palette.Node.
func (w *Widget) PaletteView() palette.View {
	return palette.ViewOf(&w.palette)
}

// SetPalette replaces the widget's own palette with a copy of p.
func (w *Widget) SetPalette(p palette.Palette) {
	w.palette = p.Clone()
	w.paletteChanged()
}

// PaletteClasses returns the widget's palette classes.
func (w *Widget) PaletteClasses() []string {
	return w.paletteClasses
}

// SetPaletteClasses replaces the palette classes.
func (w *Widget) SetPaletteClasses(classes ...string) {
	w.paletteClasses = nil
	for _, c := range classes {
		if !slices.Contains(w.paletteClasses, c) {
			w.paletteClasses = append(w.paletteClasses, c)
		}
	}
	w.paletteChanged()
}

// AddPaletteClass adds a single class.
func (w *Widget) AddPaletteClass(class string) {
	if slices.Contains(w.paletteClasses, class) {
		return
	}
	w.paletteClasses = append(w.paletteClasses, class)
	w.paletteChanged()
}

// RemovePaletteClass removes a single class.
func (w *Widget) RemovePaletteClass(class string) {
	if !slices.Contains(w.paletteClasses, class) {
		return
	}
	w.paletteClasses = slices.DeleteFunc(w.paletteClasses, func(c string) bool { return c == class })
	w.paletteChanged()
}

// HasPaletteClass reports whether class is set.
func (w *Widget) HasPaletteClass(class string) bool {
	return slices.Contains(w.paletteClasses, class)
}

// Generation changes whenever anything that affects palette resolution
// at w changes.
func (w *Widget) Generation() uint64 {
	return w.gen
}

// OnPaletteChange registers fn to run when the resolved palette of w may
// have changed. The returned func unregisters it.
func (w *Widget) OnPaletteChange(fn func()) (unregister func()) {
	if w.paletteSubs == nil {
		w.paletteSubs = make(map[int]func())
	}
	id := w.nextSub
	w.nextSub++
	w.paletteSubs[id] = fn
	return func() { delete(w.paletteSubs, id) }
}

func (w *Widget) paletteChanged() {
	w.bumpGeneration()
	w.Update()
}

func (w *Widget) bumpGeneration() {
	w.gen++
	ids := make([]int, 0, len(w.paletteSubs))
	for id := range w.paletteSubs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := w.paletteSubs[id]; ok {
			fn()
		}
	}
	for _, c := range w.children {
		c.bumpGeneration()
	}
}

// Color resolves a color key for w.
func (w *Widget) Color(key string) backend.Color {
	sym := symbol.Intern(key)
	if t := w.Terminal(); t != nil && t.memo != nil {
		return t.memo.Color(w, sym)
	}
	return palette.ResolveColor(w, sym)
}

// Attributes resolves an attribute key for w.
func (w *Widget) Attributes(key string) backend.AttrMask {
	sym := symbol.Intern(key)
	if t := w.Terminal(); t != nil && t.memo != nil {
		return t.memo.Attributes(w, sym)
	}
	return palette.ResolveAttributes(w, sym)
}

// --- Focus ---

// FocusPolicy returns the focus policy.
func (w *Widget) FocusPolicy() FocusPolicy {
	return w.focusPolicy
}

// SetFocusPolicy sets the focus policy.
func (w *Widget) SetFocusPolicy(p FocusPolicy) {
	w.focusPolicy = p
}

// FocusMode returns the focus container mode.
func (w *Widget) FocusMode() FocusContainerMode {
	return w.focusMode
}

// SetFocusMode sets the focus container mode.
func (w *Widget) SetFocusMode(m FocusContainerMode) {
	w.focusMode = m
}

// SetFocus moves keyboard focus to w.
func (w *Widget) SetFocus() {
	if t := w.Terminal(); t != nil {
		t.SetFocus(w)
	}
}

// HasFocus reports whether w is the focus widget.
func (w *Widget) HasFocus() bool {
	t := w.Terminal()
	return t != nil && t.focus == w
}

// IsInFocusPath reports whether w or one of its descendants has focus.
func (w *Widget) IsInFocusPath() bool {
	t := w.Terminal()
	if t == nil || t.focus == nil {
		return false
	}
	return t.focus == w || w.IsAncestorOf(t.focus)
}

func (w *Widget) acceptsTabFocus() bool {
	return w.focusPolicy != NoFocus && w.IsEnabled() && !w.hidden
}

// PlaceFocus returns the first (or with last the last) widget in the
// subtree of w, w included, that accepts tab focus.
func (w *Widget) PlaceFocus(last bool) *Widget {
	var found *Widget
	w.walkVisible(func(n *Widget) bool {
		if n.acceptsTabFocus() {
			found = n
			return !last
		}
		return false
	})
	return found
}

// walkVisible visits the visible subtree of w in pre-order until fn
// returns true.
func (w *Widget) walkVisible(fn func(*Widget) bool) bool {
	if w.hidden {
		return false
	}
	if fn(w) {
		return true
	}
	for _, c := range w.children {
		if c.walkVisible(fn) {
			return true
		}
	}
	return false
}

// focusScope is the nearest ancestor that cycles focus, or the tree root.
func (w *Widget) focusScope() *Widget {
	n := w.parent
	if n == nil {
		return w
	}
	for ; n.parent != nil; n = n.parent {
		if n.focusMode == FocusContainerCycle {
			return n
		}
	}
	return n
}

func (w *Widget) tabOrder() []*Widget {
	var order []*Widget
	w.focusScope().walkVisible(func(n *Widget) bool {
		if n == w || n.acceptsTabFocus() {
			order = append(order, n)
		}
		return false
	})
	return order
}

// NextFocusable returns the widget after w in tab order, wrapping
// around inside the enclosing focus cycle. It returns w when nothing else
// accepts focus.
func (w *Widget) NextFocusable() *Widget {
	order := w.tabOrder()
	i := slices.Index(order, w)
	if i < 0 || len(order) == 0 {
		return w
	}
	return order[(i+1)%len(order)]
}

// PrevFocusable is NextFocusable in reverse.
func (w *Widget) PrevFocusable() *Widget {
	order := w.tabOrder()
	i := slices.Index(order, w)
	if i < 0 || len(order) == 0 {
		return w
	}
	return order[(i-1+len(order))%len(order)]
}

// GrabKeyboard routes all key and paste events to w.
func (w *Widget) GrabKeyboard() {
	if t := w.Terminal(); t != nil {
		t.GrabKeyboard(w)
	}
}

// GrabKeyboardFunc routes all key and paste events to handler while w
// holds the grab.
func (w *Widget) GrabKeyboardFunc(handler func(Event) bool) {
	if t := w.Terminal(); t != nil {
		t.GrabKeyboardFunc(w, handler)
	}
}

// ReleaseKeyboard drops the grab if w holds it.
func (w *Widget) ReleaseKeyboard() {
	if t := w.Terminal(); t != nil {
		t.ReleaseKeyboard(w)
	}
}

// --- Cursor ---

// CursorStyle returns the cursor shape shown while w has focus.
func (w *Widget) CursorStyle() backend.CursorStyle {
	return w.cursorStyle
}

// SetCursorStyle sets the cursor shape shown while w has focus.
func (w *Widget) SetCursorStyle(s backend.CursorStyle) {
	w.cursorStyle = s
	w.Update()
}

// CursorColor returns the cursor color, ColorDefault when unset.
func (w *Widget) CursorColor() backend.Color {
	return w.cursorColor
}

// SetCursorColor sets the cursor color shown while w has focus.
func (w *Widget) SetCursorColor(c backend.Color) {
	w.cursorColor = c
	w.Update()
}

// ResetCursorColor reverts to the terminal's cursor color.
func (w *Widget) ResetCursorColor() {
	w.SetCursorColor(backend.ColorDefault)
}

// ShowCursor places the terminal cursor at a local position. Only
// meaningful while painting.
func (w *Widget) ShowCursor(p Point) {
	if t := w.Terminal(); t != nil {
		t.cursor = w.MapToTerminal(p)
	}
}

// --- Facets ---

// SetFacet attaches a facet implementation.
func (w *Widget) SetFacet(tag FacetTag, impl any) {
	if w.facets == nil {
		w.facets = make(map[FacetTag]any)
	}
	w.facets[tag] = impl
}

// Facet returns the facet w itself provides, or nil.
func (w *Widget) Facet(tag FacetTag) any {
	return w.facets[tag]
}

// FindFacet returns the facet of w or of the nearest ancestor providing it.
func (w *Widget) FindFacet(tag FacetTag) any {
	for n := w; n != nil; n = n.parent {
		if f, ok := n.facets[tag]; ok {
			return f
		}
	}
	return nil
}
