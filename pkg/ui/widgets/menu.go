package widgets

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/tuikit/pkg/ui/backend"
	"github.com/odvcencio/tuikit/pkg/ui/runtime"
)

// MenuStackingLayer keeps popup menus above windows.
const MenuStackingLayer = 20000

// MenuItem is one entry of a Menu. An item without text is a separator.
type MenuItem struct {
	Text string
	// Shortcut is display text shown right aligned, e.g. "Ctrl+Q".
	Shortcut string
	// Mnemonic activates the item when typed while the menu is open. The
	// first matching letter of Text is highlighted.
	Mnemonic rune
	Disabled bool
	Action   func()
}

func (it MenuItem) separator() bool { return it.Text == "" }

func (it MenuItem) enabled() bool { return !it.separator() && !it.Disabled && it.Action != nil }

// Menu is a popup list of items. While open it holds the keyboard grab.
type Menu struct {
	runtime.BaseBehavior
	w *runtime.Widget

	items         []MenuItem
	selected      int
	textWidth     int
	shortcutWidth int

	onHide []func()
}

// NewMenu creates a hidden menu below parent, usually the root.
func NewMenu(parent *runtime.Widget) *Menu {
	m := &Menu{}
	m.w = runtime.NewWidget(parent, m)
	m.w.SetStackingLayer(MenuStackingLayer)
	m.w.SetVisible(false)
	return m
}

func (m *Menu) Widget() *runtime.Widget {
	return m.w
}

// Items returns the menu entries.
func (m *Menu) Items() []MenuItem {
	return m.items
}

// SetItems replaces the entries and selects the first selectable one.
func (m *Menu) SetItems(items []MenuItem) {
	m.items = items
	m.selected = 0
	for i, it := range items {
		if !it.separator() {
			m.selected = i
			break
		}
	}
	m.textWidth, m.shortcutWidth = 0, 0
	for _, it := range items {
		if !it.separator() {
			m.textWidth = max(m.textWidth, runewidth.StringWidth(it.Text)+2)
		}
		m.shortcutWidth = max(m.shortcutWidth, runewidth.StringWidth(it.Shortcut))
	}
	m.w.Update()
}

// Selected returns the index of the highlighted item.
func (m *Menu) Selected() int {
	return m.selected
}

// OnHide registers fn to run whenever the menu closes.
func (m *Menu) OnHide(fn func()) {
	m.onHide = append(m.onHide, fn)
}

// Popup opens the menu with its top left corner at p, moved left as far
// as needed to stay inside the parent, and grabs the keyboard.
func (m *Menu) Popup(p runtime.Point) {
	size := m.SizeHint(m.w)
	x := p.X
	if parent := m.w.Parent(); parent != nil {
		x = min(x, parent.Geometry().Width-size.Width)
	}
	x = max(0, x)
	m.w.SetGeometry(runtime.NewRect(x, p.Y, size.Width, size.Height))
	m.w.SetVisible(true)
	m.w.GrabKeyboard()
}

// Close hides the menu and releases the keyboard.
func (m *Menu) Close() {
	m.w.ReleaseKeyboard()
	m.w.SetVisible(false)
	for _, fn := range m.onHide {
		fn()
	}
}

func (m *Menu) SizeHint(*runtime.Widget) runtime.Size {
	width := m.textWidth
	if m.shortcutWidth > 0 {
		width += 1 + m.shortcutWidth
	}
	width = max(width+4, 20)
	return runtime.Size{Width: width, Height: 2 + len(m.items)}
}

func (m *Menu) MinimumSizeHint(w *runtime.Widget) runtime.Size {
	return m.SizeHint(w)
}

func (m *Menu) activate(i int) {
	it := m.items[i]
	if !it.enabled() {
		return
	}
	m.Close()
	it.Action()
}

func (m *Menu) move(step int) {
	n := len(m.items)
	next := m.selected
	for range n {
		next = (next + step + n) % n
		if !m.items[next].separator() {
			m.selected = next
			break
		}
	}
	m.w.Update()
}

func (m *Menu) HandleKey(w *runtime.Widget, ev *runtime.KeyEvent) bool {
	if ev.Modifiers&^runtime.ShiftModifier != 0 || ev.Modifiers != 0 && ev.Key != runtime.KeyUnknown {
		return false
	}
	switch ev.Key {
	case runtime.KeyUp:
		m.move(-1)
		return true
	case runtime.KeyDown:
		m.move(1)
		return true
	case runtime.KeyEnter:
		if m.selected < len(m.items) {
			m.activate(m.selected)
		}
		return true
	case runtime.KeyEscape, runtime.KeyF10:
		m.Close()
		return true
	case runtime.KeyUnknown:
		if ev.Text == "" {
			return false
		}
		for i, it := range m.items {
			if it.enabled() && it.Mnemonic != 0 && strings.EqualFold(string(it.Mnemonic), ev.Text) {
				m.activate(i)
				return true
			}
		}
		return true
	}
	return false
}

type menuStyle struct {
	fg, bg backend.Color
	attrs  backend.AttrMask
}

func (m *Menu) style(w *runtime.Widget, role string, swap bool, extra backend.AttrMask) menuStyle {
	s := menuStyle{
		fg:    w.Color(role + ".fg"),
		bg:    w.Color(role + ".bg"),
		attrs: w.Attributes(role+".attrs") | extra,
	}
	if swap {
		s.fg, s.bg = s.bg, s.fg
	}
	return s
}

func (m *Menu) Paint(w *runtime.Widget, p *runtime.Painter) {
	base := m.style(w, "menu", false, 0)
	p.Clear(base.fg, base.bg)

	width, height := p.Width(), p.Height()
	if width < 4 || height < 2 {
		return
	}
	write := func(x, y int, s string, st menuStyle) {
		p.WriteWithAttributes(x, y, s, st.fg, st.bg, st.attrs)
	}
	hline := strings.Repeat("─", width-4)
	write(1, 0, "┌"+hline+"┐", base)
	write(1, height-1, "└"+hline+"┘", base)
	for y := 1; y < height-1; y++ {
		write(1, y, "│", base)
		write(width-2, y, "│", base)
	}

	for i, it := range m.items {
		y := 1 + i
		if y >= height-1 {
			break
		}
		if it.separator() {
			write(1, y, "├"+hline+"┤", base)
			continue
		}

		// The selected entry swaps its colors and adds reverse.
		var text, mnemonic menuStyle
		switch sel := i == m.selected; {
		case sel && it.enabled():
			text = m.style(w, "menu.selected", true, backend.AttrReverse)
			mnemonic = m.style(w, "menu.selected.shortcut", true, backend.AttrReverse|backend.AttrUnderline)
		case sel:
			text = m.style(w, "menu.selected.disabled", false, 0)
			mnemonic = text
		case it.enabled():
			text = base
			mnemonic = m.style(w, "menu.shortcut", false, backend.AttrUnderline)
		default:
			text = m.style(w, "menu.disabled", false, 0)
			mnemonic = text
		}

		p.ClearRect(2, y, width-4, 1, text.fg, text.bg)
		m.paintText(p, 3, y, width-6, it, text, mnemonic)
		if it.Shortcut != "" {
			write(width-3-m.shortcutWidth, y, runewidth.Truncate(it.Shortcut, m.shortcutWidth, ""), text)
		}
	}
}

// paintText writes the item text with its mnemonic letter highlighted.
func (m *Menu) paintText(p *runtime.Painter, x, y, limit int, it MenuItem, text, mnemonic menuStyle) {
	label := runewidth.Truncate(it.Text, limit, "")
	marked := it.Mnemonic != 0
	for _, r := range label {
		st := text
		if marked && unicode.ToLower(r) == unicode.ToLower(it.Mnemonic) {
			st = mnemonic
			marked = false
		}
		p.WriteWithAttributes(x, y, string(r), st.fg, st.bg, st.attrs)
		x += runewidth.RuneWidth(r)
	}
}
