package main

import (
	"github.com/odvcencio/tuikit/pkg/palette"
	"github.com/odvcencio/tuikit/pkg/ui/runtime"
	"github.com/odvcencio/tuikit/pkg/ui/widgets"
)

// demo is the widget tree the command shows: one window with a few
// buttons, a palette menu on F9 and a confirmation dialog for quitting.
type demo struct {
	term *runtime.Terminal
	root *widgets.Root
	main *widgets.Window
	hint *widgets.Label
	menu *widgets.Menu

	toggle *widgets.Button
	quit   *widgets.Button

	confirm *widgets.Dialog
	yes     *widgets.Button
	no      *widgets.Button
}

// buildDemo attaches the demo tree to term. onQuit runs when quitting is
// confirmed.
func buildDemo(term *runtime.Terminal, pal palette.Palette, onQuit func()) *demo {
	d := &demo{term: term, root: widgets.NewRoot()}
	d.root.Widget().SetPalette(pal)

	d.main = widgets.NewWindow(d.root.Widget(), "tuikit")
	d.main.Widget().SetGeometry(runtime.NewRect(2, 0, 36, 6))

	d.hint = widgets.NewLabel(d.main.Widget(), "Tab moves, F9 menu, Ctrl+Q quits")
	d.hint.Widget().SetGeometry(runtime.NewRect(2, 1, 32, 1))

	d.toggle = widgets.NewButton(d.main.Widget(), "Cyan")
	d.toggle.Widget().SetGeometry(runtime.NewRect(2, 3, 14, 1))
	d.toggle.OnClicked(d.toggleCyan)

	d.quit = widgets.NewButton(d.main.Widget(), "Quit")
	d.quit.Widget().SetGeometry(runtime.NewRect(19, 3, 14, 1))
	d.quit.OnClicked(d.askQuit)

	d.confirm = widgets.NewDialog(d.root.Widget(), "Quit?")
	d.confirm.Widget().SetGeometry(runtime.NewRect(0, 0, 24, 5))
	d.confirm.Widget().SetVisible(false)

	d.yes = widgets.NewButton(d.confirm.Widget(), "Yes")
	d.yes.Widget().SetGeometry(runtime.NewRect(2, 2, 9, 1))
	d.yes.OnClicked(onQuit)

	d.no = widgets.NewButton(d.confirm.Widget(), "No")
	d.no.Widget().SetGeometry(runtime.NewRect(13, 2, 9, 1))
	d.no.OnClicked(d.confirm.Reject)
	d.confirm.OnRejected(func() { d.quit.Widget().SetFocus() })

	d.menu = widgets.NewMenu(d.root.Widget())
	d.menu.SetItems([]widgets.MenuItem{
		{Text: "Classic", Mnemonic: 'c', Action: func() { d.usePreset("classic") }},
		{Text: "Black", Mnemonic: 'b', Action: func() { d.usePreset("black") }},
		{},
		{Text: "Quit", Shortcut: "Ctrl+Q", Mnemonic: 'q', Action: d.askQuit},
	})

	term.SetMainWidget(d.root.Widget())
	d.confirm.SetAutoPlacement(runtime.Point{})
	d.yes.SetDefault(true)
	d.toggle.Widget().SetFocus()

	if chord, err := runtime.ParseChord("ctrl_q"); err == nil {
		d.quit.SetShortcut(chord)
	}
	if chord, err := runtime.ParseChord("f9"); err == nil {
		term.ShortcutMap().Register(d.root.Widget(), chord, d.openMenu)
	}
	return d
}

func (d *demo) toggleCyan() {
	w := d.main.Widget()
	if w.HasPaletteClass("cyan") {
		w.RemovePaletteClass("cyan")
		d.toggle.SetText("Cyan")
	} else {
		w.AddPaletteClass("cyan")
		d.toggle.SetText("Blue")
	}
}

func (d *demo) askQuit() {
	d.confirm.Widget().SetVisible(true)
	d.confirm.Widget().Raise()
	d.no.Widget().SetFocus()
}

func (d *demo) openMenu() {
	d.menu.Popup(runtime.Point{X: 4, Y: 1})
}

// usePreset replaces the root palette with a built-in preset.
func (d *demo) usePreset(name string) {
	p, err := palette.Preset(name)
	if err != nil {
		return
	}
	d.term.ApplyPalette(p)
}
