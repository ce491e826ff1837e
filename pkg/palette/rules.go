package palette

// Widget roles that every window skin provides. Each role expands into
// .bg, .fg and .attrs aliases onto the skin's keys.
var skinRoles = []string{
	"text", "text.selected",

	"control", "control.focused", "control.disabled", "control.shortcut",

	"dataview", "dataview.selected", "dataview.selected.focused",
	"dataview.disabled", "dataview.disabled.selected",

	"button", "button.default", "button.focused", "button.disabled", "button.shortcut",

	"lineedit", "lineedit.focused", "lineedit.disabled",

	"textedit", "textedit.focused", "textedit.disabled", "textedit.selected",
	"textedit.linenumber", "textedit.focused.linenumber",
}

var roleParts = []string{"bg", "fg", "attrs"}

// windowSkinRule publishes the keys of a window skin, e.g. "window.gray",
// under the generic names widgets paint with.
func windowSkinRule(classes []string, skin string, scrollbarFromControl bool) RuleDef {
	cmds := []RuleCmd{
		PublishCmd("bg", "window.bg"),
		PublishCmd("attrs", "window.attrs"),

		PublishCmd("window.bg", skin+".bg"),
		PublishCmd("window.attrs", skin+".attrs"),
	}
	for _, frame := range []string{"frame.focused", "frame.focused.control", "frame.unfocused"} {
		cmds = append(cmds,
			PublishCmd("window."+frame+".bg", "window.bg"),
			PublishCmd("window."+frame+".fg", skin+"."+frame+".fg"),
			PublishCmd("window."+frame+".attrs", "window.attrs"),
		)
	}

	// Dialog and cyan skins draw the scrollbar track in the control colors.
	scrollbarSource := skin + ".scrollbar"
	if scrollbarFromControl {
		scrollbarSource = skin + ".scrollbar.control"
	}
	for _, part := range roleParts {
		cmds = append(cmds, PublishCmd("scrollbar."+part, scrollbarSource+"."+part))
	}
	for _, part := range roleParts {
		cmds = append(cmds, PublishCmd("scrollbar.control."+part, skin+".scrollbar.control."+part))
	}

	for _, role := range skinRoles {
		for _, part := range roleParts {
			cmds = append(cmds, PublishCmd(role+"."+part, skin+"."+role+"."+part))
		}
	}
	return RuleDef{Classes: classes, Commands: cmds}
}

// SetDefaultRules appends the stock window rules: plain windows use the
// window.default skin, dialogs window.gray and cyan windows window.cyan.
func SetDefaultRules(p *Palette) {
	p.AddRules(
		windowSkinRule([]string{"window"}, "window.default", false),
		windowSkinRule([]string{"window", "dialog"}, "window.gray", true),
		windowSkinRule([]string{"window", "cyan"}, "window.cyan", true),
	)
}
