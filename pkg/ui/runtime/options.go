package runtime

import (
	"io"

	"github.com/odvcencio/tuikit/pkg/logging"
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

// Options configures a Terminal.
type Options struct {
	// AllowInterrupt, AllowQuit and AllowSuspend let Ctrl-C, Ctrl-\ and
	// Ctrl-Z raise their signals instead of arriving as key events. With
	// none of them set the backend keeps all three signals enabled.
	AllowInterrupt bool
	AllowQuit      bool
	AllowSuspend   bool

	DisableAlternativeScreen bool
	DisableTaggedPaste       bool

	// ForceIncompatibleTerminals runs even when detection fails.
	ForceIncompatibleTerminals bool

	// ScrollKey toggles the viewport scroll mode. Defaults to F6.
	ScrollKey terminal.Atom

	Title     string
	IconTitle string

	// PaletteCache memoizes palette resolution per widget generation.
	PaletteCache bool
	// MemoLimit bounds the palette cache, 0 selects a default.
	MemoLimit int

	Logger *logging.Logger

	// Diagnostics receives the message printed when detection fails and
	// no incompatibility listener is registered. Defaults to os.Stderr.
	Diagnostics io.Writer

	// Shortcuts replaces the default ShortcutMap.
	Shortcuts ShortcutManager
}

func (o Options) keyboardSignals() bool {
	return !o.AllowInterrupt && !o.AllowQuit && !o.AllowSuspend
}
