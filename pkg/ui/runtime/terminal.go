package runtime

import (
	"os"
	"strings"
	"sync"
	"sync/atomic"

	tkerrors "github.com/odvcencio/tuikit/pkg/errors"
	"github.com/odvcencio/tuikit/pkg/logging"
	"github.com/odvcencio/tuikit/pkg/palette"
	"github.com/odvcencio/tuikit/pkg/ui/backend"
)

// InitState tracks terminal setup.
type InitState int

const (
	// InInitWithoutPendingPaintRequest waits for detection, nothing painted yet.
	InInitWithoutPendingPaintRequest InitState = iota
	// InInitWithPendingPaintRequest waits for detection with output pending.
	InInitWithPendingPaintRequest
	Ready
	Paused
)

func (s InitState) String() string {
	switch s {
	case InInitWithoutPendingPaintRequest:
		return "init"
	case InInitWithPendingPaintRequest:
		return "init_pending_paint"
	case Ready:
		return "ready"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

const autoDetectFailedMessage = "Terminal auto detection failed. If this repeats the terminal might be incompatible.\r\n"

// ErrIncompatibleTerminal is returned by Run when terminal detection failed
// and nobody registered an incompatibility listener.
var ErrIncompatibleTerminal = tkerrors.New(tkerrors.ErrCodeTerminalIncompatible, "terminal auto detection failed").
	WithRemediation("set terminal.force_incompatible_terminals to run anyway")

// Terminal owns the surface, the widget tree and the event loop.
// Apart from Post, PostLow, PostEvent and Quit every method must be called
// from the loop goroutine.
type Terminal struct {
	be   backend.Backend
	opts Options
	log  *logging.Logger

	surface       *Surface
	state         InitState
	initialized   bool
	backendActive bool

	main        *Widget
	focus       *Widget
	history     focusHistory
	grabWidget  *Widget
	grabHandler func(Event) bool
	shortcuts   ShortcutManager
	memo        *palette.Memo

	scrollKey Key
	vp        viewport
	vpImage   *Buffer
	cursor    Point

	title, iconTitle     string
	titleNeedsUpdate     bool
	iconTitleNeedsUpdate bool

	updateRequested bool
	paste           strings.Builder

	afterRendering map[int]func()
	nextListener   int
	incompatible   func()

	// loop state
	mu       sync.Mutex
	tasks    []func()
	lowTasks []func()
	wake     chan struct{}
	quitting atomic.Bool
	loopErr  error
}

// New creates a terminal on be. Call Init (or Run) before painting.
func New(be backend.Backend, opts Options) *Terminal {
	if opts.Diagnostics == nil {
		opts.Diagnostics = os.Stderr
	}
	t := &Terminal{
		be:        be,
		opts:      opts,
		log:       opts.Logger,
		shortcuts: opts.Shortcuts,
		scrollKey: KeyF6,
		wake:      make(chan struct{}, 1),
	}
	if t.shortcuts == nil {
		t.shortcuts = NewShortcutMap()
	}
	if k, ok := atomKeys[opts.ScrollKey]; ok {
		t.scrollKey = k
	}
	if opts.PaletteCache {
		t.memo = palette.NewMemo(opts.MemoLimit)
	}
	if opts.Title != "" {
		t.title, t.titleNeedsUpdate = opts.Title, true
	}
	if opts.IconTitle != "" {
		t.iconTitle, t.iconTitleNeedsUpdate = opts.IconTitle, true
	}
	return t
}

// Init starts the backend. Detection completes later with an
// AutoDetectFinishedEvent; until then output is held back.
func (t *Terminal) Init() error {
	if t.initialized {
		return nil
	}
	if err := t.be.Init(); err != nil {
		return tkerrors.Wrap(err, tkerrors.ErrCodeTerminalInit, "failed to initialize terminal backend")
	}
	t.initialized = true
	t.backendActive = true
	t.surface = NewSurface(t.be)
	t.log.Info(logging.CategoryTerminal, "terminal_init", "", map[string]any{
		"width":  t.surface.Width(),
		"height": t.surface.Height(),
	})
	return nil
}

// deinit releases the backend once.
func (t *Terminal) deinit() {
	if !t.backendActive {
		return
	}
	t.backendActive = false
	t.be.Fini()
	t.log.Info(logging.CategoryTerminal, "terminal_fini", "", nil)
}

// Backend returns the backend the terminal drives.
func (t *Terminal) Backend() backend.Backend {
	return t.be
}

// InitState returns the setup state.
func (t *Terminal) InitState() InitState {
	return t.state
}

// IsPaused reports whether output is suspended.
func (t *Terminal) IsPaused() bool {
	return t.state == Paused
}

func (t *Terminal) setState(s InitState) {
	if t.state == s {
		return
	}
	t.log.Info(logging.CategoryTerminal, "state_changed", "", map[string]any{
		"from": t.state.String(),
		"to":   s.String(),
	})
	t.state = s
}

// Surface returns the terminal surface, nil before Init.
func (t *Terminal) Surface() *Surface {
	return t.surface
}

// Size returns the terminal dimensions.
func (t *Terminal) Size() Size {
	if t.surface == nil {
		return Size{}
	}
	return t.surface.Size()
}

// MainWidget returns the root of the painted tree.
func (t *Terminal) MainWidget() *Widget {
	return t.main
}

// SetMainWidget attaches w as the root of the painted tree.
func (t *Terminal) SetMainWidget(w *Widget) {
	if old := t.main; old != nil && old != w {
		t.forgetSubtree(old)
		old.term = nil
		old.bumpGeneration()
	}
	t.main = w
	if w == nil {
		return
	}
	w.SetParent(nil)
	w.term = t
	w.bumpGeneration()
	if t.memo != nil {
		t.memo.Reset()
	}
	size := w.EffectiveMinimumSize().Expanded(t.Size())
	w.SetGeometry(RectFromSize(size))
	t.Update()
}

// Shortcuts returns the shortcut manager consulted before the focus chain.
func (t *Terminal) Shortcuts() ShortcutManager {
	return t.shortcuts
}

// ShortcutMap returns the default shortcut map, or nil when Options
// supplied another manager.
func (t *Terminal) ShortcutMap() *ShortcutMap {
	sm, _ := t.shortcuts.(*ShortcutMap)
	return sm
}

// HasCapability reports a backend capability such as
// backend.CapExtendedCharset.
func (t *Terminal) HasCapability(name string) bool {
	return t.be.HasCapability(name)
}

// Beep rings the terminal bell.
func (t *Terminal) Beep() {
	t.be.Beep()
}

// Title returns the window title.
func (t *Terminal) Title() string {
	return t.title
}

// SetTitle changes the window title. It is sent with the next flush.
func (t *Terminal) SetTitle(title string) {
	if t.title == title && !t.titleNeedsUpdate {
		return
	}
	t.title = title
	t.titleNeedsUpdate = true
	t.Update()
}

// IconTitle returns the icon title.
func (t *Terminal) IconTitle() string {
	return t.iconTitle
}

// SetIconTitle changes the icon title. It is sent with the next flush.
func (t *Terminal) SetIconTitle(title string) {
	if t.iconTitle == title && !t.iconTitleNeedsUpdate {
		return
	}
	t.iconTitle = title
	t.iconTitleNeedsUpdate = true
	t.Update()
}

func (t *Terminal) updateNativeTerminalState() {
	if t.titleNeedsUpdate {
		t.be.SetTitle(t.title)
		t.titleNeedsUpdate = false
	}
	if t.iconTitleNeedsUpdate {
		t.be.SetIconTitle(t.iconTitle)
		t.iconTitleNeedsUpdate = false
	}
}

// OnAfterRendering registers fn to run after every paint pass, before the
// surface is flushed.
func (t *Terminal) OnAfterRendering(fn func()) (unregister func()) {
	if t.afterRendering == nil {
		t.afterRendering = make(map[int]func())
	}
	id := t.nextListener
	t.nextListener++
	t.afterRendering[id] = fn
	return func() { delete(t.afterRendering, id) }
}

// OnIncompatibleTerminal registers the listener told about failed
// detection. With a listener registered Run keeps going after the backend
// has been released.
func (t *Terminal) OnIncompatibleTerminal(fn func()) {
	t.incompatible = fn
}

// GrabKeyboard sends all key and paste events to w.
func (t *Terminal) GrabKeyboard(w *Widget) {
	t.GrabKeyboardFunc(w, nil)
}

// GrabKeyboardFunc sends all key and paste events to handler while w
// holds the grab. A nil handler delivers to w's behavior.
func (t *Terminal) GrabKeyboardFunc(w *Widget, handler func(Event) bool) {
	if w == nil || w.Terminal() != t {
		return
	}
	t.grabWidget = w
	t.grabHandler = handler
}

// ReleaseKeyboard drops the grab if w holds it.
func (t *Terminal) ReleaseKeyboard(w *Widget) {
	if t.grabWidget != w {
		return
	}
	t.grabWidget = nil
	t.grabHandler = nil
}

// KeyboardGrabber returns the widget holding the keyboard grab.
func (t *Terminal) KeyboardGrabber() *Widget {
	return t.grabWidget
}

// ApplyPalette replaces the main widget's palette.
func (t *Terminal) ApplyPalette(p palette.Palette) {
	if t.main == nil {
		return
	}
	t.main.SetPalette(p)
	if t.memo != nil {
		t.memo.Reset()
	}
	metricPaletteReloads.Inc()
	t.log.Info(logging.CategoryPalette, "palette_applied", "", map[string]any{
		"colors": len(p.ColorKeys()),
		"rules":  len(p.Rules()),
	})
}

// PostPalette schedules ApplyPalette on the loop goroutine. Safe to call
// from any goroutine.
func (t *Terminal) PostPalette(p palette.Palette) {
	t.Post(func() { t.ApplyPalette(p) })
}

// scrollHint is shown on the last row while the viewport is active.
func (t *Terminal) scrollHint() string {
	if t.vp.scrollUI {
		return "←↑→↓ ESC"
	}
	return strings.ToUpper(t.scrollKey.String()) + " Scroll"
}

