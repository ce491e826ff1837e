// Package sim provides a simulation backend for testing.
package sim

import (
	"strings"
	"sync"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/odvcencio/tuikit/pkg/ui/backend"
	"github.com/odvcencio/tuikit/pkg/ui/backend/tcell"
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

// Option configures a simulation backend.
type Option func(*Backend)

// Unsupported makes terminal detection fail.
func Unsupported() Option {
	return func(s *Backend) { s.supported = false }
}

// Backend is a testable backend using tcell's simulation screen.
// It records what the core asked of the terminal.
type Backend struct {
	*tcell.Backend
	screen tcellv2.SimulationScreen

	mu            sync.Mutex
	width, height int
	supported     bool
	titles        []string
	iconTitles    []string
	fullscreen    *backend.FullscreenConfig
	taggedPaste   bool
	quirksApplied bool
	suspended     bool
	shows, syncs  int
	signals       []tcell.Signal
}

// New creates a new simulation backend with the given dimensions.
func New(width, height int, opts ...Option) *Backend {
	screen := tcellv2.NewSimulationScreen("")
	s := &Backend{
		screen:    screen,
		width:     width,
		height:    height,
		supported: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Backend = tcell.NewWithScreen(screen,
		tcell.WithDetector(func() bool { return s.supported }),
		tcell.WithSignalHandler(s.recordSignal),
	)
	return s
}

// Init initializes the simulation screen at the configured size.
func (s *Backend) Init() error {
	if err := s.Backend.Init(); err != nil {
		return err
	}
	s.screen.SetSize(s.width, s.height)
	return nil
}

// Show records and performs a diff flush.
func (s *Backend) Show() {
	s.mu.Lock()
	s.shows++
	s.mu.Unlock()
	s.Backend.Show()
}

// Sync records and performs a full flush.
func (s *Backend) Sync() {
	s.mu.Lock()
	s.syncs++
	s.mu.Unlock()
	s.Backend.Sync()
}

// Flushes returns how many diff and full flushes happened.
func (s *Backend) Flushes() (shows, syncs int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shows, s.syncs
}

// SetTitle records the title.
func (s *Backend) SetTitle(title string) {
	s.mu.Lock()
	s.titles = append(s.titles, title)
	s.mu.Unlock()
	s.Backend.SetTitle(title)
}

// SetIconTitle records the icon title.
func (s *Backend) SetIconTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.iconTitles = append(s.iconTitles, title)
}

// Titles returns every title set so far.
func (s *Backend) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.titles...)
}

// IconTitles returns every icon title set so far.
func (s *Backend) IconTitles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.iconTitles...)
}

// ApplyInputQuirks records the call.
func (s *Backend) ApplyInputQuirks() {
	s.mu.Lock()
	s.quirksApplied = true
	s.mu.Unlock()
	s.Backend.ApplyInputQuirks()
}

// QuirksApplied reports whether ApplyInputQuirks ran.
func (s *Backend) QuirksApplied() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quirksApplied
}

// SetupFullscreen records cfg.
func (s *Backend) SetupFullscreen(cfg backend.FullscreenConfig) error {
	s.mu.Lock()
	s.fullscreen = &cfg
	s.mu.Unlock()
	return s.Backend.SetupFullscreen(cfg)
}

// Fullscreen returns the applied fullscreen config, if any.
func (s *Backend) Fullscreen() (backend.FullscreenConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fullscreen == nil {
		return backend.FullscreenConfig{}, false
	}
	return *s.fullscreen, true
}

// EnableTaggedPaste records the paste mode.
func (s *Backend) EnableTaggedPaste(on bool) {
	s.mu.Lock()
	s.taggedPaste = on
	s.mu.Unlock()
	s.Backend.EnableTaggedPaste(on)
}

// TaggedPaste reports whether bracketed paste is on.
func (s *Backend) TaggedPaste() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taggedPaste
}

// Suspend records the pause.
func (s *Backend) Suspend() error {
	s.mu.Lock()
	s.suspended = true
	s.mu.Unlock()
	return s.Backend.Suspend()
}

// Resume records the unpause.
func (s *Backend) Resume() error {
	s.mu.Lock()
	s.suspended = false
	s.mu.Unlock()
	return s.Backend.Resume()
}

// Suspended reports whether the terminal is handed back to the shell.
func (s *Backend) Suspended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suspended
}

func (s *Backend) recordSignal(sig tcell.Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signals = append(s.signals, sig)
}

// Signals returns keyboard signals raised so far.
func (s *Backend) Signals() []tcell.Signal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]tcell.Signal(nil), s.signals...)
}

// Resize changes the simulation screen size without an event.
func (s *Backend) Resize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
	s.screen.SetSize(width, height)
}

// InjectResize changes the size and queues a resize event.
func (s *Backend) InjectResize(width, height int) {
	s.Resize(width, height)
	_ = s.PostEvent(terminal.ResizeEvent{Width: width, Height: height})
}

// InjectKey queues a named key press.
func (s *Backend) InjectKey(atom terminal.Atom, mods terminal.ModMask) {
	_ = s.PostEvent(terminal.KeyEvent{Atom: atom, Mods: mods})
}

// InjectText queues one char event per rune.
func (s *Backend) InjectText(text string, mods terminal.ModMask) {
	for _, r := range text {
		_ = s.PostEvent(terminal.CharEvent{Text: string(r), Mods: mods})
	}
}

// InjectPaste queues a bracketed paste split into the given chunks.
func (s *Backend) InjectPaste(chunks ...string) {
	if len(chunks) == 0 {
		chunks = []string{""}
	}
	for i, c := range chunks {
		_ = s.PostEvent(terminal.PasteEvent{
			Text:    c,
			Initial: i == 0,
			Final:   i == len(chunks)-1,
		})
	}
}

// InjectTcellKey queues a raw tcell key so it runs through translation.
func (s *Backend) InjectTcellKey(key tcellv2.Key, r rune, mod tcellv2.ModMask) {
	s.screen.InjectKey(key, r, mod)
}

// Cursor returns the cursor position and visibility.
func (s *Backend) Cursor() (x, y int, visible bool) {
	return s.screen.GetCursor()
}

// Capture captures the current screen content as a string.
func (s *Backend) Capture() string {
	w, h := s.screen.Size()
	return s.CaptureRegion(0, 0, w, h)
}

// CaptureCell returns the content and style of a single cell.
func (s *Backend) CaptureCell(x, y int) (mainc rune, comb []rune, style backend.Style) {
	m, c, tcStyle, _ := s.screen.GetContent(x, y)
	return m, c, tcell.ConvertTcellStyle(tcStyle)
}

// CaptureRegion captures a rectangular region of the screen.
func (s *Backend) CaptureRegion(x, y, w, h int) string {
	var lines []string
	for row := y; row < y+h; row++ {
		var line strings.Builder
		for col := x; col < x+w; col++ {
			mainc, comb, _, width := s.screen.GetContent(col, row)
			if mainc == 0 {
				mainc = ' '
			}
			line.WriteRune(mainc)
			for _, c := range comb {
				line.WriteRune(c)
			}
			if width == 2 {
				col++
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// FindText searches for text on the screen and returns its position.
func (s *Backend) FindText(text string) (x, y int) {
	lines := strings.Split(s.Capture(), "\n")
	for row, line := range lines {
		if col := strings.Index(line, text); col >= 0 {
			return len([]rune(line[:col])), row
		}
	}
	return -1, -1
}

// ContainsText returns true if the text appears anywhere on screen.
func (s *Backend) ContainsText(text string) bool {
	x, y := s.FindText(text)
	return x >= 0 && y >= 0
}

var _ backend.Backend = (*Backend)(nil)
