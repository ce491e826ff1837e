package sim

import (
	"strings"
	"testing"
	"time"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/odvcencio/tuikit/pkg/ui/backend"
	"github.com/odvcencio/tuikit/pkg/ui/backend/tcell"
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

func pollWithTimeout(t *testing.T, sim *Backend) terminal.Event {
	t.Helper()
	done := make(chan terminal.Event, 1)
	go func() { done <- sim.PollEvent() }()
	select {
	case ev := <-done:
		return ev
	case <-time.After(time.Second):
		t.Fatal("PollEvent blocked")
		return nil
	}
}

func initSim(t *testing.T, w, h int, opts ...Option) *Backend {
	t.Helper()
	sim := New(w, h, opts...)
	if err := sim.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(sim.Fini)
	return sim
}

func TestBackend_BasicRendering(t *testing.T) {
	sim := initSim(t, 20, 5)

	style := backend.DefaultStyle().Foreground(backend.ColorWhite)
	text := "Hello, World!"
	for i, r := range text {
		sim.SetContent(i, 0, r, nil, style)
	}
	sim.Show()

	_, h := sim.Size()
	lines := strings.Split(sim.Capture(), "\n")
	if len(lines) != h {
		t.Errorf("Expected %d lines, got %d", h, len(lines))
	}
	if !strings.HasPrefix(lines[0], "Hello, World!") {
		t.Errorf("Expected first line to start with 'Hello, World!', got %q", lines[0])
	}
}

func TestBackend_Size(t *testing.T) {
	sim := initSim(t, 80, 24)

	w, h := sim.Size()
	if w != 80 || h != 24 {
		t.Errorf("Expected 80x24, got %dx%d", w, h)
	}
}

func TestBackend_Resize(t *testing.T) {
	sim := initSim(t, 80, 24)

	sim.Resize(40, 12)

	w, h := sim.Size()
	if w != 40 || h != 12 {
		t.Errorf("Expected size 40x12 after resize, got %dx%d", w, h)
	}
}

func TestBackend_FindText(t *testing.T) {
	sim := initSim(t, 40, 10)

	style := backend.DefaultStyle()
	for i, r := range "target" {
		sim.SetContent(5+i, 3, r, nil, style)
	}
	sim.Show()

	x, y := sim.FindText("target")
	if x != 5 || y != 3 {
		t.Errorf("Expected to find 'target' at (5, 3), got (%d, %d)", x, y)
	}
	if sim.ContainsText("missing") {
		t.Error("Should not find 'missing' on screen")
	}
}

func TestBackend_CaptureRegion(t *testing.T) {
	sim := initSim(t, 20, 10)

	style := backend.DefaultStyle()
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			sim.SetContent(x, y, 'X', nil, style)
		}
	}
	sim.Show()

	region := sim.CaptureRegion(0, 0, 5, 3)
	expected := "XXXXX\nXXXXX\nXXXXX"
	if region != expected {
		t.Errorf("Expected region:\n%s\nGot:\n%s", expected, region)
	}
}

func TestBackend_Styles(t *testing.T) {
	sim := initSim(t, 20, 10)

	style := backend.DefaultStyle().
		Foreground(backend.ColorRed).
		Background(backend.ColorBlue).
		Bold(true)

	sim.SetContent(0, 0, 'S', nil, style)
	sim.Show()

	mainc, _, got := sim.CaptureCell(0, 0)
	if mainc != 'S' {
		t.Errorf("Expected 'S', got %c", mainc)
	}
	if got.Attributes()&backend.AttrBold == 0 {
		t.Error("Expected bold attribute to be set")
	}
	if got.FG() != backend.ColorRed || got.BG() != backend.ColorBlue {
		t.Errorf("Expected red on blue, got %v on %v", got.FG(), got.BG())
	}
}

func TestBackend_TrueColorRoundTrip(t *testing.T) {
	sim := initSim(t, 5, 1)

	c := backend.ColorRGB(0x12, 0x34, 0x56)
	sim.SetContent(0, 0, 'x', nil, backend.DefaultStyle().Foreground(c))
	sim.Show()

	_, _, got := sim.CaptureCell(0, 0)
	if got.FG() != c {
		t.Errorf("Expected %v, got %v", c, got.FG())
	}
}

func TestBackend_DetectionEvent(t *testing.T) {
	sim := initSim(t, 10, 5)
	ev := pollWithTimeout(t, sim)
	if got, ok := ev.(terminal.AutoDetectFinishedEvent); !ok || !got.Supported {
		t.Fatalf("Expected supported detection event, got %#v", ev)
	}

	unsupported := initSim(t, 10, 5, Unsupported())
	ev = pollWithTimeout(t, unsupported)
	if got, ok := ev.(terminal.AutoDetectFinishedEvent); !ok || got.Supported {
		t.Fatalf("Expected failed detection event, got %#v", ev)
	}
}

func TestBackend_PostedEventsRoundTrip(t *testing.T) {
	sim := initSim(t, 10, 5)
	pollWithTimeout(t, sim)

	sim.InjectKey(terminal.AtomF6, terminal.ModShift)
	sim.InjectText("ab", terminal.ModNone)
	sim.InjectPaste("AB", "CD")

	want := []terminal.Event{
		terminal.KeyEvent{Atom: terminal.AtomF6, Mods: terminal.ModShift},
		terminal.CharEvent{Text: "a"},
		terminal.CharEvent{Text: "b"},
		terminal.PasteEvent{Text: "AB", Initial: true},
		terminal.PasteEvent{Text: "CD", Final: true},
	}
	for i, w := range want {
		if got := pollWithTimeout(t, sim); got != w {
			t.Errorf("event %d: expected %#v, got %#v", i, w, got)
		}
	}
}

func TestBackend_TcellKeyTranslation(t *testing.T) {
	sim := initSim(t, 10, 5)
	pollWithTimeout(t, sim)

	sim.InjectTcellKey(tcellv2.KeyRune, 'x', tcellv2.ModNone)
	sim.InjectTcellKey(tcellv2.KeyF6, 0, tcellv2.ModNone)
	sim.InjectTcellKey(tcellv2.KeyRune, ' ', tcellv2.ModNone)

	if got := pollWithTimeout(t, sim); got != (terminal.CharEvent{Text: "x"}) {
		t.Errorf("Expected char x, got %#v", got)
	}
	if got := pollWithTimeout(t, sim); got != (terminal.KeyEvent{Atom: terminal.AtomF6}) {
		t.Errorf("Expected f6, got %#v", got)
	}
	if got := pollWithTimeout(t, sim); got != (terminal.KeyEvent{Atom: terminal.AtomSpace}) {
		t.Errorf("Expected space, got %#v", got)
	}
}

func TestBackend_KeyboardSignals(t *testing.T) {
	sim := initSim(t, 10, 5)
	pollWithTimeout(t, sim)

	if err := sim.SetupFullscreen(backend.FullscreenConfig{AlternateScreen: true, AllowInterrupt: true}); err != nil {
		t.Fatalf("SetupFullscreen failed: %v", err)
	}
	sim.InjectTcellKey(tcellv2.KeyCtrlC, 'c', tcellv2.ModCtrl)
	sim.InjectTcellKey(tcellv2.KeyCtrlZ, 'z', tcellv2.ModCtrl)
	sim.InjectText("q", terminal.ModNone)

	// ctrl+c raises a signal, ctrl+z arrives as a key
	ev := pollWithTimeout(t, sim)
	if ev != (terminal.CharEvent{Text: "z", Mods: terminal.ModCtrl}) {
		t.Errorf("Expected ctrl+z char event, got %#v", ev)
	}
	if got := sim.Signals(); len(got) != 1 || got[0] != tcell.SignalInterrupt {
		t.Errorf("Expected one interrupt signal, got %v", got)
	}
}

func TestBackend_Recording(t *testing.T) {
	sim := initSim(t, 10, 5)

	sim.SetTitle("main")
	sim.SetIconTitle("icon")
	sim.EnableTaggedPaste(true)
	sim.ApplyInputQuirks()
	sim.Show()
	sim.Sync()

	if got := sim.Titles(); len(got) != 1 || got[0] != "main" {
		t.Errorf("Titles = %v", got)
	}
	if got := sim.IconTitles(); len(got) != 1 || got[0] != "icon" {
		t.Errorf("IconTitles = %v", got)
	}
	if !sim.TaggedPaste() || !sim.QuirksApplied() {
		t.Error("Expected tagged paste and input quirks to be recorded")
	}
	if shows, syncs := sim.Flushes(); shows != 1 || syncs != 1 {
		t.Errorf("Flushes = %d, %d", shows, syncs)
	}
	if err := sim.Suspend(); err != nil || !sim.Suspended() {
		t.Errorf("Suspend: err=%v suspended=%v", err, sim.Suspended())
	}
	if err := sim.Resume(); err != nil || sim.Suspended() {
		t.Errorf("Resume: err=%v suspended=%v", err, sim.Suspended())
	}
}

func TestBackend_Capabilities(t *testing.T) {
	sim := initSim(t, 10, 5)
	if !sim.HasCapability(backend.CapExtendedCharset) {
		t.Error("UTF-8 simulation screen should display box drawing characters")
	}
	if sim.HasCapability("nonsense") {
		t.Error("Unknown capabilities must be reported as missing")
	}
}
