package runtime

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tkerrors "github.com/odvcencio/tuikit/pkg/errors"
	"github.com/odvcencio/tuikit/pkg/palette"
	"github.com/odvcencio/tuikit/pkg/ui/backend"
	"github.com/odvcencio/tuikit/pkg/ui/backend/sim"
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

func TestInitStateMachine(t *testing.T) {
	term, be := newTerminal(t, 20, 5, Options{})
	root := NewWidget(nil, &recorder{text: "hi"})

	assert.Equal(t, InInitWithoutPendingPaintRequest, term.InitState())

	term.SetMainWidget(root)
	term.ProcessPending()
	assert.Equal(t, InInitWithPendingPaintRequest, term.InitState())
	shows, syncs := be.Flushes()
	assert.Zero(t, shows+syncs, "nothing may be flushed before detection finished")

	term.HandleNativeEvent(terminal.AutoDetectFinishedEvent{Supported: true})
	assert.Equal(t, Ready, term.InitState())
	assert.True(t, be.QuirksApplied())
	assert.True(t, be.TaggedPaste())
	cfg, ok := be.Fullscreen()
	require.True(t, ok)
	assert.True(t, cfg.AlternateScreen)
	assert.True(t, cfg.KeyboardSignals)

	// the pending paint request is replayed
	term.ProcessPending()
	shows, _ = be.Flushes()
	assert.Equal(t, 1, shows)
	assert.Equal(t, "hi", be.CaptureRegion(0, 0, 2, 1))
}

func TestAutoDetectOptions(t *testing.T) {
	term, be := newTerminal(t, 20, 5, Options{
		AllowSuspend:             true,
		DisableAlternativeScreen: true,
		DisableTaggedPaste:       true,
	})
	term.HandleNativeEvent(terminal.AutoDetectFinishedEvent{Supported: true})

	cfg, ok := be.Fullscreen()
	require.True(t, ok)
	assert.False(t, cfg.AlternateScreen)
	assert.False(t, cfg.KeyboardSignals)
	assert.True(t, cfg.AllowSuspend)
	assert.False(t, be.TaggedPaste())
}

func TestIncompatibleTerminal_DefaultQuits(t *testing.T) {
	var diag bytes.Buffer
	term, be := newTerminal(t, 20, 5, Options{Diagnostics: &diag}, sim.Unsupported())

	term.HandleNativeEvent(terminal.AutoDetectFinishedEvent{Supported: false})
	assert.Equal(t, autoDetectFailedMessage, diag.String())
	assert.NotEqual(t, Ready, term.InitState())
	_, ok := be.Fullscreen()
	assert.False(t, ok)

	term.ProcessPending()
	assert.True(t, term.quitting.Load())
	assert.False(t, term.backendActive)
	assert.True(t, errors.Is(term.loopErr, ErrIncompatibleTerminal))
	assert.True(t, tkerrors.IsCode(term.loopErr, tkerrors.ErrCodeTerminalIncompatible))
}

func TestIncompatibleTerminal_Listener(t *testing.T) {
	var diag bytes.Buffer
	term, _ := newTerminal(t, 20, 5, Options{Diagnostics: &diag}, sim.Unsupported())
	called := 0
	term.OnIncompatibleTerminal(func() { called++ })

	term.HandleNativeEvent(terminal.AutoDetectFinishedEvent{Supported: false})
	assert.Zero(t, called, "listener runs from the loop")
	term.ProcessPending()

	assert.Equal(t, 1, called)
	assert.Empty(t, diag.String())
	assert.False(t, term.backendActive)
	assert.False(t, term.quitting.Load())
}

func TestIncompatibleTerminal_Forced(t *testing.T) {
	term, _ := newTerminal(t, 20, 5, Options{ForceIncompatibleTerminals: true}, sim.Unsupported())
	called := 0
	term.OnIncompatibleTerminal(func() { called++ })

	term.HandleNativeEvent(terminal.AutoDetectFinishedEvent{Supported: false})
	assert.Equal(t, Ready, term.InitState())
	assert.Equal(t, 1, called)
	assert.True(t, term.backendActive)
}

func TestUpdateIsCoalesced(t *testing.T) {
	r := &recorder{}
	root := NewWidget(nil, r)
	term, be := newReadyTerminal(t, 20, 5, root)
	paints := r.paints
	shows, _ := be.Flushes()

	term.Update()
	root.Update()
	term.Update()
	assert.Len(t, term.lowTasks, 1)

	term.ProcessPending()
	assert.Equal(t, paints+1, r.paints)
	after, _ := be.Flushes()
	assert.Equal(t, shows+1, after)

	term.Update()
	term.ProcessPending()
	assert.Equal(t, paints+2, r.paints, "a new request after the pass schedules another")
}

func TestNormalTasksRunBeforeLow(t *testing.T) {
	term, _ := newTerminal(t, 10, 2, Options{})
	var order []string
	term.PostLow(func() { order = append(order, "low1") })
	term.Post(func() {
		order = append(order, "normal1")
		term.Post(func() { order = append(order, "normal2") })
	})
	term.ProcessPending()
	assert.Equal(t, []string{"normal1", "normal2", "low1"}, order)
}

func TestPaintClipsChildren(t *testing.T) {
	root := NewWidget(nil, nil)
	child := NewWidget(root, &recorder{text: "abcdef"})
	child.SetGeometry(NewRect(2, 1, 3, 1))
	hidden := NewWidget(root, &recorder{text: "zzz"})
	hidden.SetGeometry(NewRect(0, 3, 3, 1))
	hidden.SetVisible(false)

	_, be := newReadyTerminal(t, 10, 5, root)

	assert.Equal(t, "  abc     ", be.CaptureRegion(0, 1, 10, 1))
	assert.Equal(t, "   ", be.CaptureRegion(0, 3, 3, 1))
}

func TestPaintStackingOrder(t *testing.T) {
	root := NewWidget(nil, nil)
	low := NewWidget(root, &recorder{text: "low"})
	low.SetGeometry(NewRect(0, 0, 3, 1))
	high := NewWidget(root, &recorder{text: "top"})
	high.SetGeometry(NewRect(0, 0, 3, 1))
	term, be := newReadyTerminal(t, 10, 2, root)
	assert.Equal(t, "top", be.CaptureRegion(0, 0, 3, 1))

	low.Raise()
	term.ProcessPending()
	assert.Equal(t, "low", be.CaptureRegion(0, 0, 3, 1))

	high.SetStackingLayer(1)
	term.ProcessPending()
	assert.Equal(t, "top", be.CaptureRegion(0, 0, 3, 1))
}

func TestCursorPlacement(t *testing.T) {
	rr := &recorder{}
	root := NewWidget(nil, nil)
	child := NewWidget(root, rr)
	child.SetGeometry(NewRect(3, 1, 5, 2))
	child.SetCursorStyle(backend.CursorBar)
	term, be := newReadyTerminal(t, 20, 5, root)

	_, _, visible := be.Cursor()
	assert.False(t, visible, "cursor stays hidden until a widget places it")

	rr.cursor = &Point{X: 1, Y: 1}
	child.SetFocus()
	term.ProcessPending()
	x, y, visible := be.Cursor()
	assert.True(t, visible)
	assert.Equal(t, 4, x)
	assert.Equal(t, 2, y)

	rr.cursor = nil
	term.ForceRepaint()
	_, _, visible = be.Cursor()
	assert.False(t, visible)
}

func TestResizeForcesFullRepaint(t *testing.T) {
	root := NewWidget(nil, nil)
	term, be := newReadyTerminal(t, 20, 5, root)
	_, syncs := be.Flushes()

	be.Resize(30, 8)
	term.HandleNativeEvent(terminal.ResizeEvent{Width: 30, Height: 8})

	assert.Equal(t, NewRect(0, 0, 30, 8), root.Geometry())
	assert.Equal(t, Size{Width: 30, Height: 8}, term.Size())
	_, after := be.Flushes()
	assert.Equal(t, syncs+1, after)
}

func TestTitlesAreFlushedOnce(t *testing.T) {
	root := NewWidget(nil, nil)
	term, be := newTerminal(t, 20, 5, Options{Title: "first", IconTitle: "icon"})
	term.SetMainWidget(root)
	term.ProcessPending()
	assert.Empty(t, be.Titles(), "titles wait for detection")

	term.HandleNativeEvent(terminal.AutoDetectFinishedEvent{Supported: true})
	term.ProcessPending()
	assert.Equal(t, []string{"first"}, be.Titles())
	assert.Equal(t, []string{"icon"}, be.IconTitles())

	term.Update()
	term.ProcessPending()
	assert.Equal(t, []string{"first"}, be.Titles())
	assert.Equal(t, []string{"icon"}, be.IconTitles())

	term.SetIconTitle("other")
	term.ProcessPending()
	assert.Equal(t, []string{"icon", "other"}, be.IconTitles())
	assert.Equal(t, []string{"first"}, be.Titles())
	assert.False(t, term.iconTitleNeedsUpdate)
}

func TestPauseAndUnpause(t *testing.T) {
	root := NewWidget(nil, nil)
	term, be := newReadyTerminal(t, 20, 5, root)

	term.UnpauseOperation()
	assert.Equal(t, Ready, term.InitState(), "unpause is only valid while paused")

	term.PauseOperation()
	assert.True(t, term.IsPaused())
	assert.True(t, be.Suspended())

	shows, syncs := be.Flushes()
	term.Update()
	term.ProcessPending()
	afterShows, afterSyncs := be.Flushes()
	assert.Equal(t, shows, afterShows, "no output while paused")
	assert.Equal(t, syncs, afterSyncs)

	term.UnpauseOperation()
	assert.Equal(t, Ready, term.InitState())
	assert.False(t, be.Suspended())
	_, afterSyncs = be.Flushes()
	assert.Equal(t, syncs+1, afterSyncs)
}

func TestAfterRenderingListeners(t *testing.T) {
	root := NewWidget(nil, nil)
	term, _ := newReadyTerminal(t, 20, 5, root)
	calls := 0
	unregister := term.OnAfterRendering(func() { calls++ })

	term.ForceRepaint()
	assert.Equal(t, 1, calls)
	unregister()
	term.ForceRepaint()
	assert.Equal(t, 1, calls)
}

func TestGrabCurrentImage(t *testing.T) {
	root := NewWidget(nil, &recorder{text: "snap"})
	term, _ := newReadyTerminal(t, 10, 2, root)

	img := term.GrabCurrentImage()
	assert.Equal(t, "snap      ", img.Row(0))
}

func TestApplyPaletteBumpsGeneration(t *testing.T) {
	root := NewWidget(nil, nil)
	child := NewWidget(root, nil)
	term, _ := newTerminal(t, 10, 2, Options{PaletteCache: true})
	term.SetMainWidget(root)

	p := palette.New()
	p.SetColor("fg", backend.ColorRed)
	term.ApplyPalette(p)
	assert.Equal(t, backend.ColorRed, child.Color("fg"))

	gen := child.Generation()
	p2 := palette.New()
	p2.SetColor("fg", backend.ColorBlue)
	term.PostPalette(p2)
	term.ProcessPending()
	assert.Greater(t, child.Generation(), gen)
	assert.Equal(t, backend.ColorBlue, child.Color("fg"))
}

func TestRunStopsOnQuit(t *testing.T) {
	be := sim.New(20, 5)
	term := New(be, Options{})
	root := NewWidget(nil, &recorder{text: "run"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- term.Run(ctx) }()

	term.Post(func() {
		term.SetMainWidget(root)
		term.PostLow(term.Quit)
	})

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("Run did not return")
	}
	assert.False(t, term.backendActive)
}

func TestRunReturnsIncompatibleError(t *testing.T) {
	be := sim.New(20, 5, sim.Unsupported())
	var diag bytes.Buffer
	term := New(be, Options{Diagnostics: &diag})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := term.Run(ctx)
	assert.True(t, errors.Is(err, ErrIncompatibleTerminal))
	assert.Contains(t, diag.String(), "Terminal auto detection failed")
}

func TestRunHonorsContext(t *testing.T) {
	be := sim.New(20, 5)
	term := New(be, Options{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- term.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run ignored cancellation")
	}
}
