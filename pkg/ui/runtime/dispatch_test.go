package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

func TestDispatchKey_BubblesToParent(t *testing.T) {
	rRoot := &recorder{acceptKeys: true}
	rMid := &recorder{}
	rLeaf := &recorder{}
	root := NewWidget(nil, rRoot)
	mid := NewWidget(root, rMid)
	leaf := NewWidget(mid, rLeaf)
	term, _ := newReadyTerminal(t, 20, 5, root)
	leaf.SetFocus()

	ev := char("x", NoModifier)
	assert.True(t, term.DispatchKey(ev))
	assert.True(t, ev.IsAccepted())
	assert.Len(t, rLeaf.keys, 1)
	assert.Len(t, rMid.keys, 1)
	assert.Len(t, rRoot.keys, 1)

	rMid.acceptKeys = true
	term.DispatchKey(char("y", NoModifier))
	assert.Len(t, rRoot.keys, 1, "accepted events stop bubbling")
}

func TestDispatchKey_NoFocus(t *testing.T) {
	rRoot := &recorder{acceptKeys: true}
	term, _ := newReadyTerminal(t, 20, 5, NewWidget(nil, rRoot))

	assert.False(t, term.DispatchKey(key(KeyEnter, NoModifier)))
	assert.Empty(t, rRoot.keys)
}

func TestDispatchKey_GrabIsExclusive(t *testing.T) {
	rRoot := &recorder{acceptKeys: true}
	rGrab := &recorder{}
	root := NewWidget(nil, rRoot)
	grabber := NewWidget(root, rGrab)
	term, _ := newReadyTerminal(t, 20, 5, root)
	root.SetFocus()
	grabber.GrabKeyboard()

	ev := key(KeyEnter, NoModifier)
	assert.False(t, term.DispatchKey(ev), "the grab does not bubble")
	assert.Len(t, rGrab.keys, 1)
	assert.Empty(t, rRoot.keys)

	rGrab.acceptKeys = true
	assert.True(t, term.DispatchKey(key(KeyEnter, NoModifier)))

	grabber.ReleaseKeyboard()
	term.DispatchKey(key(KeyEnter, NoModifier))
	assert.Len(t, rRoot.keys, 1)
}

func TestDispatchKey_GrabHandler(t *testing.T) {
	rGrab := &recorder{acceptKeys: true}
	root := NewWidget(nil, nil)
	grabber := NewWidget(root, rGrab)
	term, _ := newReadyTerminal(t, 20, 5, root)

	var got []Event
	grabber.GrabKeyboardFunc(func(ev Event) bool {
		got = append(got, ev)
		return true
	})
	assert.True(t, term.DispatchKey(char("a", NoModifier)))
	assert.True(t, term.DispatchPaste(NewPasteEvent("p")))
	assert.Len(t, got, 2)
	assert.Empty(t, rGrab.keys, "the handler replaces the behavior")
	assert.Equal(t, grabber, term.KeyboardGrabber())

	root.ReleaseKeyboard()
	assert.Equal(t, grabber, term.KeyboardGrabber(), "only the holder releases")
}

func TestGrabRequiresAttachedWidget(t *testing.T) {
	term, _ := newReadyTerminal(t, 20, 5, NewWidget(nil, nil))
	stray := NewWidget(nil, nil)
	term.GrabKeyboard(stray)
	assert.Nil(t, term.KeyboardGrabber())
}

func TestDispatchKey_ShortcutsBeforeFocus(t *testing.T) {
	ctrl := gomock.NewController(t)
	sm := NewMockShortcutManager(ctrl)

	rFocus := &recorder{acceptKeys: true}
	root := NewWidget(nil, nil)
	focus := NewWidget(root, rFocus)

	term, _ := newTerminal(t, 20, 5, Options{Shortcuts: sm})
	term.HandleNativeEvent(terminal.AutoDetectFinishedEvent{Supported: true})
	term.SetMainWidget(root)
	term.ProcessPending()
	focus.SetFocus()

	gomock.InOrder(
		sm.EXPECT().Process(gomock.Any()).Return(true),
		sm.EXPECT().Process(gomock.Any()).Return(false),
	)

	assert.True(t, term.DispatchKey(char("q", ControlModifier)))
	assert.Empty(t, rFocus.keys, "a consumed shortcut never reaches the focus widget")

	assert.True(t, term.DispatchKey(char("q", ControlModifier)))
	assert.Len(t, rFocus.keys, 1)
}

func TestDispatchKey_GrabBypassesShortcuts(t *testing.T) {
	ctrl := gomock.NewController(t)
	sm := NewMockShortcutManager(ctrl)
	sm.EXPECT().Process(gomock.Any()).Times(0)

	root := NewWidget(nil, nil)
	grabber := NewWidget(root, &recorder{acceptKeys: true})
	term, _ := newTerminal(t, 20, 5, Options{Shortcuts: sm})
	term.SetMainWidget(root)
	grabber.GrabKeyboard()

	assert.True(t, term.DispatchKey(char("q", ControlModifier)))
}

func TestShortcutMap_Process(t *testing.T) {
	root := NewWidget(nil, nil)
	box := NewWidget(root, nil)
	btn := NewWidget(box, nil)
	term, _ := newReadyTerminal(t, 20, 5, root)

	chord, err := ParseChord("ctrl_q")
	require.NoError(t, err)
	fired := 0
	unregister := term.ShortcutMap().Register(btn, chord, func() { fired++ })

	assert.True(t, term.DispatchKey(char("q", ControlModifier)))
	assert.Equal(t, 1, fired)

	assert.False(t, term.DispatchKey(char("q", NoModifier)))
	assert.Equal(t, 1, fired)

	box.SetVisible(false)
	assert.False(t, term.DispatchKey(char("q", ControlModifier)), "hidden ancestors disable the shortcut")
	box.SetVisible(true)

	btn.SetEnabled(false)
	assert.False(t, term.DispatchKey(char("q", ControlModifier)))
	btn.SetEnabled(true)

	unregister()
	assert.False(t, term.DispatchKey(char("q", ControlModifier)))
	assert.Equal(t, 1, fired)
}

func TestShortcutMap_EarlierRegistrationWins(t *testing.T) {
	root := NewWidget(nil, nil)
	term, _ := newReadyTerminal(t, 20, 5, root)
	chord, err := ParseChord("f2")
	require.NoError(t, err)

	var order []string
	term.ShortcutMap().Register(root, chord, func() { order = append(order, "first") })
	term.ShortcutMap().Register(root, chord, func() { order = append(order, "second") })
	term.DispatchKey(key(KeyF2, NoModifier))
	assert.Equal(t, []string{"first"}, order)
}

func TestCtrlLForcesRepaint(t *testing.T) {
	root := NewWidget(nil, nil)
	term, be := newReadyTerminal(t, 20, 5, root)
	_, syncs := be.Flushes()

	term.HandleNativeEvent(terminal.CharEvent{Text: "l", Mods: terminal.ModCtrl})
	_, after := be.Flushes()
	assert.Equal(t, syncs+1, after)

	rFocus := &recorder{acceptKeys: true}
	focus := NewWidget(root, rFocus)
	focus.SetFocus()
	term.HandleNativeEvent(terminal.CharEvent{Text: "l", Mods: terminal.ModCtrl})
	_, again := be.Flushes()
	assert.Equal(t, after, again, "an accepted ctrl+l is left alone")
}

func TestCtrlLForcesRepaintUnderGrab(t *testing.T) {
	root := NewWidget(nil, nil)
	term, be := newReadyTerminal(t, 20, 5, root)
	grabber := NewWidget(root, &recorder{})
	grabber.GrabKeyboard()
	_, syncs := be.Flushes()

	assert.False(t, term.DispatchKey(char("l", ControlModifier)))
	_, after := be.Flushes()
	assert.Equal(t, syncs+1, after, "a declined ctrl+l repaints even under a grab")

	grabber.GrabKeyboardFunc(func(Event) bool { return true })
	assert.True(t, term.DispatchKey(char("l", ControlModifier)))
	_, again := be.Flushes()
	assert.Equal(t, after, again)
}

func TestPasteIsAssembled(t *testing.T) {
	rFocus := &recorder{}
	rRoot := &recorder{acceptPaste: true}
	root := NewWidget(nil, rRoot)
	focus := NewWidget(root, rFocus)
	term, _ := newReadyTerminal(t, 20, 5, root)
	focus.SetFocus()

	term.HandleNativeEvent(terminal.PasteEvent{Text: "AB", Initial: true})
	term.HandleNativeEvent(terminal.PasteEvent{Text: "CD"})
	assert.Empty(t, rFocus.pastes)
	term.HandleNativeEvent(terminal.PasteEvent{Text: "EF", Final: true})

	assert.Equal(t, []string{"ABCDEF"}, rFocus.pastes)
	assert.Equal(t, []string{"ABCDEF"}, rRoot.pastes)

	term.HandleNativeEvent(terminal.PasteEvent{Text: "x", Initial: true, Final: true})
	assert.Equal(t, []string{"ABCDEF", "x"}, rFocus.pastes)
}

func TestNativeKeyTranslation(t *testing.T) {
	rFocus := &recorder{acceptKeys: true}
	root := NewWidget(nil, nil)
	focus := NewWidget(root, rFocus)
	term, _ := newReadyTerminal(t, 20, 5, root)
	focus.SetFocus()

	term.HandleNativeEvent(terminal.KeyEvent{Atom: terminal.AtomTab, Mods: terminal.ModShift})
	term.HandleNativeEvent(terminal.KeyEvent{Atom: terminal.AtomKP5})
	term.HandleNativeEvent(terminal.CharEvent{Text: "é", Mods: terminal.ModAlt})

	require.Len(t, rFocus.keys, 3)
	assert.Equal(t, KeyTab, rFocus.keys[0].Key)
	assert.Equal(t, ShiftModifier, rFocus.keys[0].Modifiers)
	assert.Equal(t, Key5, rFocus.keys[1].Key)
	assert.Equal(t, KeypadModifier, rFocus.keys[1].Modifiers)
	assert.Equal(t, KeyUnknown, rFocus.keys[2].Key)
	assert.Equal(t, "é", rFocus.keys[2].Text)
	assert.Equal(t, AltModifier, rFocus.keys[2].Modifiers)
}

func TestRepaintRequestedSchedulesUpdate(t *testing.T) {
	r := &recorder{}
	term, _ := newReadyTerminal(t, 20, 5, NewWidget(nil, r))
	paints := r.paints

	term.HandleNativeEvent(terminal.RepaintRequestedEvent{})
	assert.Equal(t, paints, r.paints)
	term.ProcessPending()
	assert.Equal(t, paints+1, r.paints)
}

func TestPostEventRunsOnLoop(t *testing.T) {
	rFocus := &recorder{acceptKeys: true}
	root := NewWidget(nil, nil)
	focus := NewWidget(root, rFocus)
	term, _ := newReadyTerminal(t, 20, 5, root)
	focus.SetFocus()

	term.PostEvent(terminal.CharEvent{Text: "z"})
	assert.Empty(t, rFocus.keys)
	term.ProcessPending()
	require.Len(t, rFocus.keys, 1)
	assert.Equal(t, "z", rFocus.keys[0].Text)
}
