package runtime

import (
	"context"

	"github.com/odvcencio/tuikit/pkg/logging"
	"github.com/odvcencio/tuikit/pkg/ui/terminal"
)

// Post queues fn to run on the loop goroutine. Safe for concurrent use.
func (t *Terminal) Post(fn func()) {
	t.mu.Lock()
	t.tasks = append(t.tasks, fn)
	t.mu.Unlock()
	t.wakeup()
}

// PostLow queues fn behind every task queued with Post. Paint passes run
// at this priority.
func (t *Terminal) PostLow(fn func()) {
	t.mu.Lock()
	t.lowTasks = append(t.lowTasks, fn)
	t.mu.Unlock()
	t.wakeup()
}

// PostEvent queues a native event as if the backend had produced it.
// Safe for concurrent use.
func (t *Terminal) PostEvent(ev terminal.Event) {
	t.Post(func() { t.HandleNativeEvent(ev) })
}

func (t *Terminal) wakeup() {
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

func (t *Terminal) nextTask() func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.tasks) > 0 {
		fn := t.tasks[0]
		t.tasks[0] = nil
		t.tasks = t.tasks[1:]
		return fn
	}
	if len(t.lowTasks) > 0 {
		fn := t.lowTasks[0]
		t.lowTasks[0] = nil
		t.lowTasks = t.lowTasks[1:]
		return fn
	}
	return nil
}

func (t *Terminal) hasPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.tasks)+len(t.lowTasks) > 0
}

// ProcessPending runs queued tasks until both queues are empty or Quit was
// called. Normal tasks always run before low priority ones, including
// tasks queued while processing.
func (t *Terminal) ProcessPending() {
	for !t.quitting.Load() {
		fn := t.nextTask()
		if fn == nil {
			return
		}
		fn()
	}
}

// Quit makes Run return after the current task. Safe for concurrent use.
func (t *Terminal) Quit() {
	t.quitting.Store(true)
	t.wakeup()
}

// Run initializes the terminal if needed and processes events until Quit
// is called or ctx is done. The backend is released before Run returns.
// Run returns ErrIncompatibleTerminal when detection failed and no
// incompatibility listener was registered.
func (t *Terminal) Run(ctx context.Context) error {
	if err := t.Init(); err != nil {
		return err
	}
	t.quitting.Store(false)
	t.loopErr = nil
	defer t.deinit()

	events := make(chan terminal.Event, 64)
	stop := make(chan struct{})
	defer close(stop)
	go t.pollEvents(events, stop)

	t.log.Info(logging.CategorySession, "loop_started", "", nil)
	for {
		t.ProcessPending()
		if t.quitting.Load() {
			break
		}
		t.AboutToBlock()
		if t.hasPending() {
			continue
		}
		select {
		case <-ctx.Done():
			t.log.Info(logging.CategorySession, "loop_cancelled", ctx.Err().Error(), nil)
			return ctx.Err()
		case <-t.wake:
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			t.HandleNativeEvent(ev)
		}
	}
	t.log.Info(logging.CategorySession, "loop_stopped", "", nil)
	return t.loopErr
}

// pollEvents forwards backend events until the backend shuts down or stop
// is closed.
func (t *Terminal) pollEvents(out chan<- terminal.Event, stop <-chan struct{}) {
	defer close(out)
	for {
		ev := t.be.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-stop:
			return
		}
	}
}
