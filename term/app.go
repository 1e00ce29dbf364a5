// Package term renders store-bound views on a tcell screen.
//
// State notifications reach views through a QueueScheduler: subscriber
// callbacks are queued and the event loop flushes them between events, so
// views are only touched from the loop goroutine.
package term

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-store/bind"
	"github.com/odvcencio/furry-store/state"
)

// ErrNoScreen is returned by Run when the app has no screen.
var ErrNoScreen = errors.New("screen is required")

// KeyHandler handles a key event inside the event loop.
type KeyHandler func(app *App, ev *tcell.EventKey)

// AppConfig configures an App.
type AppConfig struct {
	Screen tcell.Screen
	Root   View
	OnKey  KeyHandler
	Queue  *state.Queue
	Logger *slog.Logger
}

type quitMsg struct{}

type flushMsg struct{}

// App runs a view tree against a tcell screen.
type App struct {
	screen    tcell.Screen
	root      View
	onKey     KeyHandler
	queue     *state.Queue
	scheduler *QueueScheduler
	logger    *slog.Logger
	running   bool
	dirty     bool
}

// NewApp creates an App from config.
func NewApp(cfg AppConfig) *App {
	queue := cfg.Queue
	if queue == nil {
		queue = state.NewQueue()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	app := &App{
		screen: cfg.Screen,
		root:   cfg.Root,
		onKey:  cfg.OnKey,
		queue:  queue,
		logger: logger,
	}
	app.scheduler = NewQueueScheduler(queue, app.post)
	return app
}

// Scheduler returns the scheduler views should subscribe through.
func (a *App) Scheduler() state.Scheduler {
	if a == nil {
		return nil
	}
	return a.scheduler
}

// Quit asks the event loop to stop.
func (a *App) Quit() {
	a.post(quitMsg{})
}

func (a *App) post(msg any) bool {
	if a == nil || a.screen == nil {
		return false
	}
	return a.screen.PostEvent(tcell.NewEventInterrupt(msg)) == nil
}

// Run initialises the screen, mounts the root view and processes events
// until Quit is called or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.screen == nil {
		return ErrNoScreen
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer a.screen.Fini()

	a.screen.HideCursor()
	bind.MountTree(a.root)
	defer bind.UnmountTree(a.root)

	stop := context.AfterFunc(ctx, a.Quit)
	defer stop()

	a.running = true
	a.flush()
	a.render()

	for a.running {
		ev := a.screen.PollEvent()
		if ev == nil {
			break
		}
		a.handle(ev)
		if a.dirty && a.running {
			a.render()
		}
	}
	a.logger.Debug("event loop stopped")
	return ctx.Err()
}

func (a *App) handle(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if a.onKey != nil {
			a.onKey(a, e)
		}
		a.flush()
	case *tcell.EventResize:
		a.screen.Sync()
		a.dirty = true
	case *tcell.EventInterrupt:
		switch e.Data().(type) {
		case quitMsg:
			a.running = false
		case flushMsg:
			a.flush()
		}
	}
}

func (a *App) flush() {
	a.scheduler.resetPending()
	if n := a.queue.Flush(); n > 0 {
		a.logger.Debug("flushed state queue", slog.Int("callbacks", n))
		a.dirty = true
	}
}

func (a *App) render() {
	a.screen.Clear()
	if a.root != nil {
		w, h := a.screen.Size()
		a.root.Draw(a.screen, Rect{Width: w, Height: h})
	}
	a.screen.Show()
	a.dirty = false
}
