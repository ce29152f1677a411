package main

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/pi-catcher/constants"
	"github.com/lixenwraith/pi-catcher/engine"
	"github.com/lixenwraith/pi-catcher/input"
	"github.com/lixenwraith/pi-catcher/render"
	"github.com/lixenwraith/pi-catcher/status"
	"golang.org/x/sync/errgroup"
)

// Game binds the engine to a terminal screen
type Game struct {
	screen     tcell.Screen
	engine     *engine.Engine
	renderer   *render.Renderer
	translator *input.Translator
	interval   time.Duration

	// Inputs gathered between ticks, delivered in arrival order
	pending []engine.Input

	finiOnce sync.Once
}

// NewGame takes ownership of an initialized screen
func NewGame(screen tcell.Screen, eng *engine.Engine, metrics *status.Registry, interval time.Duration) *Game {
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	return &Game{
		screen:     screen,
		engine:     eng,
		renderer:   render.NewRenderer(screen, eng.Bounds(), metrics),
		translator: input.NewTranslator(nil),
		interval:   interval,
		pending:    make([]engine.Input, 0, 16),
	}
}

// handleEvent queues the engine input for ev, if any
func (g *Game) handleEvent(ev tcell.Event) {
	if _, ok := ev.(*tcell.EventResize); ok {
		g.renderer.Resize()
		g.screen.Sync()
		return
	}

	if in, ok := g.translator.Translate(ev, g.renderer.Layout()); ok {
		g.pending = append(g.pending, in)
	}
}

// tick advances the engine once and draws the frame
// Returns false when the player quit
func (g *Game) tick() bool {
	rs := g.engine.Step(g.pending...)
	g.pending = g.pending[:0]

	if rs.Quit {
		return false
	}
	g.renderer.Draw(rs)
	return true
}

// loop runs until quit, ctx cancellation or the event stream closing
func (g *Game) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	// Draw the Start scene before the first tick
	if !g.tick() {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			g.handleEvent(ev)

		case <-ticker.C:
			if !g.tick() {
				log.Printf("Quit requested")
				return nil
			}
		}
	}
}

// CrashError is a panic recovered from the game loop or the event poller
type CrashError struct {
	Where string
	Value any
	Stack []byte
}

func (e *CrashError) Error() string {
	return fmt.Sprintf("%s crashed: %v", e.Where, e.Value)
}

// recoverCrash converts a panic into a CrashError; must be deferred directly
func recoverCrash(where string, err *error) {
	if r := recover(); r != nil {
		*err = &CrashError{Where: where, Value: r, Stack: debug.Stack()}
	}
}

// run polls the screen on a background goroutine and drives the loop on the caller's
// The screen is restored before run returns, including after a panic on either side
func (g *Game) run(ctx context.Context) (err error) {
	grp, gctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, constants.EventQueueSize)

	grp.Go(func() (perr error) {
		defer recoverCrash("event poller", &perr)
		// Loop sees the stream end
		defer close(events)

		for {
			// nil after Fini
			ev := g.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-gctx.Done():
				return nil
			}
		}
	})

	err = g.runLoop(gctx, events)

	// Fini unblocks PollEvent so the poller can exit
	g.cleanup()
	if werr := grp.Wait(); err == nil {
		err = werr
	}
	return err
}

func (g *Game) runLoop(ctx context.Context, events <-chan tcell.Event) (err error) {
	defer recoverCrash("game loop", &err)
	return g.loop(ctx, events)
}

// cleanup stops fetches and restores the terminal; safe to call more than once
func (g *Game) cleanup() {
	g.finiOnce.Do(func() {
		g.engine.Close()
		g.screen.Fini()
	})
}
