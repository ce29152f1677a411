package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/pi-catcher/config"
	"github.com/lixenwraith/pi-catcher/digits"
	"github.com/lixenwraith/pi-catcher/engine"
	"github.com/lixenwraith/pi-catcher/status"
)

func newTestGame(t *testing.T) (*Game, tcell.SimulationScreen, *status.Registry) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(80, 25)

	cfg := config.DefaultConfig()
	cfg.Game.Seed = 7
	metrics := status.NewRegistry()
	eng := engine.New(context.Background(), cfg.Game, digits.NewStaticSource(), engine.Options{
		Metrics:      metrics,
		FetchTimeout: time.Second,
	})

	g := NewGame(screen, eng, metrics, time.Millisecond)
	t.Cleanup(g.cleanup)
	return g, screen, metrics
}

func key(k tcell.Key) tcell.Event {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

// tickUntil ticks until the engine reports scene
func tickUntil(t *testing.T, g *Game, metrics *status.Registry, scene engine.Scene) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		g.tick()
		if metrics.Label(status.SceneName) == scene.String() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("Scene %s not reached, stuck in %s", scene, metrics.Label(status.SceneName))
}

func screenContains(screen tcell.Screen, s string) bool {
	cols, rows := screen.Size()
	for y := 0; y < rows; y++ {
		var sb strings.Builder
		for x := 0; x < cols; x++ {
			mainc, _, _, _ := screen.GetContent(x, y)
			sb.WriteRune(mainc)
		}
		if strings.Contains(sb.String(), s) {
			return true
		}
	}
	return false
}

func TestGameStartsAndPlays(t *testing.T) {
	g, screen, metrics := newTestGame(t)

	if !g.tick() {
		t.Fatal("Unexpected quit on first tick")
	}
	if !screenContains(screen, "start") {
		t.Error("Expected start scene in status line")
	}

	g.handleEvent(key(tcell.KeyEnter))
	if len(g.pending) != 1 {
		t.Fatalf("Expected one pending input, got %d", len(g.pending))
	}

	tickUntil(t, g, metrics, engine.SceneGame)
	if len(g.pending) != 0 {
		t.Error("Pending inputs should be delivered on tick")
	}

	// Let the first pie spawn and fall
	for range 5 {
		g.tick()
	}
	if metrics.Count(status.Spawned) != 1 {
		t.Errorf("Expected one spawned pie, got %d", metrics.Count(status.Spawned))
	}
}

func TestGameIgnoresUnboundEvents(t *testing.T) {
	g, _, _ := newTestGame(t)

	g.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	g.handleEvent(tcell.NewEventResize(100, 30))

	if len(g.pending) != 0 {
		t.Errorf("Expected no pending inputs, got %d", len(g.pending))
	}
}

func TestGameResize(t *testing.T) {
	g, screen, _ := newTestGame(t)

	screen.SetSize(120, 40)
	g.handleEvent(tcell.NewEventResize(120, 40))

	if l := g.renderer.Layout(); l.Cols != 120 || l.Rows != 40 {
		t.Errorf("Expected layout 120x40, got %dx%d", l.Cols, l.Rows)
	}
}

func TestGameLoopQuits(t *testing.T) {
	g, _, _ := newTestGame(t)

	events := make(chan tcell.Event, 4)
	events <- key(tcell.KeyEnter)
	events <- key(tcell.KeyCtrlC)

	done := make(chan error, 1)
	go func() { done <- g.loop(context.Background(), events) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean quit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Loop did not quit")
	}
}

func TestGameLoopStopsOnCancel(t *testing.T) {
	g, _, _ := newTestGame(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.loop(ctx, make(chan tcell.Event)) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Loop did not stop on cancel")
	}
}

func TestNewSourceKinds(t *testing.T) {
	cfg := config.DefaultConfig().Source
	cfg.Kind = "static"

	src := newSource(cfg)
	d, err := src.Fetch(context.Background(), 0, 5)
	if err != nil {
		t.Fatalf("Static fetch failed: %v", err)
	}
	if len(d) != 5 || d[0] != 3 || d[1] != 1 || d[2] != 4 {
		t.Errorf("Unexpected digits %v", d)
	}

	cfg.Kind = "http"
	if _, ok := newSource(cfg).(*digits.Retrying); !ok {
		t.Error("Expected sources to be wrapped with retries")
	}
}

func TestGameRunRecoversLoopPanic(t *testing.T) {
	g, _, _ := newTestGame(t)
	// First draw dereferences the missing renderer
	g.renderer = nil

	done := make(chan error, 1)
	go func() { done <- g.run(context.Background()) }()

	select {
	case err := <-done:
		var crash *CrashError
		if !errors.As(err, &crash) {
			t.Fatalf("Expected CrashError, got %v", err)
		}
		if crash.Where != "game loop" {
			t.Errorf("Expected crash in game loop, got %q", crash.Where)
		}
		if len(crash.Stack) == 0 {
			t.Error("Expected a stack trace")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after a loop panic")
	}
}

func TestGameRunStopsOnCancel(t *testing.T) {
	g, _, _ := newTestGame(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop on cancel")
	}
}
