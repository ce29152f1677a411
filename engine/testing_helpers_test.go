package engine

import (
	"context"
	"testing"
	"time"

	"github.com/lixenwraith/pi-catcher/component"
	"github.com/lixenwraith/pi-catcher/config"
	"github.com/lixenwraith/pi-catcher/digits"
	"github.com/lixenwraith/pi-catcher/status"
)

// sourceFunc adapts a function to digits.Source
type sourceFunc func(ctx context.Context, start, count int) ([]uint8, error)

func (f sourceFunc) Fetch(ctx context.Context, start, count int) ([]uint8, error) {
	return f(ctx, start, count)
}

// farAway parks the plate where no pie can reach it
const farAway = 10_000.0

func testGameConfig() config.Game {
	g := config.DefaultConfig().Game
	g.Seed = 42
	return g
}

func newTestEngine(t *testing.T, cfg config.Game, src digits.Source) (*Engine, *status.Registry) {
	t.Helper()
	metrics := status.NewRegistry()
	e := New(context.Background(), cfg, src, Options{Metrics: metrics, FetchTimeout: time.Second})
	t.Cleanup(e.Close)
	return e, metrics
}

// stepUntil steps with no input until cond holds on the returned frame
func stepUntil(t *testing.T, e *Engine, cond func(RenderState) bool) RenderState {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		rs := e.Step()
		if cond(rs) {
			return rs
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("Condition not reached before deadline")
	return RenderState{}
}

func sceneIs(scene Scene) func(RenderState) bool {
	return func(rs RenderState) bool { return rs.Scene == scene }
}

// startGame confirms from Start and waits for the first buffer
func startGame(t *testing.T, e *Engine) RenderState {
	t.Helper()
	if rs := e.Step(Confirm()); rs.Scene != SceneLoading && rs.Scene != SceneGame {
		t.Fatalf("Expected loading after confirm, got %v", rs.Scene)
	}
	return stepUntil(t, e, sceneIs(SceneGame))
}

// pieLandingOnPlate returns a pie that overlaps the plate after one fall step
func pieLandingOnPlate(e *Engine, digit uint8) component.Pie {
	return component.Pie{
		Slices: digit,
		X:      e.state.Plate.X,
		Y:      e.bounds.PlateY + e.cfg.PieAccel,
	}
}
