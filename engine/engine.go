package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/pi-catcher/component"
	"github.com/lixenwraith/pi-catcher/config"
	"github.com/lixenwraith/pi-catcher/constants"
	"github.com/lixenwraith/pi-catcher/digits"
	"github.com/lixenwraith/pi-catcher/physics"
	"github.com/lixenwraith/pi-catcher/status"
	"github.com/lixenwraith/pi-catcher/vmath"
)

// Options carries optional collaborators; zero values select defaults
type Options struct {
	Metrics      *status.Registry
	FetchTimeout time.Duration
}

// Engine is the scene controller
// Step is the single entry point and must be called from one goroutine
type Engine struct {
	cfg     config.Game
	bounds  physics.Bounds
	spawner SpawnScheduler
	rng     *vmath.FastRand

	state   *State
	loader  *loader
	metrics *status.Registry
}

// New builds an engine in the Start scene; ctx bounds all digit fetches
func New(ctx context.Context, cfg config.Game, source digits.Source, opts Options) *Engine {
	if opts.Metrics == nil {
		opts.Metrics = status.NewRegistry()
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = constants.FetchTimeout
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	e := &Engine{
		cfg: cfg,
		bounds: physics.Bounds{
			Half:        cfg.Half(),
			PieRadius:   cfg.PieRadius,
			PlateWidth:  cfg.PlateWidth,
			PlateHeight: cfg.PlateHeight,
			PlateY:      cfg.PlateY(),
		},
		spawner: NewSpawnScheduler(cfg.SpawnRate),
		rng:     vmath.NewFastRand(seed),
		state:   NewState(),
		loader:  newLoader(ctx, source, opts.FetchTimeout, opts.Metrics),
		metrics: opts.Metrics,
	}
	e.metrics.SetLabel(status.SceneName, e.state.Scene.String())
	return e
}

// Step applies inputs in order, collects finished fetches, advances one tick
// when in Game, and returns the frame to draw
func (e *Engine) Step(inputs ...Input) RenderState {
	for _, in := range inputs {
		e.handleInput(in)
	}

	entered := e.collectFetches()

	// The tick that enters Game only shows the fresh session
	if e.state.Scene == SceneGame && !entered {
		e.update()
	}

	return e.render()
}

// Bounds exposes the play-area geometry for the view layer
func (e *Engine) Bounds() physics.Bounds {
	return e.bounds
}

// Close cancels in-flight fetches
func (e *Engine) Close() {
	e.loader.stop()
}

func (e *Engine) handleInput(in Input) {
	s := e.state
	switch in.Kind {
	case InputPointer:
		s.Plate.X = in.X

	case InputQuit:
		s.Quit = true

	case InputConfirm:
		switch s.Scene {
		case SceneStart, SceneGameOver:
			e.beginSession()
		}

	case InputCancel:
		switch s.Scene {
		case SceneStart:
			// Esc only means quit when offered alongside retry
			if s.LoadErr != nil {
				s.Quit = true
			}
		case SceneLoading:
			e.loader.cancelInFlight()
			e.setScene(SceneStart)
		case SceneGameOver:
			s.Quit = true
		}
	}
}

func (e *Engine) beginSession() {
	s := e.state
	e.loader.cancelInFlight()
	s.Session++
	s.resetSession()

	e.metrics.ResetSession()
	e.metrics.Inc(status.Sessions)

	e.setScene(SceneLoading)
	e.loader.start(fetchInitial, s.Session, 0, e.cfg.DigitsPerFetch)
}

// collectFetches applies finished fetches and reports whether Game was entered
func (e *Engine) collectFetches() bool {
	s := e.state
	entered := false

	for _, r := range e.loader.poll() {
		// Results outlive the session that issued them
		if r.session != s.Session {
			log.Printf("Dropping %s fetch from session %d", r.kind, r.session)
			continue
		}

		switch r.kind {
		case fetchInitial:
			// Loading was cancelled
			if s.Scene != SceneLoading {
				continue
			}
			if r.err != nil {
				log.Printf("Initial digit fetch failed: %v", r.err)
				s.LoadErr = r.err
				e.setScene(SceneStart)
				continue
			}
			s.Validator.Load(r.digits, r.offset)
			e.setScene(SceneGame)
			entered = true

		case fetchRefill:
			// Failure is kept; it only matters once the buffer runs dry
			s.RefillPending = false
			if r.err != nil {
				log.Printf("Digit refill at offset %d failed: %v", r.offset, r.err)
				s.RefillErr = r.err
				continue
			}
			// Stream must stay contiguous
			if r.offset != s.Validator.NextOffset() {
				log.Printf("Discarding refill at offset %d, buffer ends at %d", r.offset, s.Validator.NextOffset())
				continue
			}
			s.Validator.Append(r.digits)
			log.Printf("Digit buffer extended to %d (cursor %d)", s.Validator.Len(), s.Validator.Cursor())
		}
	}
	return entered
}

// update runs one Game tick: physics, resolution, spawn, refill
func (e *Engine) update() {
	s := e.state

	// 1. Physics
	for i := range s.Pies {
		physics.Fall(&s.Pies[i], e.cfg.PieAccel)
	}

	// 2. Resolution, filtering in place
	mismatched := false
	live := s.Pies[:0]
	for _, p := range s.Pies {
		// Session is over, leave the rest untouched
		if mismatched {
			live = append(live, p)
			continue
		}

		o := e.resolve(&p)
		if !o.Removes() {
			live = append(live, p)
		}
		mismatched = o == digits.OutcomeMismatched
	}
	s.Pies = live

	if mismatched {
		expected, caught := s.Validator.Last()
		e.endSession(mismatchReason(expected, caught, s.Validator.Consumed()))
		return
	}

	// Dry buffer with no refill coming
	if s.Validator.Remaining() == 0 && s.RefillErr != nil {
		e.endSession(fmt.Sprintf("Ran out of digits: %v", s.RefillErr))
		return
	}

	// 3. Spawn
	if e.spawner.ShouldSpawn(s.Tick) {
		s.Pies = append(s.Pies, component.NewPie(e.rng, e.bounds.Half))
		e.metrics.Inc(status.Spawned)
	}
	s.Tick++
	e.metrics.Inc(status.Ticks)

	// 4. Prefetch, one request at a time
	if !s.RefillPending && s.RefillErr == nil && s.Validator.NeedsRefill(e.cfg.DigitsPerFetch, e.cfg.RefillThreshold) {
		s.RefillPending = true
		e.loader.start(fetchRefill, s.Session, s.Validator.NextOffset(), e.cfg.DigitsPerFetch)
	}
}

// resolve runs the validator on one pie and records the outcome
func (e *Engine) resolve(p *component.Pie) digits.Outcome {
	o := e.state.Validator.Resolve(p, e.state.Plate, e.bounds)
	switch o {
	case digits.OutcomeMatched:
		e.state.Matched++
		e.metrics.Inc(status.Matched)
	case digits.OutcomeMismatched:
		e.metrics.Inc(status.Mismatched)
	case digits.OutcomeMissed:
		e.metrics.Inc(status.Missed)
	case digits.OutcomeExhausted:
		e.metrics.Inc(status.Exhausted)
		log.Printf("Caught digit %d with %v", p.Slices, digits.ErrBufferExhausted)
	}
	return o
}

func (e *Engine) endSession(reason string) {
	s := e.state
	e.loader.cancelInFlight()
	s.RefillPending = false
	s.EndReason = reason
	log.Printf("Session %d over after %d ticks: %s", s.Session, s.Tick, reason)
	log.Printf("Session %d metrics: %v", s.Session, e.metrics.Snapshot())
	e.setScene(SceneGameOver)
}

func (e *Engine) setScene(next Scene) {
	s := e.state
	if s.Scene != next {
		log.Printf("Scene %s -> %s", s.Scene, next)
	}
	s.Scene = next
	e.metrics.SetLabel(status.SceneName, next.String())
}
