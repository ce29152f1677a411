package engine

import (
	"github.com/lixenwraith/pi-catcher/component"
	"github.com/lixenwraith/pi-catcher/digits"
)

// State is the complete simulation, owned and mutated only by Engine.Step
type State struct {
	Scene     Scene
	Plate     component.Plate
	Pies      []component.Pie
	Validator *digits.Validator

	// Tick counts Game ticks of the current session
	Tick uint64
	// Matched counts correct catches of the current session
	Matched int
	// Session tags loader requests so late results from a replaced session are dropped
	Session uint64

	// LoadErr is the failure of the last initial fetch, shown on Start
	LoadErr error
	// EndReason explains the last GameOver
	EndReason string

	RefillPending bool
	RefillErr     error

	Quit bool
}

func NewState() *State {
	return &State{
		Scene:     SceneStart,
		Plate:     component.NewPlate(),
		Validator: digits.NewValidator(),
	}
}

// resetSession clears everything a new session must not inherit
func (s *State) resetSession() {
	s.Plate = component.NewPlate()
	s.Pies = s.Pies[:0]
	s.Validator.Clear()
	s.Tick = 0
	s.Matched = 0
	s.LoadErr = nil
	s.EndReason = ""
	s.RefillPending = false
	s.RefillErr = nil
}
