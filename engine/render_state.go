package engine

import (
	"fmt"

	"github.com/lixenwraith/pi-catcher/constants"
)

// PieView is the renderable part of a pie
type PieView struct {
	X, Y  float64
	Digit uint8
}

// RenderState is everything the view layer needs for one frame
type RenderState struct {
	Scene  Scene
	Prompt string
	// Detail is an error or end-of-session explanation
	Detail string

	Pies   []PieView
	PlateX float64
	PlateY float64

	// Digit is the next expected digit, -1 when none is loaded
	Digit int
	// Caught is the number of correct catches this session
	Caught int
	// Position is the absolute count of reference digits consumed, the losing one included
	Position int
	Tick   uint64

	Quit bool
}

// render dispatches on scene; each arm reads state only
func (e *Engine) render() RenderState {
	s := e.state
	base := RenderState{
		Scene:  s.Scene,
		PlateX: s.Plate.X,
		PlateY: e.bounds.PlateY,
		Digit:  -1,
		Caught:   s.Matched,
		Position: s.Validator.Consumed(),
		Tick:   s.Tick,
		Quit:   s.Quit,
	}

	switch s.Scene {
	case SceneStart:
		return renderStart(s, base)
	case SceneLoading:
		return renderLoading(s, base)
	case SceneGame:
		return renderGame(s, base)
	case SceneGameOver:
		return renderGameOver(s, base)
	}
	return base
}

func renderStart(s *State, rs RenderState) RenderState {
	rs.Prompt = constants.PromptStart
	if s.LoadErr != nil {
		rs.Prompt = constants.PromptRetry
		rs.Detail = s.LoadErr.Error()
	}
	return rs
}

func renderLoading(_ *State, rs RenderState) RenderState {
	rs.Prompt = constants.PromptLoading
	return rs
}

func renderGame(s *State, rs RenderState) RenderState {
	rs.Pies = make([]PieView, len(s.Pies))
	for i, p := range s.Pies {
		rs.Pies[i] = PieView{X: p.X, Y: p.Y, Digit: p.Slices}
	}
	if d, err := s.Validator.Expected(); err == nil {
		rs.Digit = int(d)
	}
	return rs
}

func renderGameOver(s *State, rs RenderState) RenderState {
	rs.Prompt = constants.PromptGameOver
	rs.Detail = s.EndReason
	return rs
}

// mismatchReason formats the GameOver explanation for a wrong catch
func mismatchReason(expected, caught uint8, position int) string {
	return fmt.Sprintf("Digit #%d of π is %d, you caught %d", position, expected, caught)
}
