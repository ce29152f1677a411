package component

import (
	"github.com/lixenwraith/pi-catcher/constants"
	"github.com/lixenwraith/pi-catcher/vmath"
)

// Pie is a falling entity carrying one decimal digit
type Pie struct {
	// Slices is the digit the pie stands for, in [0, 9]
	Slices uint8
	// Velocity is vertical speed in world units per tick, negative is downward
	Velocity float64
	X, Y     float64
}

// NewPie spawns a pie at the top edge of a play area spanning [-half, half]
// X is magnitude times an independent sign, kept as the game has always drawn it
func NewPie(rng *vmath.FastRand, half float64) Pie {
	return Pie{
		Slices:   uint8(rng.Intn(constants.PieDigits)),
		Velocity: 0,
		X:        rng.Float64() * rng.Signum() * half,
		Y:        half,
	}
}
