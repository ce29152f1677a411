package constants

import "time"

// Play Area Geometry (world units, origin at screen center, +Y up)
const (
	// ScreenSize is the side length of the square play area
	ScreenSize = 700

	// ScreenHalf is the distance from the center to any edge
	ScreenHalf = ScreenSize / 2
)

// Pie Constants
const (
	// PieRadius is the collision radius of a falling pie
	PieRadius = 50.0

	// PieAccel is subtracted from a pie's velocity every tick
	PieAccel = 0.1

	// PieSpawnRate is the number of game ticks between spawns
	PieSpawnRate = 45

	// PieDigits is the exclusive upper bound of a pie's digit
	PieDigits = 10
)

// Plate Constants
const (
	PlateWidth  = 100.0
	PlateHeight = 20.0

	// PlateY sits the plate flush with the bottom edge
	PlateY = -float64(ScreenHalf) + PlateHeight/2
)

// Digit Buffer Constants
const (
	// DigitsLoadedAtOnce is the chunk size requested from the digit source
	DigitsLoadedAtOnce = 100

	// RefillThreshold is the consumed fraction of the buffer that triggers a prefetch
	RefillThreshold = 0.8
)

// Game Loop Timing
const (
	// FrameUpdateInterval is the tick and render interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// EventQueueSize is the buffered capacity between the input poller and the loop
	EventQueueSize = 256
)
