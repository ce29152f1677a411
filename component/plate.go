package component

// Plate is the player paddle; only X moves
type Plate struct {
	X float64
}

// NewPlate returns a plate centered horizontally
func NewPlate() Plate {
	return Plate{X: 0}
}
