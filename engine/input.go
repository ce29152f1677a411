package engine

// InputKind identifies an input event
type InputKind uint8

const (
	// InputPointer carries an absolute world x for the plate
	InputPointer InputKind = iota + 1
	InputConfirm
	InputCancel
	// InputQuit exits from any scene
	InputQuit
)

// Input is one event delivered to Step
type Input struct {
	Kind InputKind
	X    float64
}

func Pointer(x float64) Input { return Input{Kind: InputPointer, X: x} }
func Confirm() Input          { return Input{Kind: InputConfirm} }
func Cancel() Input           { return Input{Kind: InputCancel} }
func Quit() Input             { return Input{Kind: InputQuit} }
