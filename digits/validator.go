package digits

import (
	"github.com/lixenwraith/pi-catcher/component"
	"github.com/lixenwraith/pi-catcher/physics"
)

// Outcome is the per-tick verdict for one pie
type Outcome uint8

const (
	// OutcomeContinue keeps the pie alive for the next tick
	OutcomeContinue Outcome = iota
	// OutcomeMatched is a catch whose digit equals the expected one
	OutcomeMatched
	// OutcomeMismatched is a catch with the wrong digit, ending the session
	OutcomeMismatched
	// OutcomeMissed is a pie that left the bottom without touching the plate
	OutcomeMissed
	// OutcomeExhausted is a catch with no loaded digit to compare against
	OutcomeExhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeMatched:
		return "matched"
	case OutcomeMismatched:
		return "mismatched"
	case OutcomeMissed:
		return "missed"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Removes reports whether the pie leaves the live set
func (o Outcome) Removes() bool {
	return o != OutcomeContinue
}

// Validator tracks the expected position in the reference digit stream
// Invariant: 0 <= cursor <= len(digits)
type Validator struct {
	digits []uint8
	cursor int
	// offset is the absolute stream index of digits[0]
	offset int

	lastExpected uint8
	lastCaught   uint8
}

func NewValidator() *Validator {
	return &Validator{}
}

// Load replaces the buffer and rewinds the cursor
func (v *Validator) Load(d []uint8, offset int) {
	v.digits = append(v.digits[:0], d...)
	v.cursor = 0
	v.offset = offset
	v.lastExpected, v.lastCaught = 0, 0
}

// Append extends the buffer with the chunk starting at NextOffset
func (v *Validator) Append(d []uint8) {
	v.digits = append(v.digits, d...)
}

// Clear drops all digits
func (v *Validator) Clear() {
	v.Load(nil, 0)
}

// Expected returns the digit the next catch must carry
func (v *Validator) Expected() (uint8, error) {
	if v.cursor >= len(v.digits) {
		return 0, ErrBufferExhausted
	}
	return v.digits[v.cursor], nil
}

// Resolve decides the fate of p for this tick
// The cursor advances on every compared catch, matched or not
func (v *Validator) Resolve(p *component.Pie, plate component.Plate, b physics.Bounds) Outcome {
	hit := physics.PieHitsPlate(p, plate, b)

	if physics.AboveBottom(p, b) && !hit {
		return OutcomeContinue
	}
	if !hit {
		return OutcomeMissed
	}

	want, err := v.Expected()
	if err != nil {
		return OutcomeExhausted
	}
	v.cursor++
	v.lastExpected, v.lastCaught = want, p.Slices
	if p.Slices == want {
		return OutcomeMatched
	}
	return OutcomeMismatched
}

// NeedsRefill reports whether no more than (1-threshold) of a chunk remains
func (v *Validator) NeedsRefill(chunk int, threshold float64) bool {
	if len(v.digits) == 0 {
		return false
	}
	keep := chunk - int(float64(chunk)*threshold)
	return v.Remaining() <= keep
}

// Last returns the expected and caught digits of the most recent compared catch
func (v *Validator) Last() (expected, caught uint8) {
	return v.lastExpected, v.lastCaught
}

// Cursor is the buffer index of the next expected digit
func (v *Validator) Cursor() int {
	return v.cursor
}

// Len is the number of digits loaded
func (v *Validator) Len() int {
	return len(v.digits)
}

// Remaining is the number of digits not yet consumed
func (v *Validator) Remaining() int {
	return len(v.digits) - v.cursor
}

// Offset is the absolute stream index of the first loaded digit
func (v *Validator) Offset() int {
	return v.offset
}

// NextOffset is the absolute stream index right after the loaded digits
func (v *Validator) NextOffset() int {
	return v.offset + len(v.digits)
}

// Consumed is the absolute count of digits caught so far
func (v *Validator) Consumed() int {
	return v.offset + v.cursor
}
