package digits

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed pi.txt
var embeddedPi string

// RangeError is a request outside the held digits; retrying cannot help
type RangeError struct {
	Start, Count, Len int
}

func (e *RangeError) Error() string {
	if e.Start >= e.Len {
		return fmt.Sprintf("offset %d beyond %d embedded digits", e.Start, e.Len)
	}
	return fmt.Sprintf("bad range start=%d count=%d", e.Start, e.Count)
}

func (e *RangeError) Permanent() bool { return true }

// StaticSource serves digits from memory
type StaticSource struct {
	digits []uint8
}

// NewStaticSource returns a source over the first 1000 digits of π
func NewStaticSource() *StaticSource {
	d, err := ParseDigits(strings.TrimSpace(embeddedPi))
	if err != nil {
		panic("embedded digits corrupt: " + err.Error())
	}
	return &StaticSource{digits: d}
}

// NewStaticSourceFrom serves an arbitrary digit string, used for scripted sessions
func NewStaticSourceFrom(s string) (*StaticSource, error) {
	d, err := ParseDigits(s)
	if err != nil {
		return nil, err
	}
	return &StaticSource{digits: d}, nil
}

// Fetch returns up to count digits; a short tail is returned as-is
func (s *StaticSource) Fetch(ctx context.Context, start, count int) ([]uint8, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	if start < 0 || count <= 0 || start >= len(s.digits) {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, &RangeError{Start: start, Count: count, Len: len(s.digits)})
	}

	end := min(start+count, len(s.digits))
	out := make([]uint8, end-start)
	copy(out, s.digits[start:end])
	return out, nil
}

// Len returns the number of digits held
func (s *StaticSource) Len() int {
	return len(s.digits)
}
