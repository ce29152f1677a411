// Package digits supplies reference digits of π and validates caught pies against them
package digits

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable covers transport failures and malformed payloads
	ErrSourceUnavailable = errors.New("digit source unavailable")

	// ErrBufferExhausted is returned when the cursor has consumed every loaded digit
	ErrBufferExhausted = errors.New("digit buffer exhausted")
)

// Source returns count digits of π beginning at absolute offset start
// Offset 0 is the leading 3
type Source interface {
	Fetch(ctx context.Context, start, count int) ([]uint8, error)
}

// ParseDigits converts an ASCII digit string, rejecting anything else
func ParseDigits(s string) ([]uint8, error) {
	out := make([]uint8, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("%w: non-digit %q at %d", ErrSourceUnavailable, c, i)
		}
		out[i] = c - '0'
	}
	return out, nil
}
