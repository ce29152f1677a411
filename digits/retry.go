package digits

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds retries of a failing fetch
type RetryPolicy struct {
	MaxAttempts    int // including the first
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Retrying wraps a Source with exponential backoff
// Errors exposing Permanent() bool that return true stop immediately
type Retrying struct {
	src    Source
	policy RetryPolicy
}

// WithRetry decorates src; MaxAttempts below 1 is treated as 1
func WithRetry(src Source, policy RetryPolicy) *Retrying {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &Retrying{src: src, policy: policy}
}

func (r *Retrying) Fetch(ctx context.Context, start, count int) ([]uint8, error) {
	// Backoff schedule from policy, library defaults for unset fields
	eb := backoff.NewExponentialBackOff()
	if r.policy.InitialBackoff > 0 {
		eb.InitialInterval = r.policy.InitialBackoff
	}
	if r.policy.MaxBackoff > 0 {
		eb.MaxInterval = r.policy.MaxBackoff
	}
	// Attempt count is the only bound besides ctx
	eb.MaxElapsedTime = 0
	eb.Reset()

	// Retries exclude the first attempt
	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(r.policy.MaxAttempts-1)), ctx)

	var out []uint8
	op := func() error {
		d, err := r.src.Fetch(ctx, start, count)
		if err != nil {
			// Permanent errors end the loop without waiting
			if isPermanent(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		out = d
		return nil
	}
	notify := func(err error, wait time.Duration) {
		log.Printf("Digit fetch at offset %d failed, retrying in %v: %v", start, wait, err)
	}

	if err := backoff.RetryNotify(op, b, notify); err != nil {
		// Callers match on ErrSourceUnavailable regardless of the cause
		if !errors.Is(err, ErrSourceUnavailable) {
			err = fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		return nil, err
	}
	return out, nil
}

func isPermanent(err error) bool {
	var p interface{ Permanent() bool }
	return errors.As(err, &p) && p.Permanent()
}
