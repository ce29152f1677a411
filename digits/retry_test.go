package digits

import (
	"context"
	"errors"
	"testing"
	"time"
)

// scriptedSource fails the first n calls with err, then serves digits
type scriptedSource struct {
	failures int
	err      error
	calls    int
}

func (s *scriptedSource) Fetch(ctx context.Context, start, count int) ([]uint8, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, s.err
	}
	return make([]uint8, count), nil
}

var fastPolicy = RetryPolicy{
	MaxAttempts:    4,
	InitialBackoff: time.Millisecond,
	MaxBackoff:     2 * time.Millisecond,
}

func TestRetryingSucceedsAfterTransientFailures(t *testing.T) {
	src := &scriptedSource{failures: 2, err: ErrSourceUnavailable}
	r := WithRetry(src, fastPolicy)

	d, err := r.Fetch(context.Background(), 0, 5)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if len(d) != 5 {
		t.Errorf("Expected 5 digits, got %d", len(d))
	}
	if src.calls != 3 {
		t.Errorf("Expected 3 calls, got %d", src.calls)
	}
}

func TestRetryingGivesUp(t *testing.T) {
	src := &scriptedSource{failures: 100, err: errors.New("connection refused")}
	r := WithRetry(src, fastPolicy)

	_, err := r.Fetch(context.Background(), 0, 5)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("Expected ErrSourceUnavailable, got %v", err)
	}
	if src.calls != fastPolicy.MaxAttempts {
		t.Errorf("Expected %d calls, got %d", fastPolicy.MaxAttempts, src.calls)
	}
}

func TestRetryingStopsOnPermanent(t *testing.T) {
	src := &scriptedSource{failures: 100, err: &StatusError{Code: 404}}
	r := WithRetry(src, fastPolicy)

	_, err := r.Fetch(context.Background(), 0, 5)
	if err == nil {
		t.Fatal("Expected error")
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != 404 {
		t.Errorf("Expected StatusError 404 in chain, got %v", err)
	}
	if src.calls != 1 {
		t.Errorf("Expected a single call for a permanent error, got %d", src.calls)
	}
}

func TestRetryingHonorsCancel(t *testing.T) {
	src := &scriptedSource{failures: 100, err: errors.New("down")}
	r := WithRetry(src, RetryPolicy{MaxAttempts: 50, InitialBackoff: time.Hour, MaxBackoff: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := r.Fetch(ctx, 0, 5)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("Expected ErrSourceUnavailable, got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Retry loop ignored context cancellation")
	}
}

func TestWithRetryClampsAttempts(t *testing.T) {
	src := &scriptedSource{failures: 100, err: errors.New("down")}
	r := WithRetry(src, RetryPolicy{})
	_, _ = r.Fetch(context.Background(), 0, 1)
	if src.calls != 1 {
		t.Errorf("Expected exactly one attempt, got %d", src.calls)
	}
}

func TestRetryingStaticPastEndIsPermanent(t *testing.T) {
	static, err := NewStaticSourceFrom("31415")
	if err != nil {
		t.Fatalf("NewStaticSourceFrom: %v", err)
	}
	counting := &countingSource{src: static}
	r := WithRetry(counting, RetryPolicy{MaxAttempts: 4, InitialBackoff: time.Hour, MaxBackoff: time.Hour})

	start := time.Now()
	_, err = r.Fetch(context.Background(), 5, 3)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("Expected ErrSourceUnavailable, got %v", err)
	}
	if counting.calls != 1 {
		t.Errorf("Expected a single call past the end, got %d", counting.calls)
	}
	if time.Since(start) > time.Second {
		t.Error("Permanent error waited on backoff")
	}
}

// countingSource counts calls through to src
type countingSource struct {
	src   Source
	calls int
}

func (c *countingSource) Fetch(ctx context.Context, start, count int) ([]uint8, error) {
	c.calls++
	return c.src.Fetch(ctx, start, count)
}
