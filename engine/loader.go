package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lixenwraith/pi-catcher/digits"
	"github.com/lixenwraith/pi-catcher/status"
)

type fetchKind uint8

const (
	fetchInitial fetchKind = iota
	fetchRefill
)

func (k fetchKind) String() string {
	if k == fetchRefill {
		return "refill"
	}
	return "initial"
}

type fetchResult struct {
	kind    fetchKind
	session uint64
	offset  int
	digits  []uint8
	err     error
}

// loader runs digit fetches off the tick loop
// At most one request is live; starting another cancels it
type loader struct {
	source  digits.Source
	timeout time.Duration
	metrics *status.Registry

	ctx     context.Context
	stopAll context.CancelFunc
	cancel  context.CancelFunc
	results chan fetchResult
	wg      sync.WaitGroup
}

func newLoader(parent context.Context, source digits.Source, timeout time.Duration, metrics *status.Registry) *loader {
	ctx, stop := context.WithCancel(parent)
	return &loader{
		source:  source,
		timeout: timeout,
		metrics: metrics,
		ctx:     ctx,
		stopAll: stop,
		results: make(chan fetchResult, 4),
	}
}

func (l *loader) start(kind fetchKind, session uint64, offset, count int) {
	l.cancelInFlight()

	ctx, cancel := context.WithTimeout(l.ctx, l.timeout)
	l.cancel = cancel

	log.Printf("Digit fetch (%s) issued: session=%d offset=%d count=%d", kind, session, offset, count)

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer cancel()

		d, err := l.source.Fetch(ctx, offset, count)
		l.metrics.Inc(status.Fetches)
		if err != nil {
			l.metrics.Inc(status.FetchFailures)
			l.metrics.SetLabel(status.LastError, err.Error())
		}

		select {
		case l.results <- fetchResult{kind: kind, session: session, offset: offset, digits: d, err: err}:
		case <-l.ctx.Done():
		}
	}()
}

// poll drains completed fetches without blocking
func (l *loader) poll() []fetchResult {
	var out []fetchResult
	for {
		select {
		case r := <-l.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

func (l *loader) cancelInFlight() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// stop cancels everything and waits for fetch goroutines to exit
func (l *loader) stop() {
	l.stopAll()
	l.wg.Wait()
}
