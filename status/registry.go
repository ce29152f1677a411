package status

import "sync/atomic"

// Session counters written by the engine loop and the digit loader
const (
	Ticks         = "session.ticks"
	Spawned       = "pies.spawned"
	Matched       = "pies.matched"
	Mismatched    = "pies.mismatched"
	Missed        = "pies.missed"
	Exhausted     = "pies.exhausted"
	Sessions      = "sessions.started"
	Fetches       = "digits.fetches"
	FetchFailures = "digits.fetch_failures"
)

// Labels
const (
	LastError = "last_error"
	SceneName = "scene"
)

// sessionCounters are zeroed when a new session starts
var sessionCounters = []string{Ticks, Spawned, Matched, Mismatched, Missed, Exhausted}

// Registry is the metrics facade shared across goroutines
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Labels   *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Labels:   NewMetricMap[AtomicString](),
	}
}

// Inc adds one to the named counter
func (r *Registry) Inc(name string) {
	r.Counters.Get(name).Add(1)
}

// Count reads the named counter
func (r *Registry) Count(name string) int64 {
	return r.Counters.Get(name).Load()
}

// SetLabel stores a string metric
func (r *Registry) SetLabel(name, val string) {
	r.Labels.Get(name).Store(val)
}

// Label reads a string metric
func (r *Registry) Label(name string) string {
	return r.Labels.Get(name).Load()
}

// ResetSession zeroes per-session counters and the last error; lifetime counters are kept
func (r *Registry) ResetSession() {
	for _, name := range sessionCounters {
		r.Counters.Get(name).Store(0)
	}
	r.Labels.Get(LastError).Store("")
}

// Snapshot copies all counters in key order
func (r *Registry) Snapshot() map[string]int64 {
	out := make(map[string]int64, r.Counters.Count())
	r.Counters.Range(func(key string, ptr *atomic.Int64) {
		out[key] = ptr.Load()
	})
	return out
}
