package hookmux

import "sync"

// Stats holds monotonically increasing counters describing dispatcher
// activity. Every standard key is listed in stats_keys.go.
//
// # Counters
//
// The dispatcher increments:
//   - [SCRegistrations] once per successful Register
//   - [SCTriggers] and [SCTriggersFor]+namespace once per Trigger
//   - [SCTriggerMisses] when a Trigger matched no handler
//   - [SCHandlerCalls] once per handler invocation
//   - [SCHalts] when a handler halted the chain
//   - [SCHandlerErrors] when a handler returned an error
//
// A single Stats can be shared by several dispatchers via [WithStats], in
// which case the counters aggregate across them.
//
// # Thread Safety
//
// All methods are safe for concurrent use.
type Stats struct {
	mu       sync.RWMutex
	counters map[StatKey]int64
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{
		counters: make(map[StatKey]int64),
	}
}

// IncrCounter increments a counter by delta, creating it if needed.
//
// Panics if delta is negative (counters only go up).
func (s *Stats) IncrCounter(key StatKey, delta int64) {
	if delta < 0 {
		panic("hookmux: IncrCounter called with negative delta")
	}
	s.mu.Lock()
	s.counters[key] += delta
	s.mu.Unlock()
}

// Counter returns the current value of a counter, or 0 if not set.
func (s *Stats) Counter(key StatKey) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[key]
}

// Snapshot returns a copy of all counters.
func (s *Stats) Snapshot() map[StatKey]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[StatKey]int64, len(s.counters))
	for k, v := range s.counters {
		result[k] = v
	}
	return result
}

// Reset sets every counter back to zero.
func (s *Stats) Reset() {
	s.mu.Lock()
	s.counters = make(map[StatKey]int64)
	s.mu.Unlock()
}

// GetTriggers returns the total number of Trigger calls.
func (s *Stats) GetTriggers() int64 {
	return s.Counter(SCTriggers)
}

// GetHandlerCalls returns the total number of handler invocations.
func (s *Stats) GetHandlerCalls() int64 {
	return s.Counter(SCHandlerCalls)
}
