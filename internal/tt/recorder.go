// Package tt holds test helpers shared by hookmux packages.
package tt

import (
	"sync"

	"github.com/rickchristie/hookmux"
)

// Call is one recorded handler invocation.
type Call struct {
	Name      string
	Namespace string
	Event     string
}

// Recorder hands out named handlers and records the order they run in.
// It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Handler returns a handler that records name and returns nothing.
func (r *Recorder) Handler(name string) hookmux.Handler {
	return r.Returning(name, nil)
}

// Returning returns a handler that records name and returns ret.
func (r *Recorder) Returning(name string, ret any) hookmux.Handler {
	return func(ns, ev string, _ hookmux.Params) (any, error) {
		r.record(name, ns, ev)
		return ret, nil
	}
}

// Halting returns a handler that records name, halts the chain and
// returns ret.
func (r *Recorder) Halting(name string, ret any) hookmux.Handler {
	return func(ns, ev string, p hookmux.Params) (any, error) {
		r.record(name, ns, ev)
		p.Halt()
		return ret, nil
	}
}

// Failing returns a handler that records name and returns err.
func (r *Recorder) Failing(name string, err error) hookmux.Handler {
	return func(ns, ev string, _ hookmux.Params) (any, error) {
		r.record(name, ns, ev)
		return nil, err
	}
}

// Wrap returns a handler that records name and then calls h.
func (r *Recorder) Wrap(name string, h hookmux.Handler) hookmux.Handler {
	return func(ns, ev string, p hookmux.Params) (any, error) {
		r.record(name, ns, ev)
		return h(ns, ev, p)
	}
}

func (r *Recorder) record(name, ns, ev string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Name: name, Namespace: ns, Event: ev})
}

// Calls returns a copy of every recorded call.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]Call, len(r.calls))
	copy(result, r.calls)
	return result
}

// Names returns the recorded handler names in call order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		names = append(names, c.Name)
	}
	return names
}

// Count returns how many times the handler called name ran.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
