package hookmux

import (
	"cmp"
	"math"
	"slices"
	"sort"
)

// binding is one registration.
type binding struct {
	id string

	// namespace and event are the strings passed to Register.
	namespace string
	event     string

	priority int
	handler  Handler
}

// eventBucket holds the bindings of one (namespace pattern, event pattern)
// pair, sorted ascending by priority with no duplicate priorities.
//
// bindings is replaced, never modified in place, so a slice taken under the
// read lock stays valid after the lock is released.
type eventBucket struct {
	pattern  *Pattern
	bindings []*binding
}

type namespaceBucket struct {
	pattern *Pattern
	events  []*eventBucket
	byEvent map[string]*eventBucket
}

type rawKey struct {
	namespace string
	event     string
}

// registry maps namespace patterns to event patterns to bindings. Buckets are
// kept in first-registration order; that order drives the trigger merge.
// Nothing is ever removed.
//
// registry is not thread-safe. Dispatcher guards it.
type registry struct {
	namespaces  []*namespaceBucket
	byNamespace map[string]*namespaceBucket

	// keys records the raw strings used at registration, for Exists.
	keys map[rawKey]struct{}
}

func newRegistry() *registry {
	return &registry{
		byNamespace: make(map[string]*namespaceBucket),
		keys:        make(map[rawKey]struct{}),
	}
}

// bucket returns the event bucket for the pattern pair, creating the
// namespace and event buckets if absent.
func (r *registry) bucket(ns, ev *Pattern) *eventBucket {
	nb, ok := r.byNamespace[ns.String()]
	if !ok {
		nb = &namespaceBucket{
			pattern: ns,
			byEvent: make(map[string]*eventBucket),
		}
		r.byNamespace[ns.String()] = nb
		r.namespaces = append(r.namespaces, nb)
	}

	eb, ok := nb.byEvent[ev.String()]
	if !ok {
		eb = &eventBucket{pattern: ev}
		nb.byEvent[ev.String()] = eb
		nb.events = append(nb.events, eb)
	}
	return eb
}

// add stores b under the pattern pair and returns the resolved priority.
// It returns false, storing nothing, if no free priority is left at or above
// the requested one.
func (r *registry) add(ns, ev *Pattern, b *binding) (int, bool) {
	eb := r.bucket(ns, ev)
	if !eb.insert(b) {
		return b.priority, false
	}
	r.keys[rawKey{namespace: b.namespace, event: b.event}] = struct{}{}
	return b.priority, true
}

// insert resolves b's priority against the bucket and inserts it in order.
// It reports false and leaves the bucket alone if the probe runs past
// math.MaxInt.
func (eb *eventBucket) insert(b *binding) bool {
	p, ok := probe(b.priority, func(p int) bool {
		_, found := eb.find(p)
		return found
	})
	if !ok {
		return false
	}
	b.priority = p

	i, _ := eb.find(b.priority)
	next := make([]*binding, 0, len(eb.bindings)+1)
	next = append(next, eb.bindings[:i]...)
	next = append(next, b)
	next = append(next, eb.bindings[i:]...)
	eb.bindings = next
	return true
}

// find returns the index where priority p is or would be inserted.
func (eb *eventBucket) find(p int) (int, bool) {
	i := sort.Search(len(eb.bindings), func(i int) bool {
		return eb.bindings[i].priority >= p
	})
	return i, i < len(eb.bindings) && eb.bindings[i].priority == p
}

// probe returns the first priority at or above p for which taken is false.
// It never wraps: if every priority from p to math.MaxInt is taken it returns
// math.MaxInt and false.
func probe(p int, taken func(int) bool) (int, bool) {
	for taken(p) {
		if p == math.MaxInt {
			return p, false
		}
		p++
	}
	return p, true
}

// runEntry is a binding placed in a trigger's merged run list.
type runEntry struct {
	priority int
	binding  *binding
}

// runList builds the merged run list for a trigger. Buckets are visited in
// registry order (namespace buckets, then their event buckets), and each
// bucket's bindings in ascending priority. A merged priority already taken
// by an earlier bucket is probed upward. Entries that find no free slot
// below math.MaxInt share it and run in visit order.
func (r *registry) runList(namespace, event string) []runEntry {
	var run []runEntry
	taken := make(map[int]struct{})

	for _, nb := range r.namespaces {
		if !nb.pattern.Match(namespace) {
			continue
		}
		for _, eb := range nb.events {
			if !eb.pattern.Match(event) {
				continue
			}
			for _, b := range eb.bindings {
				p, _ := probe(b.priority, func(p int) bool {
					_, ok := taken[p]
					return ok
				})
				taken[p] = struct{}{}
				run = append(run, runEntry{priority: p, binding: b})
			}
		}
	}

	slices.SortStableFunc(run, func(a, b runEntry) int {
		return cmp.Compare(a.priority, b.priority)
	})
	return run
}

// exists reports whether the exact strings were used at registration.
func (r *registry) exists(namespace, event string) bool {
	_, ok := r.keys[rawKey{namespace: namespace, event: event}]
	return ok
}

// bindings lists every binding in registry order.
func (r *registry) bindings() []Binding {
	var out []Binding
	for _, nb := range r.namespaces {
		for _, eb := range nb.events {
			for _, b := range eb.bindings {
				out = append(out, Binding{
					ID:        b.id,
					Namespace: b.namespace,
					Event:     b.event,
					Priority:  b.priority,
				})
			}
		}
	}
	return out
}
