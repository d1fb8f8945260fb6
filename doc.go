// Package hookmux provides an in-process, synchronous publish/subscribe
// dispatcher keyed by (namespace, event) wildcard patterns.
//
// Handlers are registered against a namespace pattern and an event pattern.
// Triggering a concrete (namespace, event) pair runs every handler whose
// patterns both match, in priority order, on the caller's goroutine. The
// handlers share one mutable [Params] bag: they can pass data along, set the
// value Trigger returns, and halt the chain.
//
// # Quick Start
//
//	d := hookmux.New()
//
//	// Validate every save in any "obj:" namespace first.
//	d.Register("obj:*", "save", func(ns, ev string, p hookmux.Params) (any, error) {
//	    if p.GetString("title") == "" {
//	        p.Halt()
//	        return "title required", nil
//	    }
//	    return nil, nil
//	}, hookmux.WithPriority(10))
//
//	// Then persist blog posts.
//	d.Register("obj:blog", "save", func(ns, ev string, p hookmux.Params) (any, error) {
//	    return store.Save(p.User())
//	})
//
//	result, err := d.Trigger("obj:blog", "save", hookmux.Params{"title": "Hello"})
//
// # Patterns
//
// Namespace and event patterns are compiled independently by
// [CompilePattern]:
//
//	obj:*     matches obj:blog, obj:comment, obj: (not user)
//	*.saved   matches post.saved, .saved
//	all       matches everything (only when it is the whole pattern)
//	a.b       matches a.b only ("." is literal)
//
// # Priorities
//
// Lower priorities run first. The default is [DefaultPriority] (500). If the
// requested priority is already used in the same (namespace pattern, event
// pattern) bucket, the handler takes the next free priority above it, so
// handlers registered at the same priority run in registration order.
//
// When several buckets match one trigger, their handlers are merged into a
// single run list: buckets are visited in registration order and a priority
// already taken in the merged list is pushed up the same way.
//
// # Halt and Return
//
// After each handler, a non-nil return value is stored in params[KeyReturn].
// If params[KeyHalt] is then truthy, the remaining handlers are skipped.
// Trigger returns params[KeyReturn] either way.
//
// # Errors
//
// Register rejects nil handlers with [InvalidHandlerError]. Priorities never
// wrap around: if no free slot is left up to math.MaxInt, Register fails with
// [PriorityExhaustedError]. An error returned by a handler stops the trigger
// immediately and is returned wrapped in [HandlerError]; handlers are not
// isolated from each other.
//
// # Exists
//
// [Dispatcher.Exists] answers whether exactly this (namespace, event) string
// pair was used in Register. It never matches patterns, so it can disagree
// with what Trigger would run.
//
// # Subpackages
//
//   - schema: JSON Schema validation of a Params bag, as a Handler
//   - metrics: Prometheus collector over dispatcher [Stats]
//
// The hookmux command (cmd/hookmux) runs YAML scripts of bindings and
// triggers, or an interactive shell, against a fresh Dispatcher.
package hookmux
