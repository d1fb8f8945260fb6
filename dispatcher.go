package hookmux

import (
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Dispatcher routes triggered (namespace, event) pairs to the handlers
// registered against matching wildcard patterns.
//
// # Creating and Using
//
//	d := hookmux.New(hookmux.WithLogger(logger))
//
//	// Runs for every event in any "obj:" namespace, before default handlers.
//	d.Register("obj:*", "all", auditHandler, hookmux.WithPriority(10))
//
//	// Runs only for obj:blog/save, at the default priority (500).
//	d.Register("obj:blog", "save", saveHandler)
//
//	result, err := d.Trigger("obj:blog", "save", hookmux.Params{"title": "Hello"})
//
// # Ordering
//
// Within one (namespace pattern, event pattern) bucket, priorities are unique:
// a registration whose priority is taken moves to the next free slot above
// it, so equal priorities run in registration order. On Trigger, every
// matching bucket is folded into one run list using the same rule.
//
// # Halt and Return
//
// Handlers share the [Params] bag. A non-nil return value from a handler
// replaces params[KeyReturn]. If params[KeyHalt] is truthy after a handler
// returns, no later handler runs. Trigger returns params[KeyReturn].
//
// # Thread Safety
//
// Dispatcher is safe for concurrent use. Trigger snapshots the run list and
// releases the lock before calling handlers, so handlers may Register or
// Trigger reentrantly. Registrations made during a Trigger apply to later
// triggers only. Reentrant triggers are not cycle-checked.
type Dispatcher struct {
	mu  sync.RWMutex
	reg *registry

	patterns         *lru.Cache[string, *Pattern]
	patternCacheSize int

	defaultPriority int
	logger          *zap.Logger
	stats           *Stats
}

// Binding describes one registration, as reported by [Dispatcher.Bindings].
type Binding struct {
	ID string

	// Namespace and Event are the strings passed to Register.
	Namespace string
	Event     string

	// Priority is the resolved priority within the bucket.
	Priority int
}

// New creates an empty Dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		reg:              newRegistry(),
		patternCacheSize: DefaultPatternCacheSize,
		defaultPriority:  DefaultPriority,
		logger:           zap.NewNop(),
		stats:            NewStats(),
	}
	for _, opt := range opts {
		opt(d)
	}

	// Only fails for a non-positive size, which WithPatternCacheSize rejects.
	cache, err := lru.New[string, *Pattern](d.patternCacheSize)
	if err != nil {
		panic("hookmux: " + err.Error())
	}
	d.patterns = cache
	return d
}

// Register adds handler for every trigger whose namespace matches the
// namespace pattern and whose event matches the event pattern.
//
// The priority defaults to [DefaultPriority]; see [WithPriority]. A nil
// handler fails with [InvalidHandlerError], and a bucket with every priority
// from the requested one up to math.MaxInt taken fails with
// [PriorityExhaustedError]. Both leave the dispatcher unchanged.
func (d *Dispatcher) Register(
	namespace, event string,
	handler Handler,
	opts ...RegisterOption,
) error {
	if handler == nil {
		return &InvalidHandlerError{
			Namespace: namespace,
			Event:     event,
			Got:       "<nil>",
		}
	}

	cfg := registerConfig{priority: d.defaultPriority}
	for _, opt := range opts {
		opt(&cfg)
	}

	nsPattern := d.compile(namespace)
	evPattern := d.compile(event)

	b := &binding{
		id:        uuid.NewString(),
		namespace: namespace,
		event:     event,
		priority:  cfg.priority,
		handler:   handler,
	}

	d.mu.Lock()
	resolved, ok := d.reg.add(nsPattern, evPattern, b)
	d.mu.Unlock()
	if !ok {
		return &PriorityExhaustedError{
			Namespace: namespace,
			Event:     event,
			Priority:  cfg.priority,
		}
	}

	d.stats.IncrCounter(SCRegistrations, 1)
	d.logger.Debug("handler registered",
		zap.String("namespace", namespace),
		zap.String("event", event),
		zap.Int("requested_priority", cfg.priority),
		zap.Int("priority", resolved),
		zap.String("binding_id", b.id),
	)
	return nil
}

// RegisterFunc is Register for handlers of any shape [Adapt] accepts.
func (d *Dispatcher) RegisterFunc(
	namespace, event string,
	fn any,
	opts ...RegisterOption,
) error {
	handler, err := Adapt(fn)
	if err != nil {
		return &InvalidHandlerError{
			Namespace: namespace,
			Event:     event,
			Got:       typeName(fn),
		}
	}
	return d.Register(namespace, event, handler, opts...)
}

// Trigger runs every handler registered against patterns matching namespace
// and event, in priority order, and returns params[KeyReturn].
//
// params may be nil. Otherwise it is the bag the handlers see: missing
// reserved keys are filled in, caller values are kept, and every mutation is
// visible to the caller afterwards.
//
// If a handler returns an error, Trigger stops and returns it wrapped in
// [HandlerError]; the bag keeps whatever the earlier handlers did to it.
// Triggering a pair nothing matches is not an error.
func (d *Dispatcher) Trigger(namespace, event string, params Params) (any, error) {
	params = params.WithDefaults()

	d.mu.RLock()
	run := d.reg.runList(namespace, event)
	d.mu.RUnlock()

	d.stats.IncrCounter(SCTriggers, 1)
	d.stats.IncrCounter(SCTriggersFor.For(namespace), 1)

	if len(run) == 0 {
		d.stats.IncrCounter(SCTriggerMisses, 1)
		d.logger.Debug("trigger matched no handlers",
			zap.String("namespace", namespace),
			zap.String("event", event),
		)
		return params.Return(), nil
	}

	for i, entry := range run {
		d.stats.IncrCounter(SCHandlerCalls, 1)

		ret, err := entry.binding.handler(namespace, event, params)
		if err != nil {
			d.stats.IncrCounter(SCHandlerErrors, 1)
			return nil, &HandlerError{
				Namespace: namespace,
				Event:     event,
				Priority:  entry.priority,
				BindingID: entry.binding.id,
				Err:       err,
			}
		}
		if ret != nil {
			params[KeyReturn] = ret
		}

		if params.Halted() {
			d.stats.IncrCounter(SCHalts, 1)
			d.logger.Debug("trigger halted",
				zap.String("namespace", namespace),
				zap.String("event", event),
				zap.Int("matched", len(run)),
				zap.Int("ran", i+1),
				zap.String("binding_id", entry.binding.id),
			)
			return params.Return(), nil
		}
	}

	d.logger.Debug("trigger completed",
		zap.String("namespace", namespace),
		zap.String("event", event),
		zap.Int("matched", len(run)),
	)
	return params.Return(), nil
}

// Exists reports whether something was registered with exactly these
// namespace and event strings. It does not match patterns: after
// Register("obj:*", "save", h), Exists("obj:*", "save") is true and
// Exists("obj:blog", "save") is false, although Trigger("obj:blog", "save")
// runs h.
func (d *Dispatcher) Exists(namespace, event string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.reg.exists(namespace, event)
}

// Bindings returns every registration in registry order: namespace buckets
// and event buckets in first-registration order, then by priority.
func (d *Dispatcher) Bindings() []Binding {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.reg.bindings()
}

// Stats returns the counters this dispatcher records into.
func (d *Dispatcher) Stats() *Stats {
	return d.stats
}

// compile returns the compiled pattern for raw, using the cache.
func (d *Dispatcher) compile(raw string) *Pattern {
	if p, ok := d.patterns.Get(raw); ok {
		return p
	}
	p := CompilePattern(raw)
	d.patterns.Add(raw, p)
	return p
}
