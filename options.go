package hookmux

import "go.uber.org/zap"

// DefaultPriority is the priority used when Register is called without
// [WithPriority]. Lower priorities run first.
const DefaultPriority = 500

// DefaultPatternCacheSize is the number of compiled patterns a Dispatcher
// keeps by default.
const DefaultPatternCacheSize = 256

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for debug output. A nil logger is ignored.
// The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithDefaultPriority changes the priority used when Register is called
// without [WithPriority].
func WithDefaultPriority(priority int) Option {
	return func(d *Dispatcher) {
		d.defaultPriority = priority
	}
}

// WithPatternCacheSize sets how many compiled patterns are kept. Values
// below 1 keep the default.
func WithPatternCacheSize(size int) Option {
	return func(d *Dispatcher) {
		if size > 0 {
			d.patternCacheSize = size
		}
	}
}

// WithStats makes the dispatcher record into s instead of its own Stats.
// A nil s is ignored.
func WithStats(s *Stats) Option {
	return func(d *Dispatcher) {
		if s != nil {
			d.stats = s
		}
	}
}

// RegisterOption configures a single registration.
type RegisterOption func(*registerConfig)

type registerConfig struct {
	priority int
}

// WithPriority sets the requested priority. Any int is accepted; if the slot
// is taken in the bucket the handler moves to the next free priority above.
func WithPriority(priority int) RegisterOption {
	return func(c *registerConfig) {
		c.priority = priority
	}
}
