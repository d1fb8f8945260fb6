package schema

import "github.com/rickchristie/hookmux"

// GuardOption configures [Guard].
type GuardOption func(*guard)

type guard struct {
	halt bool
}

// WithHalt makes the guard halt the chain instead of failing the trigger:
// an invalid bag sets halt and stores the *ValidationError as the return
// value, and Trigger returns it without an error.
func WithHalt() GuardOption {
	return func(g *guard) {
		g.halt = true
	}
}

// Guard returns a handler that validates the bag against s. Register it at a
// lower priority than the handlers it protects.
//
// By default an invalid bag aborts the trigger with a *ValidationError. A
// valid bag passes through untouched.
func Guard(s *Schema, opts ...GuardOption) hookmux.Handler {
	g := &guard{}
	for _, opt := range opts {
		opt(g)
	}

	return func(_, _ string, p hookmux.Params) (any, error) {
		err := s.ValidateParams(p)
		if err == nil {
			return nil, nil
		}
		if g.halt {
			p.Halt()
			return err, nil
		}
		return nil, err
	}
}
