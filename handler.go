package hookmux

import "fmt"

// Handler is the function run for every matching trigger.
//
// It receives the triggered namespace and event strings (not the patterns it
// was registered with) and the shared parameter bag. A non-nil return value
// replaces params[KeyReturn]; nil leaves it untouched. A non-nil error aborts
// the trigger and is returned to its caller wrapped in [HandlerError].
//
// Example:
//
//	d.Register("obj:*", "save", func(ns, ev string, p hookmux.Params) (any, error) {
//	    if p.GetString("title") == "" {
//	        p.Halt()
//	        return false, nil
//	    }
//	    return nil, nil
//	})
type Handler func(namespace, event string, params Params) (any, error)

// Adapt converts fn into a Handler. It is the runtime check behind
// RegisterFunc, for callers that hold handlers of mixed shapes.
//
// Accepted shapes:
//
//	Handler
//	func(namespace, event string, params Params) (any, error)
//	func(namespace, event string, params Params) any
//	func(namespace, event string, params Params) error
//	func(namespace, event string, params Params)
//	func(params Params) (any, error)
//	func(params Params) any
//	func(params Params)
//
// Anything else, including a nil function, fails with [ErrInvalidHandler].
func Adapt(fn any) (Handler, error) {
	switch h := fn.(type) {
	case Handler:
		if h != nil {
			return h, nil
		}
	case func(string, string, Params) (any, error):
		if h != nil {
			return h, nil
		}
	case func(string, string, Params) any:
		if h != nil {
			return func(ns, ev string, p Params) (any, error) {
				return h(ns, ev, p), nil
			}, nil
		}
	case func(string, string, Params) error:
		if h != nil {
			return func(ns, ev string, p Params) (any, error) {
				return nil, h(ns, ev, p)
			}, nil
		}
	case func(string, string, Params):
		if h != nil {
			return func(ns, ev string, p Params) (any, error) {
				h(ns, ev, p)
				return nil, nil
			}, nil
		}
	case func(Params) (any, error):
		if h != nil {
			return func(_, _ string, p Params) (any, error) {
				return h(p)
			}, nil
		}
	case func(Params) any:
		if h != nil {
			return func(_, _ string, p Params) (any, error) {
				return h(p), nil
			}, nil
		}
	case func(Params):
		if h != nil {
			return func(_, _ string, p Params) (any, error) {
				h(p)
				return nil, nil
			}, nil
		}
	}
	return nil, &InvalidHandlerError{Got: typeName(fn)}
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", v)
}
