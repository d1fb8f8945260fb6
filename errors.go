package hookmux

import (
	"errors"
	"fmt"
)

// ErrInvalidHandler is matched by every [InvalidHandlerError].
var ErrInvalidHandler = errors.New("hookmux: invalid handler")

// InvalidHandlerError is returned by Register and RegisterFunc when the
// handler is nil or is not a function shape [Adapt] understands. The
// registry is left unchanged.
type InvalidHandlerError struct {
	Namespace string
	Event     string

	// Got is the type of the rejected value ("<nil>" for nil).
	Got string
}

func (e *InvalidHandlerError) Error() string {
	return fmt.Sprintf(
		"hookmux: invalid handler for %q/%q: got %s",
		e.Namespace, e.Event, e.Got,
	)
}

// Is allows errors.Is(err, ErrInvalidHandler).
func (e *InvalidHandlerError) Is(target error) bool {
	return target == ErrInvalidHandler
}

// ErrPriorityExhausted is matched by every [PriorityExhaustedError].
var ErrPriorityExhausted = errors.New("hookmux: no free priority")

// PriorityExhaustedError is returned by Register when the requested priority
// and every priority above it are taken in the bucket. Priorities never wrap
// around past math.MaxInt. The registry is left unchanged.
type PriorityExhaustedError struct {
	Namespace string
	Event     string

	// Priority is the requested priority.
	Priority int
}

func (e *PriorityExhaustedError) Error() string {
	return fmt.Sprintf(
		"hookmux: no free priority at or above %d for %q/%q",
		e.Priority, e.Namespace, e.Event,
	)
}

// Is allows errors.Is(err, ErrPriorityExhausted).
func (e *PriorityExhaustedError) Is(target error) bool {
	return target == ErrPriorityExhausted
}

// HandlerError wraps an error returned by a handler during Trigger. The
// remaining handlers of that trigger did not run.
type HandlerError struct {
	// Namespace and Event are the triggered strings, not the patterns.
	Namespace string
	Event     string

	// Priority is the handler's slot in the merged run list.
	Priority int

	// BindingID identifies the registration whose handler failed.
	BindingID string

	Err error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf(
		"hookmux: handler %s at priority %d failed on %q/%q: %v",
		e.BindingID, e.Priority, e.Namespace, e.Event, e.Err,
	)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
