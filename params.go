package hookmux

// Reserved parameter keys. Every bag passed to a handler contains both.
const (
	// KeyHalt stops the run list after the current handler when truthy.
	// The strings "", "0" and "false" are not truthy.
	KeyHalt = "halt"

	// KeyReturn holds the value Trigger produces.
	KeyReturn = "return"
)

// Params is the mutable parameter bag shared by every handler of a single
// Trigger call. Handlers communicate through it: earlier handlers can leave
// values for later ones, set [KeyReturn], or set [KeyHalt] to stop the chain.
//
// Params is a map, so the bag a caller passes to Trigger is the same bag the
// handlers mutate. Its lifetime is one Trigger call.
type Params map[string]any

// WithDefaults fills the reserved keys the caller did not set and returns the
// bag. A nil bag is replaced by a fresh one. Trigger calls it on the bag it
// receives.
func (p Params) WithDefaults() Params {
	if p == nil {
		p = make(Params, 2)
	}
	if _, ok := p[KeyHalt]; !ok {
		p[KeyHalt] = false
	}
	if _, ok := p[KeyReturn]; !ok {
		p[KeyReturn] = nil
	}
	return p
}

// Halt marks the chain to stop after the current handler returns.
func (p Params) Halt() {
	p[KeyHalt] = true
}

// Halted reports whether [KeyHalt] holds a truthy value.
func (p Params) Halted() bool {
	return truthy(p[KeyHalt])
}

// Return returns the current value of [KeyReturn].
func (p Params) Return() any {
	return p[KeyReturn]
}

// SetReturn sets [KeyReturn]. Returning a non-nil value from a handler has
// the same effect.
func (p Params) SetReturn(v any) {
	p[KeyReturn] = v
}

// Get returns the value for key and whether it was present.
func (p Params) Get(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

// GetString returns the string stored at key, or "" if absent or not a string.
func (p Params) GetString(key string) string {
	s, _ := p[key].(string)
	return s
}

// User returns a copy of the bag without the reserved keys.
func (p Params) User() map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		if k == KeyHalt || k == KeyReturn {
			continue
		}
		out[k] = v
	}
	return out
}

// truthy reports whether a halt value should stop the chain. Booleans are
// taken as-is; numbers are truthy when non-zero; strings when non-empty and
// not "0" or "false".
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "0" && t != "false"
	case int:
		return t != 0
	case int8:
		return t != 0
	case int16:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint:
		return t != 0
	case uint8:
		return t != 0
	case uint16:
		return t != 0
	case uint32:
		return t != 0
	case uint64:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}
