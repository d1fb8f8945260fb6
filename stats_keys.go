package hookmux

import "strings"

// StatKey names a counter in [Stats].
//
// Standard keys use the "hookmux:" prefix. Keys ending in ":" are prefixes:
// combine them with a name via [StatKey.For].
type StatKey string

// KeyPrefix is the prefix of every standard hookmux key.
// Callers sharing a Stats instance should use their own prefix.
const KeyPrefix = "hookmux:"

// Registration tracking.
const (
	SCRegistrations = StatKey("hookmux:registrations")
)

// Trigger tracking.
const (
	SCTriggers      = StatKey("hookmux:triggers")
	SCTriggersFor   = StatKey("hookmux:triggers:") // + namespace
	SCTriggerMisses = StatKey("hookmux:trigger_misses")
)

// Handler tracking.
const (
	SCHandlerCalls  = StatKey("hookmux:handler_calls")
	SCHalts         = StatKey("hookmux:halts")
	SCHandlerErrors = StatKey("hookmux:handler_errors")
)

// For appends name to a prefix key.
//
//	SCTriggersFor.For("obj:blog") // "hookmux:triggers:obj:blog"
func (k StatKey) For(name string) StatKey {
	return k + StatKey(name)
}

// HasPrefix reports whether k starts with prefix.
func (k StatKey) HasPrefix(prefix StatKey) bool {
	return strings.HasPrefix(string(k), string(prefix))
}

// TrimPrefix returns k without prefix, or k unchanged if it does not start
// with prefix.
func (k StatKey) TrimPrefix(prefix StatKey) string {
	return strings.TrimPrefix(string(k), string(prefix))
}
