package metrics

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rickchristie/hookmux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ExportsDispatcherStats(t *testing.T) {
	d := hookmux.New()

	require.NoError(t, d.Register("obj:*", "save", func(_, _ string, p hookmux.Params) (any, error) {
		if p.GetString("title") == "" {
			p.Halt()
		}
		return nil, nil
	}))
	require.NoError(t, d.Register("obj:*", "delete", func(_, _ string, _ hookmux.Params) (any, error) {
		return nil, errors.New("denied")
	}))

	_, err := d.Trigger("obj:blog", "save", hookmux.Params{"title": "x"})
	require.NoError(t, err)
	_, err = d.Trigger("obj:blog", "save", nil)
	require.NoError(t, err)
	_, err = d.Trigger("obj:comment", "delete", nil)
	require.Error(t, err)
	_, err = d.Trigger("user", "save", nil)
	require.NoError(t, err)

	c := NewCollector(d.Stats(), "")
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	expected := `
# HELP hookmux_halts_total Triggers stopped early by a handler.
# TYPE hookmux_halts_total counter
hookmux_halts_total 1
# HELP hookmux_handler_calls_total Handler invocations.
# TYPE hookmux_handler_calls_total counter
hookmux_handler_calls_total 3
# HELP hookmux_handler_errors_total Handler invocations that returned an error.
# TYPE hookmux_handler_errors_total counter
hookmux_handler_errors_total 1
# HELP hookmux_namespace_triggers_total Trigger calls by triggered namespace.
# TYPE hookmux_namespace_triggers_total counter
hookmux_namespace_triggers_total{namespace="obj:blog"} 2
hookmux_namespace_triggers_total{namespace="obj:comment"} 1
hookmux_namespace_triggers_total{namespace="user"} 1
# HELP hookmux_registrations_total Handlers registered.
# TYPE hookmux_registrations_total counter
hookmux_registrations_total 2
# HELP hookmux_trigger_misses_total Trigger calls that matched no handler.
# TYPE hookmux_trigger_misses_total counter
hookmux_trigger_misses_total 1
# HELP hookmux_triggers_total Trigger calls.
# TYPE hookmux_triggers_total counter
hookmux_triggers_total 4
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected)))
}

func TestCollector_Namespace(t *testing.T) {
	stats := hookmux.NewStats()
	stats.IncrCounter(hookmux.SCTriggers, 5)

	c := NewCollector(stats, "myapp")

	expected := `
# HELP myapp_hookmux_triggers_total Trigger calls.
# TYPE myapp_hookmux_triggers_total counter
myapp_hookmux_triggers_total 5
`
	assert.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected), "myapp_hookmux_triggers_total"))
	// Six fixed counters, no namespace series yet.
	assert.Equal(t, 6, testutil.CollectAndCount(c))
}
