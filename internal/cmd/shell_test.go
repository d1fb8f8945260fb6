package cmd

import (
	"bytes"
	"testing"

	"github.com/rickchristie/hookmux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell() (*Shell, *bytes.Buffer, *hookmux.Dispatcher) {
	var out bytes.Buffer
	d := hookmux.New()
	return NewShell(d, &out), &out, d
}

func exec(t *testing.T, s *Shell, line string) {
	t.Helper()
	quit, err := s.Exec(line)
	require.NoError(t, err)
	require.False(t, quit)
}

func TestShell_OnAndFire(t *testing.T) {
	s, out, d := newTestShell()

	exec(t, s, "on obj:* save priority=5 name=first set seen=true")
	exec(t, s, "on obj:blog save return ok halt")
	exec(t, s, "on obj:blog save name=never")
	assert.Contains(t, out.String(), "registered first\n")
	assert.Contains(t, out.String(), "registered h2\n")

	out.Reset()
	exec(t, s, "fire obj:blog save title=Hello count=3")

	assert.Contains(t, out.String(), "call first [obj:blog/save]")
	assert.Contains(t, out.String(), "call h2 [obj:blog/save]")
	assert.NotContains(t, out.String(), "call never")
	assert.Contains(t, out.String(), "result: ok\n")
	assert.Contains(t, out.String(), "halted\n")
	assert.Contains(t, out.String(), "+seen: true\n")
	assert.Equal(t, int64(2), d.Stats().GetHandlerCalls())
}

func TestShell_Fail(t *testing.T) {
	s, out, _ := newTestShell()

	exec(t, s, "on obj save fail denied")
	exec(t, s, "fire obj save")

	assert.Contains(t, out.String(), "error: ")
	assert.Contains(t, out.String(), "denied")
}

func TestShell_Inspect(t *testing.T) {
	s, out, _ := newTestShell()

	exec(t, s, "list")
	assert.Contains(t, out.String(), "no bindings")

	exec(t, s, "on obj:* all priority=7")
	out.Reset()

	exec(t, s, "exists obj:* all")
	exec(t, s, "exists obj:blog all")
	assert.Equal(t, "true\nfalse\n", out.String())

	out.Reset()
	exec(t, s, "list")
	assert.Contains(t, out.String(), "obj:*")
	assert.Contains(t, out.String(), "     7")

	exec(t, s, "fire obj:x save")
	out.Reset()
	exec(t, s, "stats")
	assert.Contains(t, out.String(), "hookmux:registrations 1\n")
	assert.Contains(t, out.String(), "hookmux:triggers 1\n")

	out.Reset()
	exec(t, s, "metrics")
	assert.Contains(t, out.String(), "hookmux_handler_calls_total 1\n")

	out.Reset()
	exec(t, s, "help")
	assert.Contains(t, out.String(), "Commands:")
}

func TestShell_Quit(t *testing.T) {
	s, _, _ := newTestShell()

	for _, line := range []string{"quit", "exit"} {
		quit, err := s.Exec(line)
		require.NoError(t, err)
		assert.True(t, quit)
	}

	quit, err := s.Exec("   ")
	require.NoError(t, err)
	assert.False(t, quit)
}

func TestShell_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "unknown command", line: "launch"},
		{name: "on without event", line: "on obj"},
		{name: "bad priority", line: "on obj save priority=high"},
		{name: "set without value", line: "on obj save set"},
		{name: "set without equals", line: "on obj save set flag"},
		{name: "unknown option", line: "on obj save loudly"},
		{name: "fire without event", line: "fire obj"},
		{name: "fire bad param", line: "fire obj save title"},
		{name: "exists arity", line: "exists obj"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _, _ := newTestShell()
			_, err := s.Exec(tc.line)
			assert.Error(t, err)
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{input: "true", expected: true},
		{input: "3", expected: 3},
		{input: "1.5", expected: 1.5},
		{input: "null", expected: nil},
		{input: "", expected: nil},
		{input: "hello", expected: "hello"},
		{input: "'3'", expected: "3"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseValue(tc.input))
		})
	}
}
