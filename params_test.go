package hookmux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_WithDefaults(t *testing.T) {
	type expected struct {
		halt any
		ret  any
		size int
	}

	tests := []struct {
		name     string
		input    Params
		expected expected
	}{
		{
			name:     "nil bag gets defaults",
			input:    nil,
			expected: expected{halt: false, ret: nil, size: 2},
		},
		{
			name:     "user keys are kept",
			input:    Params{"title": "x"},
			expected: expected{halt: false, ret: nil, size: 3},
		},
		{
			name:     "caller halt wins",
			input:    Params{KeyHalt: true},
			expected: expected{halt: true, ret: nil, size: 2},
		},
		{
			name:     "caller return wins",
			input:    Params{KeyReturn: 7},
			expected: expected{halt: false, ret: 7, size: 2},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.input.WithDefaults()

			assert.Equal(t, tc.expected.halt, p[KeyHalt])
			assert.Equal(t, tc.expected.ret, p[KeyReturn])
			assert.Len(t, p, tc.expected.size)
		})
	}
}

func TestParams_WithDefaults_SameMap(t *testing.T) {
	p := Params{"a": 1}
	out := p.WithDefaults()

	out["b"] = 2
	assert.Equal(t, 2, p["b"])
}

func TestParams_Accessors(t *testing.T) {
	p := Params{"title": "hello", "count": 3}.WithDefaults()

	assert.False(t, p.Halted())
	p.Halt()
	assert.True(t, p.Halted())

	assert.Nil(t, p.Return())
	p.SetReturn("done")
	assert.Equal(t, "done", p.Return())

	assert.Equal(t, "hello", p.GetString("title"))
	assert.Equal(t, "", p.GetString("count"))
	assert.Equal(t, "", p.GetString("missing"))

	v, ok := p.Get("count")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = p.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, map[string]any{"title": "hello", "count": 3}, p.User())
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{name: "nil", value: nil, expected: false},
		{name: "true", value: true, expected: true},
		{name: "false", value: false, expected: false},
		{name: "int one", value: 1, expected: true},
		{name: "int zero", value: 0, expected: false},
		{name: "int64 negative", value: int64(-1), expected: true},
		{name: "uint zero", value: uint(0), expected: false},
		{name: "float zero", value: 0.0, expected: false},
		{name: "float non-zero", value: 0.5, expected: true},
		{name: "empty string", value: "", expected: false},
		{name: "zero string", value: "0", expected: false},
		{name: "false string", value: "false", expected: false},
		{name: "other string", value: "stop", expected: true},
		{name: "struct", value: struct{}{}, expected: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, truthy(tc.value))
		})
	}
}
