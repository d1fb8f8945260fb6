package schema

import (
	"errors"
	"testing"

	"github.com/rickchristie/hookmux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postSchema() map[string]any {
	return Object(map[string]*Property{
		"title": String("Post title").MinLength(1),
		"page":  Integer("Page").Min(1),
		"state": String("State").Enum("draft", "published"),
		"tags":  Array("Tags", map[string]any{"type": "string"}),
	}, "title")
}

func TestCompile(t *testing.T) {
	type expected struct {
		isNil  bool
		hasErr bool
	}

	tests := []struct {
		name     string
		raw      map[string]any
		expected expected
	}{
		{
			name:     "nil schema returns nil",
			raw:      nil,
			expected: expected{isNil: true},
		},
		{
			name:     "builder schema compiles",
			raw:      postSchema(),
			expected: expected{isNil: false},
		},
		{
			name:     "invalid type keyword fails",
			raw:      map[string]any{"type": 12},
			expected: expected{isNil: true, hasErr: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Compile(tc.raw)

			if tc.expected.hasErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tc.expected.isNil {
				assert.Nil(t, s)
			} else {
				require.NotNil(t, s)
				assert.Equal(t, tc.raw, s.Raw())
			}
		})
	}
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCompile(map[string]any{"type": 12}) })
	assert.NotPanics(t, func() { MustCompile(postSchema()) })
}

func TestSchema_ValidateParams(t *testing.T) {
	type tag string

	tests := []struct {
		name    string
		params  hookmux.Params
		invalid bool
	}{
		{
			name:   "valid bag",
			params: hookmux.Params{"title": "Hello", "page": 2, "state": "draft"},
		},
		{
			name:   "reserved keys are ignored",
			params: hookmux.Params{"title": "Hello", hookmux.KeyHalt: false, hookmux.KeyReturn: nil},
		},
		{
			name:   "typed slices are normalized",
			params: hookmux.Params{"title": "Hello", "tags": []tag{"a", "b"}},
		},
		{
			name:    "missing required key",
			params:  hookmux.Params{"page": 1},
			invalid: true,
		},
		{
			name:    "empty title",
			params:  hookmux.Params{"title": ""},
			invalid: true,
		},
		{
			name:    "page below minimum",
			params:  hookmux.Params{"title": "x", "page": 0},
			invalid: true,
		},
		{
			name:    "state outside enum",
			params:  hookmux.Params{"title": "x", "state": "archived"},
			invalid: true,
		},
		{
			name:    "tags of wrong type",
			params:  hookmux.Params{"title": "x", "tags": []int{1}},
			invalid: true,
		},
		{
			name:    "not JSON-encodable",
			params:  hookmux.Params{"title": "x", "ch": make(chan int)},
			invalid: true,
		},
	}

	s := MustCompile(postSchema())

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := s.ValidateParams(tc.params)

			if !tc.invalid {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestSchema_Validate(t *testing.T) {
	s := MustCompile(Strict(map[string]*Property{
		"name": String("Name"),
	}, "name"))

	assert.NoError(t, s.Validate(map[string]any{"name": "a"}))
	assert.Error(t, s.Validate(map[string]any{"name": "a", "extra": true}))
	assert.Error(t, s.Validate(map[string]any{}))
}

func TestSchema_NilAcceptsEverything(t *testing.T) {
	var s *Schema

	assert.NoError(t, s.Validate(map[string]any{"foo": "bar"}))
	assert.NoError(t, s.ValidateParams(hookmux.Params{"foo": "bar"}))
	assert.Nil(t, s.Raw())
}

func TestProperty_Build(t *testing.T) {
	built := Object(map[string]*Property{
		"slug": String("Slug").Pattern(`^[a-z]+$`).MaxLength(10),
		"rank": Number("Rank").Min(0).Max(1),
	}, "slug")

	props := built["properties"].(map[string]any)
	assert.Equal(t, map[string]any{
		"type":        "string",
		"description": "Slug",
		"pattern":     `^[a-z]+$`,
		"maxLength":   10,
	}, props["slug"])
	assert.Equal(t, map[string]any{
		"type":        "number",
		"description": "Rank",
		"minimum":     0.0,
		"maximum":     1.0,
	}, props["rank"])
	assert.Equal(t, []string{"slug"}, built["required"])
}

func TestGuard(t *testing.T) {
	s := MustCompile(postSchema())

	t.Run("valid bag continues the chain", func(t *testing.T) {
		d := hookmux.New()
		require.NoError(t, d.Register("obj:*", "save", Guard(s), hookmux.WithPriority(0)))
		require.NoError(t, d.Register("obj:blog", "save", func(_, _ string, p hookmux.Params) (any, error) {
			return "saved " + p.GetString("title"), nil
		}))

		result, err := d.Trigger("obj:blog", "save", hookmux.Params{"title": "Hello"})

		require.NoError(t, err)
		assert.Equal(t, "saved Hello", result)
	})

	t.Run("invalid bag fails the trigger", func(t *testing.T) {
		d := hookmux.New()
		ran := false
		require.NoError(t, d.Register("obj:*", "save", Guard(s), hookmux.WithPriority(0)))
		require.NoError(t, d.Register("obj:blog", "save", func(_, _ string, _ hookmux.Params) (any, error) {
			ran = true
			return nil, nil
		}))

		_, err := d.Trigger("obj:blog", "save", hookmux.Params{})

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		var handlerErr *hookmux.HandlerError
		assert.True(t, errors.As(err, &handlerErr))
		assert.False(t, ran)
	})

	t.Run("invalid bag halts with WithHalt", func(t *testing.T) {
		d := hookmux.New()
		ran := false
		require.NoError(t, d.Register("obj:*", "save", Guard(s, WithHalt()), hookmux.WithPriority(0)))
		require.NoError(t, d.Register("obj:blog", "save", func(_, _ string, _ hookmux.Params) (any, error) {
			ran = true
			return nil, nil
		}))

		params := hookmux.Params{"title": ""}
		result, err := d.Trigger("obj:blog", "save", params)

		require.NoError(t, err)
		assert.IsType(t, &ValidationError{}, result)
		assert.True(t, params.Halted())
		assert.False(t, ran)
	})
}
