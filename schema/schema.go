// Package schema validates hookmux parameter bags against JSON Schema.
//
// # Quick Start
//
//	s := schema.MustCompile(schema.Object(map[string]*schema.Property{
//	    "title": schema.String("Post title").MinLength(1),
//	    "tags":  schema.Array("Tags", map[string]any{"type": "string"}),
//	}, "title")) // "title" is required
//
//	// Reject bad saves before any other handler sees them.
//	d.Register("obj:*", "save", schema.Guard(s), hookmux.WithPriority(0))
//
// The reserved keys (halt, return) are never part of what is validated, so a
// schema only describes the caller's own parameters. See [Object],
// [Property] and [Guard].
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rickchristie/hookmux"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a compiled JSON Schema plus the raw map it was compiled from.
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the map the schema was compiled from.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate validates data against the schema. A nil schema accepts
// everything. data must hold JSON-shaped values; use [Schema.ValidateParams]
// for arbitrary Go values.
func (s *Schema) Validate(data map[string]any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if err := s.compiled.Validate(data); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidateParams validates the user keys of a parameter bag. Values are
// normalized through JSON first, so structs, typed slices and the like are
// checked by their JSON form.
func (s *Schema) ValidateParams(p hookmux.Params) error {
	if s == nil || s.compiled == nil {
		return nil
	}

	encoded, err := json.Marshal(p.User())
	if err != nil {
		return &ValidationError{Err: fmt.Errorf("params are not JSON-encodable: %w", err)}
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return &ValidationError{Err: fmt.Errorf("failed to decode params: %w", err)}
	}

	if err := s.compiled.Validate(doc); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidationError is returned when data does not satisfy a schema.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Compile compiles a raw schema map. A nil map compiles to a nil Schema,
// which accepts everything.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("params.json", doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := c.Compile("params.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Schema{raw: raw, compiled: compiled}, nil
}

// MustCompile is like Compile but panics on error.
// Use it for schemas defined at init time.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}
