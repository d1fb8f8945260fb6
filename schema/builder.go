package schema

// Object creates an object schema with the given properties. Pass property
// names as variadic arguments to mark them as required.
//
// Example:
//
//	// "title" is required, "draft" is optional
//	schema.Object(map[string]*schema.Property{
//	    "title": schema.String("Post title"),
//	    "draft": schema.Boolean("Save as draft"),
//	}, "title")
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}

	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// Strict is like Object but rejects keys not listed in properties.
func Strict(properties map[string]*Property, required ...string) map[string]any {
	s := Object(properties, required...)
	s["additionalProperties"] = false
	return s
}

// Property is one property of an object schema.
type Property struct {
	typ         string
	description string
	enum        []any
	minimum     *float64
	maximum     *float64
	minLength   *int
	maxLength   *int
	pattern     string
	items       map[string]any
}

func (p *Property) build() map[string]any {
	m := map[string]any{}

	if p.typ != "" {
		m["type"] = p.typ
	}
	if p.description != "" {
		m["description"] = p.description
	}
	if len(p.enum) > 0 {
		m["enum"] = p.enum
	}
	if p.minimum != nil {
		m["minimum"] = *p.minimum
	}
	if p.maximum != nil {
		m["maximum"] = *p.maximum
	}
	if p.minLength != nil {
		m["minLength"] = *p.minLength
	}
	if p.maxLength != nil {
		m["maxLength"] = *p.maxLength
	}
	if p.pattern != "" {
		m["pattern"] = p.pattern
	}
	if p.items != nil {
		m["items"] = p.items
	}
	return m
}

// String creates a string property.
//
//	schema.String("Slug").Pattern(`^[a-z0-9-]+$`)
//	schema.String("Status").Enum("draft", "published")
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// Integer creates an integer property.
//
//	schema.Integer("Page").Min(1)
func Integer(description string) *Property {
	return &Property{typ: "integer", description: description}
}

// Number creates a number property.
func Number(description string) *Property {
	return &Property{typ: "number", description: description}
}

// Boolean creates a boolean property.
func Boolean(description string) *Property {
	return &Property{typ: "boolean", description: description}
}

// Array creates an array property with the given item schema.
//
//	schema.Array("Tags", map[string]any{"type": "string"})
func Array(description string, items map[string]any) *Property {
	return &Property{typ: "array", description: description, items: items}
}

// Enum sets the allowed values.
func (p *Property) Enum(values ...any) *Property {
	p.enum = values
	return p
}

// Min sets the minimum for number and integer properties.
func (p *Property) Min(min float64) *Property {
	p.minimum = &min
	return p
}

// Max sets the maximum for number and integer properties.
func (p *Property) Max(max float64) *Property {
	p.maximum = &max
	return p
}

// MinLength sets the minimum length for string properties.
func (p *Property) MinLength(min int) *Property {
	p.minLength = &min
	return p
}

// MaxLength sets the maximum length for string properties.
func (p *Property) MaxLength(max int) *Property {
	p.maxLength = &max
	return p
}

// Pattern sets a regexp that string values must match.
func (p *Property) Pattern(pattern string) *Property {
	p.pattern = pattern
	return p
}
