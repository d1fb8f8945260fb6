package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/rickchristie/hookmux"
	"github.com/rickchristie/hookmux/schema"
	"gopkg.in/yaml.v3"
)

// Script is a YAML file of bindings to register and triggers to fire.
//
//	bindings:
//	  - name: audit
//	    namespace: "obj:*"
//	    event: all
//	    priority: 10
//	    action:
//	      set: {audited: true}
//	triggers:
//	  - namespace: obj:blog
//	    event: save
//	    params: {title: Hello}
type Script struct {
	Bindings []ScriptBinding `yaml:"bindings"`
	Triggers []ScriptTrigger `yaml:"triggers"`
}

// ScriptBinding is one handler registration. A binding either performs an
// Action or, when Schema is set, validates the bag against it. Setting both
// is an error.
type ScriptBinding struct {
	Name      string `yaml:"name"`
	Namespace string `yaml:"namespace"`
	Event     string `yaml:"event"`
	// Priority is optional; the dispatcher default applies when absent.
	Priority *int   `yaml:"priority"`
	Action   Action `yaml:"action"`

	Schema map[string]any `yaml:"schema"`
	// HaltOnInvalid makes a schema binding halt instead of failing.
	HaltOnInvalid bool `yaml:"halt_on_invalid"`
}

// ScriptTrigger is one Trigger call.
type ScriptTrigger struct {
	Namespace string         `yaml:"namespace"`
	Event     string         `yaml:"event"`
	Params    map[string]any `yaml:"params"`
}

// LoadScript decodes a script. Unknown fields are rejected.
func LoadScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	return &s, nil
}

// Register adds every binding of the script to d. Handlers print their
// trace lines to out.
func (s *Script) Register(d *hookmux.Dispatcher, out io.Writer) error {
	for i, b := range s.Bindings {
		name := b.Name
		if name == "" {
			name = fmt.Sprintf("binding-%d", i+1)
		}

		handler, err := b.handler(name, out)
		if err != nil {
			return fmt.Errorf("binding %s: %w", name, err)
		}

		var opts []hookmux.RegisterOption
		if b.Priority != nil {
			opts = append(opts, hookmux.WithPriority(*b.Priority))
		}
		if err := d.Register(b.Namespace, b.Event, handler, opts...); err != nil {
			return fmt.Errorf("binding %s: %w", name, err)
		}
	}
	return nil
}

func (b ScriptBinding) handler(name string, out io.Writer) (hookmux.Handler, error) {
	if b.Schema == nil {
		return b.Action.Handler(name, out), nil
	}
	if !b.Action.isZero() {
		return nil, errors.New("schema and action cannot be combined")
	}

	compiled, err := schema.Compile(b.Schema)
	if err != nil {
		return nil, err
	}
	var opts []schema.GuardOption
	if b.HaltOnInvalid {
		opts = append(opts, schema.WithHalt())
	}
	guard := schema.Guard(compiled, opts...)

	return func(namespace, event string, p hookmux.Params) (any, error) {
		fmt.Fprintf(out, "  call %s [%s/%s]\n", name, namespace, event)
		return guard(namespace, event, p)
	}, nil
}

// Run registers the bindings and fires every trigger in order. Handler
// errors are printed and do not stop the script.
func (s *Script) Run(d *hookmux.Dispatcher, out io.Writer) error {
	if err := s.Register(d, out); err != nil {
		return err
	}

	for _, t := range s.Triggers {
		fmt.Fprintf(out, "== %s/%s\n", t.Namespace, t.Event)
		fire(out, d, t.Namespace, t.Event, hookmux.Params(t.Params))
	}
	return nil
}
