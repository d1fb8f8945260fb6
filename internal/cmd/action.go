package cmd

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/rickchristie/hookmux"
	"gopkg.in/yaml.v3"
)

// Action is what a scripted handler does when it runs, in this order: apply
// Set, then fail, then halt, then return.
type Action struct {
	// Set is merged into the bag.
	Set map[string]any `yaml:"set,omitempty"`
	// Return is returned from the handler. Null leaves the current return
	// value alone.
	Return any `yaml:"return,omitempty"`
	// Halt stops the chain after this handler.
	Halt bool `yaml:"halt,omitempty"`
	// Fail makes the handler return an error with this message.
	Fail string `yaml:"fail,omitempty"`
}

// Handler returns a handler performing a. Each call prints a trace line
// naming the handler to out.
func (a Action) Handler(name string, out io.Writer) hookmux.Handler {
	return func(namespace, event string, p hookmux.Params) (any, error) {
		fmt.Fprintf(out, "  call %s [%s/%s]\n", name, namespace, event)

		maps.Copy(p, a.Set)
		if a.Fail != "" {
			return nil, errors.New(a.Fail)
		}
		if a.Halt {
			p.Halt()
		}
		return a.Return, nil
	}
}

func (a Action) isZero() bool {
	return len(a.Set) == 0 && a.Return == nil && !a.Halt && a.Fail == ""
}

// parseValue reads a command-line value as a YAML scalar, so true, 3 and
// null get their YAML types and anything else stays a string.
func parseValue(s string) any {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

// parseAssignment splits key=value and parses the value.
func parseAssignment(s string) (string, any, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return "", nil, fmt.Errorf("expected key=value, got %q", s)
	}
	return key, parseValue(value), nil
}

// parseAssignments builds a bag from key=value arguments.
func parseAssignments(args []string) (hookmux.Params, error) {
	p := make(hookmux.Params, len(args))
	for _, arg := range args {
		key, value, err := parseAssignment(arg)
		if err != nil {
			return nil, err
		}
		p[key] = value
	}
	return p, nil
}
