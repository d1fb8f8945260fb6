package cmd

import (
	"fmt"
	"io"
	"slices"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rickchristie/hookmux"
	"github.com/rickchristie/hookmux/metrics"
	"gopkg.in/yaml.v3"
)

// renderBag renders a bag as YAML with sorted keys. Errors are rendered by
// their message.
func renderBag(p hookmux.Params) string {
	plain := make(map[string]any, len(p))
	for k, v := range p {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		plain[k] = v
	}

	out, err := yaml.Marshal(plain)
	if err != nil {
		return fmt.Sprintf("%v\n", plain)
	}
	return string(out)
}

// diffBags returns a unified diff between two renderings of a bag, or "" if
// they are equal.
func diffBags(before, after string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "before",
		ToFile:   "after",
		Context:  3,
	})
	if err != nil {
		return ""
	}
	return diff
}

// fire triggers namespace/event with params and prints the outcome: the
// result or error, then how the handlers changed the bag.
func fire(out io.Writer, d *hookmux.Dispatcher, namespace, event string, params hookmux.Params) {
	params = params.WithDefaults()
	before := renderBag(params)

	result, err := d.Trigger(namespace, event, params)

	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
	} else {
		fmt.Fprintf(out, "result: %v\n", formatValue(result))
	}
	if params.Halted() {
		fmt.Fprintln(out, "halted")
	}

	if diff := diffBags(before, renderBag(params)); diff != "" {
		fmt.Fprint(out, diff)
	} else {
		fmt.Fprintln(out, "bag unchanged")
	}
}

func formatValue(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", v)
}

// printStats prints every counter, sorted by key.
func printStats(out io.Writer, stats *hookmux.Stats) {
	snapshot := stats.Snapshot()
	keys := make([]hookmux.StatKey, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		fmt.Fprintf(out, "%s %d\n", k, snapshot[k])
	}
}

// printMetrics prints the Prometheus text exposition of stats.
func printMetrics(out io.Writer, stats *hookmux.Stats) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(metrics.NewCollector(stats, "")); err != nil {
		return fmt.Errorf("failed to register collector: %w", err)
	}

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

// printBindings prints every registration in registry order.
func printBindings(out io.Writer, bindings []hookmux.Binding) {
	if len(bindings) == 0 {
		fmt.Fprintln(out, "no bindings")
		return
	}
	for _, b := range bindings {
		fmt.Fprintf(out, "%6d  %-20s %-20s %s\n", b.Priority, b.Namespace, b.Event, b.ID)
	}
}
