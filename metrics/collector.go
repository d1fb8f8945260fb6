// Package metrics exports hookmux dispatcher counters to Prometheus.
//
//	d := hookmux.New()
//	prometheus.MustRegister(metrics.NewCollector(d.Stats(), "myapp"))
//
// The collector reads [hookmux.Stats] on every scrape; it keeps no state of
// its own.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rickchristie/hookmux"
)

// counter maps a Stats key to its metric description.
type counter struct {
	key  hookmux.StatKey
	desc *prometheus.Desc
}

// Collector implements prometheus.Collector over a hookmux.Stats.
type Collector struct {
	stats *hookmux.Stats

	counters          []counter
	namespaceTriggers *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for stats. namespace prefixes every
// metric name; pass "" for the bare "hookmux_" names.
func NewCollector(stats *hookmux.Stats, namespace string) *Collector {
	name := func(n string) string {
		return prometheus.BuildFQName(namespace, "hookmux", n)
	}

	return &Collector{
		stats: stats,
		counters: []counter{
			{
				key: hookmux.SCRegistrations,
				desc: prometheus.NewDesc(name("registrations_total"),
					"Handlers registered.", nil, nil),
			},
			{
				key: hookmux.SCTriggers,
				desc: prometheus.NewDesc(name("triggers_total"),
					"Trigger calls.", nil, nil),
			},
			{
				key: hookmux.SCTriggerMisses,
				desc: prometheus.NewDesc(name("trigger_misses_total"),
					"Trigger calls that matched no handler.", nil, nil),
			},
			{
				key: hookmux.SCHandlerCalls,
				desc: prometheus.NewDesc(name("handler_calls_total"),
					"Handler invocations.", nil, nil),
			},
			{
				key: hookmux.SCHalts,
				desc: prometheus.NewDesc(name("halts_total"),
					"Triggers stopped early by a handler.", nil, nil),
			},
			{
				key: hookmux.SCHandlerErrors,
				desc: prometheus.NewDesc(name("handler_errors_total"),
					"Handler invocations that returned an error.", nil, nil),
			},
		},
		namespaceTriggers: prometheus.NewDesc(name("namespace_triggers_total"),
			"Trigger calls by triggered namespace.", []string{"namespace"}, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, ctr := range c.counters {
		ch <- ctr.desc
	}
	ch <- c.namespaceTriggers
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snapshot := c.stats.Snapshot()

	for _, ctr := range c.counters {
		ch <- prometheus.MustNewConstMetric(
			ctr.desc, prometheus.CounterValue, float64(snapshot[ctr.key]),
		)
	}

	for key, value := range snapshot {
		if !key.HasPrefix(hookmux.SCTriggersFor) {
			continue
		}
		m, err := prometheus.NewConstMetric(
			c.namespaceTriggers, prometheus.CounterValue, float64(value),
			key.TrimPrefix(hookmux.SCTriggersFor),
		)
		if err != nil {
			m = prometheus.NewInvalidMetric(c.namespaceTriggers, err)
		}
		ch <- m
	}
}
