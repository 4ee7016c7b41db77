package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromHooks records store and shell events as Prometheus metrics.
// Each PromHooks owns its registry, so several can coexist in tests.
type PromHooks struct {
	registry *prometheus.Registry

	loads     *prometheus.CounterVec
	skipped   prometheus.Counter
	mutations *prometheus.CounterVec
	flushes   *prometheus.CounterVec
	flushTime prometheus.Histogram
	flushSize prometheus.Gauge
	nodes     *prometheus.GaugeVec
	edges     prometheus.Gauge
	commands  *prometheus.CounterVec
}

// NewPromHooks creates the tabmind metrics and registers them on a new
// registry.
func NewPromHooks() *PromHooks {
	h := &PromHooks{
		registry: prometheus.NewRegistry(),
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabmind_loads_total",
				Help: "Snapshot loads by result.",
			},
			[]string{"result"},
		),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tabmind_skipped_edges_total",
			Help: "Malformed edge entries dropped while loading.",
		}),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabmind_mutations_total",
				Help: "Graph mutations by operation and result.",
			},
			[]string{"op", "result"},
		),
		flushes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabmind_flushes_total",
				Help: "Snapshot writes by result.",
			},
			[]string{"result"},
		),
		flushTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tabmind_flush_duration_seconds",
			Help:    "Time spent writing the snapshot.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		flushSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tabmind_snapshot_bytes",
			Help: "Size of the last written snapshot.",
		}),
		nodes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tabmind_nodes",
				Help: "Nodes in the graph by kind.",
			},
			[]string{"kind"},
		),
		edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tabmind_edges",
			Help: "Edges in the graph.",
		}),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabmind_commands_total",
				Help: "Shell commands by name and result.",
			},
			[]string{"command", "result"},
		),
	}
	h.registry.MustRegister(h.loads, h.skipped, h.mutations, h.flushes,
		h.flushTime, h.flushSize, h.nodes, h.edges, h.commands)
	return h
}

// Registry returns the registry holding the tabmind metrics.
func (h *PromHooks) Registry() *prometheus.Registry { return h.registry }

// WriteTextfile writes the current metrics in the text exposition format,
// for pickup by the node_exporter textfile collector.
func (h *PromHooks) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, h.registry)
}

func (h *PromHooks) OnLoad(_ context.Context, _ string, skipped int, _ time.Duration, err error) {
	h.loads.WithLabelValues(result(err)).Inc()
	h.skipped.Add(float64(skipped))
}

func (h *PromHooks) OnMutation(_ context.Context, op string, err error) {
	h.mutations.WithLabelValues(op, result(err)).Inc()
}

func (h *PromHooks) OnFlush(_ context.Context, _ string, size int, d time.Duration, err error) {
	h.flushes.WithLabelValues(result(err)).Inc()
	h.flushTime.Observe(d.Seconds())
	if err == nil {
		h.flushSize.Set(float64(size))
	}
}

func (h *PromHooks) OnGraphSize(_ context.Context, urls, topics, edges int) {
	h.nodes.WithLabelValues("url").Set(float64(urls))
	h.nodes.WithLabelValues("topic").Set(float64(topics))
	h.edges.Set(float64(edges))
}

func (h *PromHooks) OnCommand(_ context.Context, name string, _ time.Duration, err error) {
	h.commands.WithLabelValues(name, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ StoreHooks   = (*PromHooks)(nil)
	_ CommandHooks = (*PromHooks)(nil)
)
