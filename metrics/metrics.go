// Package metrics records inventory store activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nanoinv"

// Collector holds the inventory metric vectors.
type Collector struct {
	operations *prometheus.CounterVec
	persist    *prometheus.HistogramVec
	items      prometheus.Gauge
}

// New creates the inventory metrics and registers them with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of inventory operations by outcome.",
			},
			[]string{"op", "outcome"},
		),
		persist: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "persist_duration_seconds",
				Help:      "Duration of inventory save and load calls in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op", "outcome"},
		),
		items: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "items",
				Help:      "Number of distinct items currently in stock.",
			},
		),
	}
	for _, col := range []prometheus.Collector{c.operations, c.persist, c.items} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Operation counts one op with outcome.
func (c *Collector) Operation(op, outcome string) {
	c.operations.WithLabelValues(op, outcome).Inc()
}

// Persist observes the duration of a save or load.
func (c *Collector) Persist(op, outcome string, d time.Duration) {
	c.persist.WithLabelValues(op, outcome).Observe(d.Seconds())
}

// Items sets the current number of distinct items.
func (c *Collector) Items(n int) {
	c.items.Set(float64(n))
}

// WriteTextfile writes all metrics gathered by g to filename in the
// Prometheus text format, e.g. for the node_exporter textfile collector.
func WriteTextfile(filename string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(filename, g)
}
