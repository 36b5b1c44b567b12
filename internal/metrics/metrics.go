package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ndinv/sql-inventory/internal/models"
)

const namespace = "nd_inventory"

// Metrics records inventory build statistics on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	builds        *prometheus.CounterVec
	buildDuration prometheus.Histogram
	inputFailures *prometheus.CounterVec
	skippedRows   *prometheus.CounterVec
	hosts         prometheus.Gauge
	groups        prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "builds_total",
				Help:      "Inventory builds by result",
			},
			[]string{"result"},
		),
		buildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "build_duration_seconds",
				Help:      "Duration of inventory builds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		inputFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "optional_input_failures_total",
				Help:      "Optional inputs whose query failed",
			},
			[]string{"input"},
		),
		skippedRows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "skipped_rows_total",
				Help:      "Rows that did not produce a host",
			},
			[]string{"input", "reason"},
		),
		hosts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "hosts",
				Help:      "Hosts in the last successful build",
			},
		),
		groups: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "groups",
				Help:      "Groups in the last successful build",
			},
		),
	}

	m.registry.MustRegister(
		m.builds,
		m.buildDuration,
		m.inputFailures,
		m.skippedRows,
		m.hosts,
		m.groups,
	)

	return m
}

func (m *Metrics) BuildFinished(inv *models.Inventory, duration time.Duration, err error) {
	m.buildDuration.Observe(duration.Seconds())
	if err != nil {
		m.builds.WithLabelValues("error").Inc()
		return
	}
	m.builds.WithLabelValues("success").Inc()
	if inv != nil {
		m.hosts.Set(float64(len(inv.Hosts)))
		m.groups.Set(float64(len(inv.Groups)))
	}
}

func (m *Metrics) InputFailed(input string) {
	m.inputFailures.WithLabelValues(input).Inc()
}

func (m *Metrics) RowSkipped(input string, reason string) {
	m.skippedRows.WithLabelValues(input, reason).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
