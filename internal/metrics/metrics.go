// Package metrics exposes Prometheus collectors for split calculations and RPCs.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/tabsplit/internal/calculator"
)

const namespace = "tabsplit"

// unknownMethod labels calculations whose method is not a known strategy.
const unknownMethod = "unknown"

// Metrics holds the collectors on a private registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	rpcDuration  *prometheus.HistogramVec
	previewCache *prometheus.CounterVec
	payments     prometheus.Counter
}

// New registers the collectors, plus the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "split_calculations_total",
			Help:      "Split calculations by method and validity.",
		}, []string{"method", "valid"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Connect RPC latency by procedure and code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
		previewCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preview_cache_lookups_total",
			Help:      "Split preview cache lookups by result.",
		}, []string{"result"}),
		payments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_recorded_total",
			Help:      "Pending payments recorded by confirmed splits.",
		}),
	}
	m.registry.MustRegister(
		m.calculations,
		m.rpcDuration,
		m.previewCache,
		m.payments,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveCalculation counts one calculator run. method comes straight from
// the client, so anything but a known strategy is counted as "unknown".
func (m *Metrics) ObserveCalculation(method string, valid bool) {
	if m == nil {
		return
	}
	label := unknownMethod
	if known, err := calculator.ParseMethod(method); err == nil {
		label = string(known)
	}
	m.calculations.WithLabelValues(label, strconv.FormatBool(valid)).Inc()
}

// ObserveRPC records the latency of one RPC. code is "ok" on success.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcDuration.WithLabelValues(procedure, code).Observe(d.Seconds())
}

// ObserveCacheLookup counts a preview cache hit or miss.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.previewCache.WithLabelValues(result).Inc()
}

// AddPayments counts payments written by a confirmed split.
func (m *Metrics) AddPayments(n int) {
	if m == nil {
		return
	}
	m.payments.Add(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
