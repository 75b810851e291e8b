package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "argocd_status"

type Metrics struct {
	registry         *prometheus.Registry
	upstreamRequests *prometheus.CounterVec
	droppedItems     prometheus.Counter
	apps             prometheus.Gauge
}

// New registers the service collectors, plus the Go and process collectors,
// on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Application listings against the Kubernetes API, by outcome.",
		}, []string{"outcome"}),
		droppedItems: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_items_total",
			Help:      "Applications left out of a listing because required fields were missing.",
		}),
		apps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "apps",
			Help:      "Applications returned by the most recent successful listing.",
		}),
	}
	reg.MustRegister(
		m.upstreamRequests,
		m.droppedItems,
		m.apps,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) UpstreamSucceeded() {
	m.upstreamRequests.WithLabelValues("success").Inc()
}

func (m *Metrics) UpstreamFailed() {
	m.upstreamRequests.WithLabelValues("error").Inc()
}

// Observe records the result of mapping one listing.
func (m *Metrics) Observe(apps, dropped int) {
	m.apps.Set(float64(apps))
	m.droppedItems.Add(float64(dropped))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
