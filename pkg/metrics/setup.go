package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the Prometheus registry of the service, the HTTP server that
// exposes it and the request metrics recorded by GinMiddleware.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	Registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
}

// NewMetrics creates an isolated registry, registers the HTTP request metrics
// and, when enabled, the Go runtime and process collectors.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// every metric carries service="<cfg.ServiceName>"
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.requestsTotal = createCounterVec(cfg.Namespace, "http_requests_total",
		"Total number of processed HTTP requests", []string{"method", "route", "status"})
	m.requestDuration = createHistogramVec(cfg.Namespace, "http_request_duration_seconds",
		"Duration of HTTP requests in seconds", []string{"method", "route"}, prometheus.DefBuckets)
	m.inFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: cfg.Namespace,
		Name:      "http_requests_in_flight",
		Help:      "Number of HTTP requests currently being served",
	})

	wrappedRegistry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.inFlight,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:    address,
		Handler: mux,
	}

	return m
}
