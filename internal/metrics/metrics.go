package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "econbrief"

// Collector exposes Prometheus metrics for inbound HTTP requests and for the
// upstream calls (country API, LLM) made while serving them.
type Collector struct {
	registry         *prometheus.Registry
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
	tokensTotal      *prometheus.CounterVec
}

// NewCollector constructs a collector on its own registry.
func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution for inbound HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of inbound HTTP requests.",
		}, []string{"method", "path", "status"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution for calls to the country API and the LLM.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"target", "outcome"}),
		upstreamTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total number of calls to the country API and the LLM.",
		}, []string{"target", "outcome"}),
		tokensTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "tokens_total",
			Help:      "Tokens consumed by completion calls.",
		}, []string{"model", "kind"}),
	}

	for _, collector := range []prometheus.Collector{
		c.requestDuration, c.requestTotal, c.upstreamDuration, c.upstreamTotal, c.tokensTotal,
	} {
		if err := registry.Register(collector); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps the provided handler to record HTTP metrics. Inside
// a chi router the path label is the route pattern, so /country/{name} is one
// series regardless of the country requested.
func (c *Collector) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.status)
		path := routeLabel(r)

		c.requestTotal.WithLabelValues(r.Method, path, status).Inc()
		c.requestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// ObserveUpstream records one outbound call.
func (c *Collector) ObserveUpstream(target, outcome string, duration time.Duration) {
	c.upstreamTotal.WithLabelValues(target, outcome).Inc()
	c.upstreamDuration.WithLabelValues(target, outcome).Observe(duration.Seconds())
}

// ObserveTokens adds the usage reported by one completion call.
func (c *Collector) ObserveTokens(model string, prompt, completion int) {
	c.tokensTotal.WithLabelValues(model, "prompt").Add(float64(prompt))
	c.tokensTotal.WithLabelValues(model, "completion").Add(float64(completion))
}

func routeLabel(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return "unmatched"
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
