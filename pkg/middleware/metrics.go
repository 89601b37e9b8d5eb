package middleware

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/drafter/internal/errors"
)

// MetricsConfig configures the Prometheus metrics observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "drafter").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for page render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "drafter",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records drafter rendering metrics. It implements render.Observer.
type Metrics struct {
	nodesRendered  *prometheus.CounterVec
	pageDuration   *prometheus.HistogramVec
	verifyFailures *prometheus.CounterVec
	requestsTotal  *prometheus.CounterVec
}

// One Metrics per registry and metric name prefix, so repeated calls do
// not register twice.
type metricsKey struct {
	registry  prometheus.Registerer
	namespace string
	subsystem string
}

var (
	registeredMetrics   = make(map[metricsKey]*Metrics)
	registeredMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *Metrics {
	factory := promauto.With(config.Registry)

	return &Metrics{
		nodesRendered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_rendered_total",
			Help:        "Total number of top-level content items rendered, by kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		pageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "page_render_duration_seconds",
			Help:        "Page render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		verifyFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "link_verification_failures_total",
			Help:        "Total number of pages that failed link verification, by reason",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests served, by route pattern and status",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "status"}),
	}
}

// Prometheus returns the metrics observer for the configured registry,
// namespace and subsystem, registering its collectors on first use. Other
// options only take effect on that first call.
//
// Metrics collected:
//   - drafter_nodes_rendered_total: Counter of rendered content items by kind
//   - drafter_page_render_duration_seconds: Histogram of page render time by route
//   - drafter_link_verification_failures_total: Counter of failed verifications by reason
//   - drafter_http_requests_total: Counter of requests by route pattern and status
//     (when Handler wraps the router)
//
// Example:
//
//	metrics := middleware.Prometheus(middleware.WithNamespace("shop"))
//	r := router.New(cfg, router.WithObserver(metrics))
//	r.Use(metrics.Handler)
//	r.Mount("/metrics", middleware.MetricsHandler(prometheus.DefaultGatherer))
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	registeredMetricsMu.Lock()
	defer registeredMetricsMu.Unlock()

	key := metricsKey{registry: config.Registry, namespace: config.Namespace, subsystem: config.Subsystem}
	m, ok := registeredMetrics[key]
	if !ok {
		m = initMetrics(config)
		registeredMetrics[key] = m
	}
	return m
}

// NodeRendered counts one rendered item.
func (m *Metrics) NodeRendered(kind string) {
	m.nodesRendered.WithLabelValues(kind).Inc()
}

// PageRendered records the render time of a page.
func (m *Metrics) PageRendered(route string, elapsed time.Duration) {
	if route == "" {
		route = "/"
	}
	m.pageDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// VerificationFailed counts a failed verification under its reason.
func (m *Metrics) VerificationFailed(_ string, err error) {
	m.verifyFailures.WithLabelValues(categorizeError(err)).Inc()
}

// Handler is HTTP middleware counting requests by chi route pattern and
// response status.
func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

// MetricsHandler exposes the metrics gathered by g.
func MetricsHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// categorizeError returns a category for the error type.
// This prevents high-cardinality labels from error messages.
func categorizeError(err error) string {
	switch {
	case err == nil:
		return "none"
	case stderrors.Is(err, errors.ErrBrokenLink):
		return "broken_link"
	case stderrors.Is(err, errors.ErrInvalidURL):
		return "invalid_url"
	case stderrors.Is(err, errors.ErrValue):
		return "invalid_value"
	default:
		return "internal"
	}
}
