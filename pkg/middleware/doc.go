// Package middleware provides observability for drafter sites.
//
// Both Prometheus metrics and OpenTelemetry tracing come in two halves:
// HTTP middleware that wraps the router, and a render.Observer that
// receives rendering events (items rendered, page render time, failed
// link verification) from the page renderer.
//
// # Prometheus Metrics
//
// A Metrics value is registered once per registry and observes every
// page the router renders:
//
//	metrics := middleware.Prometheus()
//	r := router.New(cfg, state,
//	    router.WithObserver(metrics),
//	    router.WithMiddleware(metrics.Handler),
//	)
//	r.Mount("/metrics", middleware.MetricsHandler(prometheus.DefaultGatherer))
//
// Configure with options:
//
//	middleware.Prometheus(
//	    middleware.WithNamespace("shop"),
//	    middleware.WithBuckets([]float64{.001, .01, .1, 1}),
//	    middleware.WithRegistry(reg),
//	)
//
// Failure reasons are reduced to a fixed set (broken_link, invalid_url,
// invalid_value, internal) to keep label cardinality low.
//
// # OpenTelemetry Tracing
//
// Tracing opens a server span per request. Its Observer method builds a
// per-request observer that annotates that span:
//
//	tracing := middleware.OpenTelemetry(middleware.WithTracerName("shop"))
//	r := router.New(cfg, state,
//	    router.WithRequestObserver(tracing.Observer),
//	    router.WithMiddleware(tracing.Handler),
//	)
//
// Page functions can reach the span through SpanFromContext.
package middleware
