package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/drafter/pkg/render"
)

// Default tracer name for drafter sites.
const defaultTracerName = "drafter"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "drafter").
	TracerName string

	// TracerProvider supplies the tracer (default: the global provider).
	TracerProvider trace.TracerProvider

	// IncludeRoute includes the matched route pattern in traces.
	// Enabled by default.
	IncludeRoute bool

	// Filter determines which requests to trace.
	// Return true to trace the request, false to skip.
	// If nil, all requests are traced.
	Filter func(r *http.Request) bool

	// AttributeExtractor extracts custom attributes from the request.
	// Called for each traced request.
	AttributeExtractor func(r *http.Request) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeRoute enables/disables including route in traces.
func WithIncludeRoute(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeRoute = include
	}
}

// WithRequestFilter sets a filter function for requests.
func WithRequestFilter(filter func(r *http.Request) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(r *http.Request) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:   defaultTracerName,
		IncludeRoute: true,
	}
}

// Tracing opens a span per request and annotates it with rendering events.
type Tracing struct {
	config OTelConfig
}

// OpenTelemetry creates tracing middleware.
//
// Handler:
//   - Creates a server span for each request named after its method and path
//   - Stores the span in the request context for downstream calls
//   - Records the response status and sets the span status
//
// Observer annotates the request's span with the page's render time, the
// number of items rendered, and any verification failure.
//
// Example:
//
//	tracing := middleware.OpenTelemetry(middleware.WithTracerName("shop"))
//	r := router.New(cfg, router.WithRequestObserver(tracing.Observer))
//	r.Use(tracing.Handler)
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given. Configure it in main() before serving:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) *Tracing {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if config.TracerProvider != nil {
		config.tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}
	return &Tracing{config: config}
}

// Handler is HTTP middleware that traces each request.
func (t *Tracing) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if t.config.Filter != nil && !t.config.Filter(r) {
			next.ServeHTTP(w, r)
			return
		}

		path := r.URL.Path
		if path == "" {
			path = "/"
		}

		attrs := []attribute.KeyValue{
			attribute.String("http.method", r.Method),
			attribute.String("drafter.path", path),
		}
		if t.config.AttributeExtractor != nil {
			attrs = append(attrs, t.config.AttributeExtractor(r)...)
		}

		ctx, span := t.config.tracer.Start(
			r.Context(),
			"drafter "+r.Method+" "+path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		span.SetAttributes(attribute.Int("http.status_code", status))

		if t.config.IncludeRoute {
			if rctx := chi.RouteContext(ctx); rctx != nil && rctx.RoutePattern() != "" {
				span.SetAttributes(attribute.String("drafter.route", rctx.RoutePattern()))
			}
		}

		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		} else {
			span.SetStatus(codes.Ok, "")
		}
	})
}

// Observer returns a render observer that annotates the span in ctx.
func (t *Tracing) Observer(ctx context.Context) render.Observer {
	span := SpanFromContext(ctx)
	if span == nil {
		return render.NopObserver{}
	}
	return &spanObserver{span: span}
}

type spanObserver struct {
	span  trace.Span
	nodes int
}

func (o *spanObserver) NodeRendered(string) {
	o.nodes++
}

func (o *spanObserver) PageRendered(route string, elapsed time.Duration) {
	o.span.SetAttributes(
		attribute.String("drafter.page", route),
		attribute.Int("drafter.nodes_rendered", o.nodes),
		attribute.Float64("drafter.render_seconds", elapsed.Seconds()),
	)
}

func (o *spanObserver) VerificationFailed(route string, err error) {
	o.span.RecordError(err, trace.WithAttributes(
		attribute.String("drafter.page", route),
		attribute.String("drafter.failure_reason", categorizeError(err)),
	))
	o.span.SetStatus(codes.Error, err.Error())
}

// SpanFromContext retrieves the current trace span from the context.
// Returns nil if no span is available.
//
// Example:
//
//	func page(ctx context.Context, state *State) []any {
//	    if span := middleware.SpanFromContext(ctx); span != nil {
//	        span.SetAttributes(attribute.Int("cart.items", len(state.Items)))
//	    }
//	    ...
//	}
func SpanFromContext(ctx context.Context) trace.Span {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() && !span.IsRecording() {
		return nil
	}
	return span
}
