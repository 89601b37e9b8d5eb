package router

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vango-dev/drafter/internal/config"
	"github.com/vango-dev/drafter/internal/errors"
	"github.com/vango-dev/drafter/internal/logging"
	"github.com/vango-dev/drafter/pkg/codec"
	"github.com/vango-dev/drafter/pkg/render"
	"github.com/vango-dev/drafter/pkg/urls"
)

// Router serves drafter pages over HTTP. It holds the shared application
// state, passes it to each page function and renders the returned content.
//
// Pages, middleware and mounts must be registered before the router serves
// its first request.
type Router struct {
	config           *config.Config
	renderer         *render.Renderer
	logger           *slog.Logger
	observers        []render.Observer
	requestObservers []func(context.Context) render.Observer
	middleware       []func(http.Handler) http.Handler
	mounts           []mount

	routesMu sync.RWMutex
	pages    map[string]PageFunc

	stateMu sync.Mutex
	state   any

	once sync.Once
	mux  *chi.Mux
}

type mount struct {
	pattern string
	handler http.Handler
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger. Defaults to a logger that discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithObserver adds an observer notified of every page render.
func WithObserver(o render.Observer) Option {
	return func(r *Router) {
		r.observers = append(r.observers, o)
	}
}

// WithRequestObserver adds a factory building an observer for each
// request from its context.
func WithRequestObserver(f func(context.Context) render.Observer) Option {
	return func(r *Router) {
		r.requestObservers = append(r.requestObservers, f)
	}
}

// WithMiddleware adds HTTP middleware around every route.
func WithMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(r *Router) {
		r.middleware = append(r.middleware, mw...)
	}
}

// New creates a router serving pages with cfg and the initial state.
// A nil cfg uses the defaults.
func New(cfg *config.Config, state any, opts ...Option) *Router {
	if cfg == nil {
		cfg = config.New()
	}
	r := &Router{
		config: cfg,
		state:  state,
		pages:  make(map[string]PageFunc),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	r.renderer = render.NewRenderer(render.RendererConfig{
		Configuration: cfg,
		Observer:      render.Observers(r.observers...),
	})
	return r
}

// Handle registers page under the path of identifier ("index" is the
// site root) and returns that path.
func (r *Router) Handle(identifier string, page PageFunc) string {
	p := cleanPath(urls.Friendly(identifier))

	r.routesMu.Lock()
	defer r.routesMu.Unlock()
	r.pages[p] = page
	return p
}

// Page registers page under its own function name, so links can target
// the function directly. It returns the registered path.
func (r *Router) Page(page PageFunc) string {
	return r.Handle(urls.Name(page), page)
}

// HasRoute reports whether a page is registered at p.
func (r *Router) HasRoute(p string) bool {
	r.routesMu.RLock()
	defer r.routesMu.RUnlock()
	_, ok := r.pages[cleanPath(p)]
	return ok
}

// Routes returns the registered paths.
func (r *Router) Routes() Routes {
	r.routesMu.RLock()
	defer r.routesMu.RUnlock()
	routes := make(Routes, len(r.pages))
	for p := range r.pages {
		routes[p] = struct{}{}
	}
	return routes
}

// Use adds HTTP middleware around every route.
func (r *Router) Use(mw ...func(http.Handler) http.Handler) {
	r.middleware = append(r.middleware, mw...)
}

// Mount attaches handler under pattern, next to the pages.
func (r *Router) Mount(pattern string, handler http.Handler) {
	r.mounts = append(r.mounts, mount{pattern: pattern, handler: handler})
}

// State returns the current shared state.
func (r *Router) State() any {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	return r.state
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.once.Do(r.build)
	r.mux.ServeHTTP(w, req)
}

func (r *Router) build() {
	mux := chi.NewRouter()
	mux.Use(chimw.RequestID, chimw.RealIP, requestLogger(r.logger), chimw.Recoverer)
	mux.Use(r.middleware...)

	r.routesMu.RLock()
	for p, page := range r.pages {
		h := r.serve(p, page)
		mux.Get(p, h)
		mux.Post(p, h)
	}
	r.routesMu.RUnlock()

	if dir := r.config.ImageFolder(); dir != "" {
		if prefix := imagePrefix(r.config.DeployImagePath()); prefix != "" {
			mux.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(dir))))
		}
	}

	for _, m := range r.mounts {
		mux.Mount(m.pattern, m.handler)
	}
	r.mux = mux
}

// imagePrefix returns the local path images are served under, or "" when
// they are deployed elsewhere.
func imagePrefix(deployPath string) string {
	if deployPath == "" || strings.Contains(deployPath, "://") {
		return ""
	}
	trimmed := strings.Trim(deployPath, "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}

func (r *Router) serve(route string, page PageFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		if err := req.ParseForm(); err != nil {
			r.fail(w, route, http.StatusBadRequest, err)
			return
		}
		values, err := codec.RemapForm(req.Form)
		if err != nil {
			r.fail(w, route, http.StatusBadRequest, err)
			return
		}

		renderer := r.rendererFor(ctx)
		data, err := r.run(ctx, route, page, values, renderer)
		if err != nil {
			r.fail(w, route, statusOf(err), err)
			return
		}

		start := time.Now()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := render.NewStreamingRenderer(w, renderer).RenderPage(data); err != nil {
			r.logger.Error("page write failed", "route", route, "error", err)
			return
		}
		r.logger.Debug("page rendered", "route", route, "elapsed", time.Since(start))
	}
}

// Render runs the page at p, a path or a route identifier such as "index",
// with values and returns the complete document.
func (r *Router) Render(ctx context.Context, p string, values map[string]any) (string, error) {
	route := cleanPath(urls.Friendly(p))

	r.routesMu.RLock()
	page, ok := r.pages[route]
	r.routesMu.RUnlock()
	if !ok {
		return "", errors.New("E110").WithDetailf("No page is registered at `%s`.", p)
	}

	renderer := r.rendererFor(ctx)
	data, err := r.run(ctx, route, page, values, renderer)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := renderer.RenderPage(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Check verifies the links of every registered page against the current
// state without changing it. Failures are joined, one per page.
func (r *Router) Check(ctx context.Context) error {
	routes := r.Routes()

	var errs []error
	for _, route := range routes.Paths() {
		r.routesMu.RLock()
		page := r.pages[route]
		r.routesMu.RUnlock()

		r.stateMu.Lock()
		result, err := page(&Request{ctx: ctx, Route: route, State: r.state, Values: map[string]any{}})
		r.stateMu.Unlock()
		if err == nil {
			err = r.renderer.Verify(route, result.Content, r)
		}
		if err != nil {
			r.logger.Warn("page check failed", "route", route, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", route, err))
		}
	}
	return stderrors.Join(errs...)
}

// run calls page with the shared state, stores the state it returns and
// verifies the content.
func (r *Router) run(ctx context.Context, route string, page PageFunc, values map[string]any, renderer *render.Renderer) (render.PageData, error) {
	if values == nil {
		values = map[string]any{}
	}

	r.stateMu.Lock()
	result, err := page(&Request{ctx: ctx, Route: route, State: r.state, Values: values})
	if err == nil && result.State != nil {
		r.state = result.State
	}
	state := r.state
	r.stateMu.Unlock()
	if err != nil {
		return render.PageData{}, err
	}

	if err := renderer.Verify(route, result.Content, r); err != nil {
		return render.PageData{}, &verifyError{err: err}
	}

	var styles []string
	if r.config.AdditionalCSSContent != "" {
		styles = append(styles, r.config.AdditionalCSSContent)
	}
	return render.PageData{
		Route:       route,
		Body:        result.Content,
		State:       state,
		Title:       r.config.Title,
		Lang:        r.config.Lang,
		StyleSheets: r.config.StyleSheets,
		Styles:      styles,
		HeadContent: r.config.AdditionalHeaderContent,
		Framed:      r.config.Framed,
	}, nil
}

func (r *Router) rendererFor(ctx context.Context) *render.Renderer {
	if len(r.requestObservers) == 0 {
		return r.renderer
	}
	observers := make([]render.Observer, 0, len(r.requestObservers))
	for _, f := range r.requestObservers {
		observers = append(observers, f(ctx))
	}
	return r.renderer.WithObserver(render.Observers(observers...))
}

// verifyError marks a failure of the rendered content rather than of the
// request.
type verifyError struct {
	err error
}

func (e *verifyError) Error() string { return e.err.Error() }
func (e *verifyError) Unwrap() error { return e.err }

func statusOf(err error) int {
	var ve *verifyError
	switch {
	case stderrors.As(err, &ve):
		return http.StatusInternalServerError
	case stderrors.Is(err, errors.ErrValue):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (r *Router) fail(w http.ResponseWriter, route string, status int, err error) {
	var ve *verifyError
	switch {
	case stderrors.As(err, &ve):
		r.logger.Warn("link verification failed", "route", route, "error", ve.err)
	case status < http.StatusInternalServerError:
		r.logger.Info("bad request", "route", route, "error", err)
	default:
		r.logger.Error("page failed", "route", route, "error", err)
	}

	msg := http.StatusText(status)
	if r.config.Debug {
		msg = err.Error()
	}
	http.Error(w, msg, status)
}
