package router

import (
	"context"
	"path"
	"sort"

	"github.com/vango-dev/drafter/internal/literal"
	"github.com/vango-dev/drafter/pkg/urls"
)

// PageFunc builds the content of a page from a request.
type PageFunc func(req *Request) (Page, error)

// Page is the result of a page function.
type Page struct {
	// State replaces the shared application state when non-nil.
	State any

	// Content is the list of items rendered into the page body.
	Content []any
}

// Static returns a page function that always renders items and leaves the
// state alone.
func Static(items ...any) PageFunc {
	return func(*Request) (Page, error) {
		return Page{Content: items}, nil
	}
}

// Request is what a page function receives.
type Request struct {
	ctx context.Context

	// Route is the path the page is served at.
	Route string

	// State is the shared application state.
	State any

	// Values holds the submitted form values: JSON-decoded arguments,
	// the raw fields of the pressed control and plain strings.
	Values map[string]any
}

// Context returns the request's context.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// Value returns a submitted value.
func (r *Request) Value(name string) (any, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// String returns a submitted value as text, or "" when it is missing.
func (r *Request) String(name string) string {
	v, ok := r.Values[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return literal.Format(v)
}

// Routes is a fixed set of route paths. It implements content.RouteTable
// for content verified outside a running router.
type Routes map[string]struct{}

// NewRoutes returns the set of the given identifiers' paths.
func NewRoutes(identifiers ...string) Routes {
	routes := make(Routes, len(identifiers))
	for _, id := range identifiers {
		routes[urls.Friendly(id)] = struct{}{}
	}
	return routes
}

// HasRoute reports whether p, cleaned, is in the set.
func (r Routes) HasRoute(p string) bool {
	_, ok := r[cleanPath(p)]
	return ok
}

// Paths returns the paths in the set, sorted.
func (r Routes) Paths() []string {
	paths := make([]string, 0, len(r))
	for p := range r {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// cleanPath drops a trailing slash and dot segments so "/about/" and
// "/about" name the same page.
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	return path.Clean("/" + p)
}
