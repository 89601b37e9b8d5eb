package sitefile

import (
	stderrors "errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/drafter/internal/errors"
	"github.com/vango-dev/drafter/pkg/content"
	"github.com/vango-dev/drafter/pkg/router"
	"github.com/vango-dev/drafter/pkg/urls"
)

// Site is a decoded site description.
type Site struct {
	// Title overrides the configured page title when set.
	Title string

	// Pages are in file order.
	Pages []Page
}

// Page is one route of a site.
type Page struct {
	// Name is the identifier as written in the file.
	Name string

	// Path is the route path Name maps to.
	Path string

	Content []any
}

// ParseFile reads and decodes the site description at path.
func ParseFile(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E121").WithDetailf("Cannot read %s.", path).Wrap(err)
	}
	return Parse(path, data)
}

// Parse decodes a site description. name labels error locations.
func Parse(name string, data []byte) (*Site, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New("E121").WithDetail(err.Error()).Wrap(err)
	}
	d := &decoder{file: name}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("E121").WithDetail("The site file is empty.")
	}
	return d.site(doc.Content[0])
}

// Register adds every page to r as static content.
func (s *Site) Register(r *router.Router) {
	for _, p := range s.Pages {
		r.Handle(p.Name, router.Static(p.Content...))
	}
}

// Routes returns the paths of the site's pages.
func (s *Site) Routes() router.Routes {
	names := make([]string, len(s.Pages))
	for i, p := range s.Pages {
		names[i] = p.Name
	}
	return router.NewRoutes(names...)
}

// Verify checks the links of every page against the site's own routes.
// Failures are joined, one per page.
func (s *Site) Verify() error {
	routes := s.Routes()
	var errs []error
	for _, p := range s.Pages {
		if err := content.VerifyAll(p.Content, routes); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Path, err))
		}
	}
	return stderrors.Join(errs...)
}

// Find returns the page at path.
func (s *Site) Find(path string) (Page, bool) {
	for _, p := range s.Pages {
		if p.Path == urls.Friendly(path) {
			return p, true
		}
	}
	return Page{}, false
}
