package render

import (
	"bytes"
	"io"

	"github.com/vango-dev/drafter/pkg/content"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Configuration is passed to every node; it supplies the image folder.
	// May be nil.
	Configuration content.Configuration

	// Observer receives rendering events. Defaults to NopObserver.
	Observer Observer

	// Separator is written between top-level items. Defaults to "\n".
	Separator string
}

// Renderer renders page content lists to HTML.
// A Renderer holds no per-request state and is safe for concurrent use.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Observer == nil {
		config.Observer = NopObserver{}
	}
	if config.Separator == "" {
		config.Separator = "\n"
	}
	return &Renderer{config: config}
}

// Configuration returns the configuration nodes are rendered with.
func (r *Renderer) Configuration() content.Configuration {
	return r.config.Configuration
}

// RenderToString renders items against state.
func (r *Renderer) RenderToString(items []any, state any) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, items, state); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams items to w, one rendered item after another.
func (r *Renderer) RenderToWriter(w io.Writer, items []any, state any) error {
	for i, item := range items {
		if i > 0 {
			if _, err := io.WriteString(w, r.config.Separator); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, content.Render(item, state, r.config.Configuration)); err != nil {
			return err
		}
		r.config.Observer.NodeRendered(content.KindOf(item))
	}
	return nil
}

// Verify checks every item's links against routes and reports the first
// failure to the observer under route.
func (r *Renderer) Verify(route string, items []any, routes content.RouteTable) error {
	if err := content.VerifyAll(items, routes); err != nil {
		r.config.Observer.VerificationFailed(route, err)
		return err
	}
	return nil
}

// WithObserver returns a renderer that also reports to o. The receiver is
// left unchanged.
func (r *Renderer) WithObserver(o Observer) *Renderer {
	if o == nil {
		return r
	}
	config := r.config
	config.Observer = Observers(r.config.Observer, o)
	return &Renderer{config: config}
}
