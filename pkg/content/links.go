package content

import (
	"strings"

	"github.com/vango-dev/drafter/internal/literal"
	"github.com/vango-dev/drafter/pkg/attrs"
	"github.com/vango-dev/drafter/pkg/codec"
	"github.com/vango-dev/drafter/pkg/urls"
)

// BaseImageFolder is where internal images are served from when no
// configuration is supplied.
const BaseImageFolder = "/__images"

// target is the link capability shared by Link, Button and Image: a URL
// resolved at construction plus the hidden fields of its arguments.
type target struct {
	URL      string
	External bool
	fields   []Field
}

func newTarget(to any, args any, namespace string) (target, error) {
	url, external := urls.Handle(to)
	fields, err := ParseArguments(args, namespace)
	if err != nil {
		return target{}, err
	}
	return target{URL: url, External: external, fields: fields}, nil
}

// Arguments returns the hidden fields the control submits.
func (t *target) Arguments() []Field {
	return append([]Field(nil), t.fields...)
}

// Kind classifies the target URL.
func (t *target) Kind() urls.Kind {
	kind, _ := urls.Classify(t.URL)
	return kind
}

// inertURL stands in for a target that failed the scheme or syntax check,
// so such a URL is never written into the page.
const inertURL = "#"

// submitURL is the target with the pressed label added to the query.
// Invalid targets render as inertURL; Verify reports them.
func (t *target) submitURL(label string) string {
	if t.Kind() == urls.Invalid {
		return inertURL
	}
	return hrefValue(urls.MergeQuery(t.URL, codec.SubmitButtonKey, label))
}

// hrefValue keeps a URL from closing the single-quoted attribute it is
// written into.
func hrefValue(u string) string {
	return strings.ReplaceAll(u, "'", "%27")
}

// Link is an anchor that submits the page's form fields and its own
// arguments to another page.
type Link struct {
	settings
	target
	Text string
}

// NewLink returns a link labelled text pointing at to, which may be a route
// name, a path, an external URL, or a page function. args accepts every
// shape ParseArguments does.
func NewLink(text string, to any, args any, opts ...Option) (*Link, error) {
	t, err := newTarget(to, args, text)
	if err != nil {
		return nil, err
	}
	return &Link{settings: newSettings(opts), target: t, Text: text}, nil
}

// Render returns the argument fields followed by the anchor.
func (l *Link) Render(any, Configuration) string {
	return renderFields(l.fields) + "<a href='" + l.submitURL(l.Text) + "' " + l.resolve(nil) + ">" +
		l.Text + "</a>"
}

// Verify fails with E110 for an unregistered internal route and E111 for a
// malformed external URL.
func (l *Link) Verify(routes RouteTable) error {
	return urls.Verify(l.URL, l.Text, routes)
}

func (l *Link) String() string { return l.Render(nil, nil) }

// Button is a submit control. Pressing it posts the enclosing form to the
// target with the button's label and arguments.
type Button struct {
	settings
	target
	Text string
}

// NewButton returns a button labelled text that submits to to.
func NewButton(text string, to any, args any, opts ...Option) (*Button, error) {
	t, err := newTarget(to, args, text)
	if err != nil {
		return nil, err
	}
	return &Button{settings: newSettings(opts), target: t, Text: text}, nil
}

// Render returns the argument fields followed by the submit input.
func (b *Button) Render(any, Configuration) string {
	return renderFields(b.fields) + "<input type='submit' name='" + codec.SubmitButtonKey +
		"' value='" + codec.EscapeHTML(b.Text) + "' formaction='" + b.submitURL(b.Text) + "' " +
		b.resolve(nil) + " />"
}

// Verify checks the button target like a link.
func (b *Button) Verify(routes RouteTable) error {
	return urls.Verify(b.URL, b.Text, routes)
}

func (b *Button) String() string { return b.Render(nil, nil) }

// GoString describes the button the way it was built.
func (b *Button) GoString() string {
	if len(b.fields) > 0 {
		return "Button(text=" + literal.Quote(b.Text) + ", url=" + literal.Quote(b.URL) +
			", arguments=" + literal.Repr(fieldNames(b.fields)) + ")"
	}
	return "Button(text=" + literal.Quote(b.Text) + ", url=" + literal.Quote(b.URL) + ")"
}

func fieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

var imageAttrs = attrs.NewSet("width", "height", "alt")

// Image is an <img>. Internal sources are served from the deployment's
// image folder.
type Image struct {
	settings
	target

	// Width and Height are written as attributes when non-zero.
	Width  int
	Height int
}

// NewImage returns an image of src. A zero width or height is left out.
func NewImage(src any, width, height int, opts ...Option) *Image {
	url, external := urls.Handle(src)
	return &Image{
		settings: newSettings(opts),
		target:   target{URL: url, External: external},
		Width:    width,
		Height:   height,
	}
}

// Render returns the <img> tag. cfg supplies the image folder.
func (i *Image) Render(_ any, cfg Configuration) string {
	src := i.URL
	if !i.External {
		folder := BaseImageFolder
		if cfg != nil {
			folder = cfg.DeployImagePath()
		}
		src = folder + src
	}

	var dims []attrs.Setting
	if i.Width != 0 {
		dims = append(dims, attrs.Setting{Key: "width", Value: i.Width})
	}
	if i.Height != 0 {
		dims = append(dims, attrs.Setting{Key: "height", Value: i.Height})
	}
	return "<img src='" + hrefValue(src) + "' " + i.resolve(imageAttrs, dims...) + ">"
}

// Verify always passes; image sources are not checked against routes.
func (i *Image) Verify(RouteTable) error { return nil }

func (i *Image) String() string { return i.Render(nil, nil) }
