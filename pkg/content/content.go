package content

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/drafter/internal/errors"
	"github.com/vango-dev/drafter/internal/literal"
	"github.com/vango-dev/drafter/pkg/attrs"
	"github.com/vango-dev/drafter/pkg/urls"
)

// Error sentinels for errors.Is.
var (
	// ErrValue matches malformed argument values, argument shapes and
	// table rows.
	ErrValue = errors.ErrValue

	// ErrBrokenLink matches links to routes the server does not register.
	ErrBrokenLink = errors.ErrBrokenLink

	// ErrInvalidURL matches external-looking links that are not valid URLs.
	ErrInvalidURL = errors.ErrInvalidURL
)

// Configuration is the deployment data a node may consult while rendering.
type Configuration interface {
	// DeployImagePath is the base path internal image URLs are served from.
	DeployImagePath() string
}

// RouteTable reports whether a path is registered with the server.
type RouteTable = urls.RouteTable

// Content is a renderable unit of page markup.
type Content interface {
	// Render returns the node's markup. state is the live application
	// state and cfg the deployment configuration; either may be nil.
	Render(state any, cfg Configuration) string

	// Verify checks the node's links against routes.
	Verify(routes RouteTable) error
}

// Styled is a node carrying keyword settings.
type Styled interface {
	Content
	ExtraSettings() *attrs.Settings
}

// Render renders one item of page content. Strings pass through verbatim,
// nodes render themselves, and anything else is formatted as text.
func Render(item any, state any, cfg Configuration) string {
	switch c := item.(type) {
	case nil:
		return ""
	case string:
		return c
	case Content:
		return c.Render(state, cfg)
	case fmt.Stringer:
		return c.String()
	default:
		return literal.Format(c)
	}
}

// RenderAll renders items and joins them with sep.
func RenderAll(items []any, sep string, state any, cfg Configuration) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = Render(item, state, cfg)
	}
	return strings.Join(parts, sep)
}

// Verify verifies one item of page content. Plain values always pass.
func Verify(item any, routes RouteTable) error {
	if c, ok := item.(Content); ok {
		return c.Verify(routes)
	}
	return nil
}

// VerifyAll verifies items in order and returns the first failure.
func VerifyAll(items []any, routes RouteTable) error {
	for _, item := range items {
		if err := Verify(item, routes); err != nil {
			return err
		}
	}
	return nil
}

// Items converts a typed slice into page content items.
func Items[T any](xs []T) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

// Option sets keyword settings on a node at construction.
type Option func(*attrs.Settings)

// Set stores a raw keyword setting. Names in the node's allow-list render
// as attributes; everything else renders as CSS.
func Set(key string, value any) Option {
	return func(s *attrs.Settings) { s.Set(key, value) }
}

// Style stores a CSS declaration.
func Style(property string, value any) Option {
	return Set(attrs.StylePrefix+property, value)
}

// ID sets the id attribute.
func ID(id string) Option { return Set("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Option { return Set("class", strings.Join(classes, " ")) }

// Settings stores every entry of m, in key order.
func Settings(m map[string]any) Option {
	return func(s *attrs.Settings) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.Set(k, m[k])
		}
	}
}

// UpdateStyle sets a CSS declaration on node and returns node.
func UpdateStyle[T Styled](node T, property string, value any) T {
	node.ExtraSettings().Set(attrs.StylePrefix+property, value)
	return node
}

// UpdateAttr sets a keyword setting on node and returns node. As with Set,
// a name outside the node's allow-list renders as CSS.
func UpdateAttr[T Styled](node T, name string, value any) T {
	node.ExtraSettings().Set(name, value)
	return node
}

// settings is embedded by every node that carries keyword settings.
type settings struct {
	extra attrs.Settings
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s.extra)
	}
	return s
}

// ExtraSettings returns the node's keyword settings for in-place updates.
func (s *settings) ExtraSettings() *attrs.Settings { return &s.extra }

func (s *settings) resolve(allowed attrs.Set, overrides ...attrs.Setting) string {
	return attrs.Resolve(allowed, s.extra, overrides...)
}

// KindOf names the node type of a content item.
func KindOf(item any) string {
	switch item.(type) {
	case nil:
		return "none"
	case string:
		return "string"
	case *Text:
		return "text"
	case *Argument:
		return "argument"
	case *Link:
		return "link"
	case *Button:
		return "button"
	case *Image:
		return "image"
	case *TextBox:
		return "textbox"
	case *TextArea:
		return "textarea"
	case *SelectBox:
		return "selectbox"
	case *CheckBox:
		return "checkbox"
	case LineBreak, *LineBreak:
		return "linebreak"
	case HorizontalRule, *HorizontalRule:
		return "rule"
	case *Span:
		return "span"
	case *Header:
		return "header"
	case *NumberedList:
		return "numbered_list"
	case *BulletedList:
		return "bulleted_list"
	case *Table:
		return "table"
	case Content:
		return "custom"
	default:
		return "value"
	}
}
