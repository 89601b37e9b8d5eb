package content

import (
	"strconv"
	"strings"
)

// Text is raw markup written to the page unchanged.
type Text struct {
	Body string
}

// NewText returns body as a node.
func NewText(body string) *Text { return &Text{Body: body} }

func (t *Text) Render(any, Configuration) string { return t.Body }
func (t *Text) Verify(RouteTable) error         { return nil }
func (t *Text) String() string                  { return t.Body }

// LineBreak is <br />.
type LineBreak struct{}

func (LineBreak) Render(any, Configuration) string { return "<br />" }
func (LineBreak) Verify(RouteTable) error          { return nil }
func (LineBreak) String() string                   { return "<br />" }

// HorizontalRule is <hr />.
type HorizontalRule struct{}

func (HorizontalRule) Render(any, Configuration) string { return "<hr />" }
func (HorizontalRule) Verify(RouteTable) error          { return nil }
func (HorizontalRule) String() string                   { return "<hr />" }

// Span groups inline content.
type Span struct {
	Items []any
}

// NewSpan returns a span of items.
func NewSpan(items ...any) *Span { return &Span{Items: items} }

func (s *Span) Render(state any, cfg Configuration) string {
	return "<span>" + RenderAll(s.Items, "", state, cfg) + "</span>"
}

func (s *Span) Verify(routes RouteTable) error { return VerifyAll(s.Items, routes) }

func (s *Span) String() string { return s.Render(nil, nil) }

// Header is a heading. Levels outside 1..6 are clamped, so level 0
// renders as <h1>.
type Header struct {
	Body  string
	Level int
}

// NewHeader returns a heading at level.
func NewHeader(body string, level int) *Header { return &Header{Body: body, Level: level} }

func (h *Header) Render(any, Configuration) string {
	level := min(max(h.Level, 1), 6)
	tag := "h" + strconv.Itoa(level)
	return "<" + tag + ">" + h.Body + "</" + tag + ">"
}

func (h *Header) Verify(RouteTable) error { return nil }
func (h *Header) String() string          { return h.Render(nil, nil) }

type htmlList struct {
	settings
	Items []any
}

func (l *htmlList) render(tag string, state any, cfg Configuration) string {
	var b strings.Builder
	b.WriteString("<" + tag + " " + l.resolve(nil) + ">")
	for i, item := range l.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("<li>" + Render(item, state, cfg) + "</li>")
	}
	b.WriteString("</" + tag + ">")
	return b.String()
}

func (l *htmlList) Verify(routes RouteTable) error { return VerifyAll(l.Items, routes) }

// NumberedList is an <ol>.
type NumberedList struct{ htmlList }

// NewNumberedList returns an ordered list of items.
func NewNumberedList(items []any, opts ...Option) *NumberedList {
	return &NumberedList{htmlList{settings: newSettings(opts), Items: items}}
}

func (l *NumberedList) Render(state any, cfg Configuration) string { return l.render("ol", state, cfg) }
func (l *NumberedList) String() string                             { return l.Render(nil, nil) }

// BulletedList is a <ul>.
type BulletedList struct{ htmlList }

// NewBulletedList returns an unordered list of items.
func NewBulletedList(items []any, opts ...Option) *BulletedList {
	return &BulletedList{htmlList{settings: newSettings(opts), Items: items}}
}

func (l *BulletedList) Render(state any, cfg Configuration) string { return l.render("ul", state, cfg) }
func (l *BulletedList) String() string                             { return l.Render(nil, nil) }
