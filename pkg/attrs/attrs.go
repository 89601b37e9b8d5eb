package attrs

import (
	"strings"

	"github.com/vango-dev/drafter/internal/literal"
)

// StylePrefix marks a setting as a CSS declaration regardless of its name.
const StylePrefix = "style_"

// Set is a set of attribute names.
type Set map[string]struct{}

// NewSet returns a set containing names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set. A nil set is empty.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Baseline is the universal attribute allow-list. Any setting not in
// Baseline or in a node's own extra set is rendered as a CSS declaration.
var Baseline = NewSet(
	"id", "class", "style", "title", "lang", "dir", "accesskey", "tabindex", "value",
	// Mouse
	"onclick", "ondblclick", "onmousedown", "onmouseup", "onmouseover", "onmousemove", "onmouseout",
	// Keyboard
	"onkeypress", "onkeydown", "onkeyup",
	// Form
	"onfocus", "onblur", "onselect", "onchange", "onsubmit", "onreset",
	// Window
	"onabort", "onerror", "onload", "onunload", "onresize", "onscroll",
)

// Declaration is a resolved attribute or style entry with its display value.
type Declaration struct {
	Name  string
	Value string
}

// Resolved holds settings partitioned into attributes and styles, in
// rendering order.
type Resolved struct {
	Attributes []Declaration
	Styles     []Declaration
}

// Partition splits settings into attributes and styles.
//
// The keyword "classes" is an alias of "class" ([]string values are joined
// with spaces). Keys prefixed with StylePrefix are always styles, with the
// prefix stripped. Underscores in keys become hyphens. Remaining keys are
// attributes when allowed by Baseline or extra, and styles otherwise;
// those styles precede the prefixed ones.
func Partition(extra Set, settings Settings) Resolved {
	settings = settings.Clone()
	if classes, ok := settings.Get("classes"); ok {
		settings.Delete("classes")
		if list, ok := classes.([]string); ok {
			classes = strings.Join(list, " ")
		}
		settings.Set("class", classes)
	}

	var rawAttrs, rawStyles Settings
	for _, s := range settings.Entries() {
		key := s.Key
		target := &rawAttrs
		if strings.HasPrefix(key, StylePrefix) {
			key = key[len(StylePrefix):]
			target = &rawStyles
		}
		target.Set(strings.ReplaceAll(key, "_", "-"), s.Value)
	}

	var r Resolved
	for _, s := range rawAttrs.Entries() {
		d := Declaration{Name: s.Key, Value: literal.Format(s.Value)}
		if Baseline.Has(s.Key) || extra.Has(s.Key) {
			r.Attributes = append(r.Attributes, d)
		} else {
			r.Styles = append(r.Styles, d)
		}
	}
	for _, s := range rawStyles.Entries() {
		r.Styles = append(r.Styles, Declaration{Name: s.Key, Value: literal.Format(s.Value)})
	}
	return r
}

// String renders attributes as space-separated name='value' pairs followed
// by a single style attribute when any style is present. Values are quoted
// with literal.Quote.
func (r Resolved) String() string {
	var b strings.Builder
	for i, a := range r.Attributes {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(a.Name)
		b.WriteByte('=')
		b.WriteString(literal.Quote(a.Value))
	}
	if len(r.Styles) > 0 {
		b.WriteString(" style='")
		for i, s := range r.Styles {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(s.Name)
			b.WriteString(": ")
			b.WriteString(s.Value)
		}
		b.WriteByte('\'')
	}
	return b.String()
}

// Resolve merges overrides over a node's own settings and renders the
// result with Partition. Overrides win on key collision.
func Resolve(extra Set, own Settings, overrides ...Setting) string {
	return Partition(extra, own.Merge(overrides...)).String()
}
