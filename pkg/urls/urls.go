package urls

import (
	"net/url"
	"reflect"
	"runtime"
	"strings"

	"github.com/vango-dev/drafter/internal/errors"
)

// ValidExternal is the reason CheckInvalidExternal reports for a
// well-formed external URL.
const ValidExternal = "is a valid external url"

// Kind classifies a link target.
type Kind int

const (
	// Internal targets are site-local route paths.
	Internal Kind = iota
	// External targets are syntactically valid absolute URLs.
	External
	// Invalid targets look external but fail the syntax or scheme check.
	Invalid
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Internal:
		return "internal"
	case External:
		return "external"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// RouteTable reports whether a path is registered with the serving
// application.
type RouteTable interface {
	HasRoute(path string) bool
}

// Name returns the identifier a link target stands for. Strings are
// returned unchanged; a function value yields its unqualified name, so a
// page function can be linked to directly.
func Name(target any) string {
	switch t := target.(type) {
	case nil:
		return ""
	case string:
		return t
	case interface{ RouteName() string }:
		return t.RouteName()
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	fn := runtime.FuncForPC(v.Pointer())
	if fn == nil {
		return ""
	}
	name := strings.TrimSuffix(fn.Name(), "-fm")
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

// Friendly maps a route identifier to its path: "index" is the site root,
// and every other identifier gains a leading slash.
func Friendly(identifier string) string {
	if strings.Trim(identifier, "/") == "index" {
		return "/"
	}
	if !strings.HasPrefix(identifier, "/") {
		identifier = "/" + identifier
	}
	return identifier
}

// Normalize converts a link target (a string or a page function) into a
// route path.
func Normalize(target any) string {
	return Friendly(Name(target))
}

// Handle resolves a link target at construction time. External-looking
// targets (valid or not) are kept verbatim; everything else is normalized.
func Handle(target any) (string, bool) {
	raw := Name(target)
	if CheckInvalidExternal(raw) != "" {
		return raw, true
	}
	return Friendly(raw), false
}

// CheckInvalidExternal inspects a URL that may be external. It returns ""
// when the URL does not look external at all (including identifiers such
// as "page:2" whose prefix is not a known scheme and has no "//"), ValidExternal when it is a
// usable external URL, and otherwise a human-readable reason it is not.
func CheckInvalidExternal(raw string) string {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)

	if strings.HasPrefix(lower, "file://") {
		return "The URL references a local file on your computer, not a file on a server"
	}

	scheme := schemeOf(lower)
	if scheme == "" {
		if strings.HasPrefix(lower, "//") {
			return checkHierarchical(trimmed)
		}
		return ""
	}

	switch scheme {
	case "http", "https":
		return checkHierarchical(trimmed)
	case "mailto", "tel":
		if strings.TrimSpace(trimmed[len(scheme)+1:]) == "" {
			return "The URL is missing an address"
		}
		return ValidExternal
	case "javascript", "data", "vbscript":
		return "The URL uses the unsafe `" + scheme + ":` scheme"
	default:
		if !strings.HasPrefix(trimmed[len(scheme)+1:], "//") {
			return ""
		}
		return "The URL uses the unsupported `" + scheme + ":` scheme"
	}
}

func checkHierarchical(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "The URL could not be parsed: " + err.Error()
	}
	if u.Host == "" || strings.HasPrefix(u.Host, ":") {
		return "The URL is missing a host name"
	}
	if strings.ContainsAny(u.Host, " \\") {
		return "The URL host name contains invalid characters"
	}
	return ValidExternal
}

// schemeOf returns the RFC 3986 scheme of a lowercased URL, or "" if the
// URL has none.
func schemeOf(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		case c == ':' && i > 0:
			return s[:i]
		default:
			return ""
		}
	}
	return ""
}

// Classify reports whether raw is an internal route path, a valid external
// URL, or an invalid external URL. The reason is non-empty only for Invalid.
func Classify(raw string) (Kind, string) {
	switch reason := CheckInvalidExternal(raw); reason {
	case "":
		return Internal, ""
	case ValidExternal:
		return External, ""
	default:
		return Invalid, reason
	}
}

// Verify checks a link target against the route table. A registered route
// or a valid external URL passes; an invalid external URL fails with E111;
// anything else is a broken link (E110). label names the link in messages.
func Verify(target, label string, routes RouteTable) error {
	if routes != nil {
		path, _, _ := strings.Cut(target, "?")
		if routes.HasRoute(target) || routes.HasRoute(path) {
			return nil
		}
	}

	switch reason := CheckInvalidExternal(target); reason {
	case ValidExternal:
		return nil
	case "":
		return errors.New("E110").
			WithDetailf("Link `%s` points to non-existent page `%s`.", label, target)
	default:
		return errors.New("E111").
			WithDetailf("Link `%s` is not a valid external url.\n%s.", target, reason)
	}
}
