package urls

import (
	"net/url"
	"strings"
)

// MergeQuery sets one query parameter on raw. Existing parameters keep their
// order, a parameter with the same key is replaced in place, parameters
// with blank values are dropped, and any fragment is preserved.
func MergeQuery(raw, key, value string) string {
	base, fragment, _ := strings.Cut(raw, "#")
	path, query, _ := strings.Cut(base, "?")

	var keys []string
	values := make(map[string][]string)
	for _, part := range strings.Split(query, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		k = unescape(k)
		v = unescape(v)
		if v == "" {
			continue
		}
		if _, seen := values[k]; !seen {
			keys = append(keys, k)
		}
		values[k] = append(values[k], v)
	}

	if _, seen := values[key]; !seen {
		keys = append(keys, key)
	}
	values[key] = []string{value}

	var buf strings.Builder
	buf.WriteString(path)
	buf.WriteByte('?')
	for i, k := range keys {
		for j, v := range values[k] {
			if i > 0 || j > 0 {
				buf.WriteByte('&')
			}
			buf.WriteString(url.QueryEscape(k))
			buf.WriteByte('=')
			buf.WriteString(url.QueryEscape(v))
		}
	}
	if fragment != "" {
		buf.WriteByte('#')
		buf.WriteString(fragment)
	}
	return buf.String()
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}
