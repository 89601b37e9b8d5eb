package render

import (
	"io"
	"strings"
	"testing"
	"time"
)

func extractAttrValue(t *testing.T, s string, attr string) string {
	t.Helper()

	needle := attr + "="
	idx := strings.Index(s, needle)
	if idx == -1 {
		t.Fatalf("expected %q in %q", needle, s)
	}

	start := idx + len(needle)
	if start >= len(s) {
		t.Fatalf("malformed attribute %q in %q", attr, s)
	}

	quote := s[start]
	if quote != '"' && quote != '\'' {
		t.Fatalf("expected quote for %q in %q", attr, s)
	}
	start++

	endRel := strings.IndexByte(s[start:], quote)
	if endRel == -1 {
		t.Fatalf("unterminated attribute %q in %q", attr, s)
	}

	return s[start : start+endRel]
}

type recordingObserver struct {
	kinds    []string
	pages    []string
	failures []string
}

func (o *recordingObserver) NodeRendered(kind string) { o.kinds = append(o.kinds, kind) }

func (o *recordingObserver) PageRendered(route string, elapsed time.Duration) {
	if elapsed < 0 {
		panic("negative render time")
	}
	o.pages = append(o.pages, route)
}

func (o *recordingObserver) VerificationFailed(route string, err error) {
	o.failures = append(o.failures, route+": "+err.Error())
}

type routeSet map[string]bool

func (r routeSet) HasRoute(path string) bool { return r[path] }

type imageConfig string

func (c imageConfig) DeployImagePath() string { return string(c) }

// flushableWriter counts flushes of an io.Writer.
type flushableWriter struct {
	io.Writer
	FlushCount int
}

func (w *flushableWriter) Flush() {
	w.FlushCount++
}
