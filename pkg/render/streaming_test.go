package render

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStreamingRendererFlushes(t *testing.T) {
	var buf bytes.Buffer
	w := &flushableWriter{Writer: &buf}
	obs := &recordingObserver{}

	sr := newStreamingRenderer(w, NewRenderer(RendererConfig{Observer: obs}))
	if err := sr.RenderPage(PageData{Route: "/", Title: "Streamed", Body: []any{"content"}}); err != nil {
		t.Fatal(err)
	}

	if w.FlushCount != 2 {
		t.Errorf("FlushCount = %d, want 2", w.FlushCount)
	}
	if !strings.Contains(buf.String(), "content") {
		t.Errorf("body missing: %q", buf.String())
	}
	if len(obs.pages) != 1 {
		t.Errorf("pages = %v", obs.pages)
	}
}

// The streamed document is byte-for-byte the buffered one.
func TestStreamingMatchesBuffered(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	page := PageData{Title: "Same", Body: []any{"a", "b"}, Framed: true, Styles: []string{"p{}"}}

	var buffered bytes.Buffer
	if err := renderer.RenderPage(&buffered, page); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	if err := NewStreamingRenderer(rec, renderer).RenderPage(page); err != nil {
		t.Fatal(err)
	}
	if rec.Body.String() != buffered.String() {
		t.Errorf("streamed:\n%s\nbuffered:\n%s", rec.Body.String(), buffered.String())
	}
	if !rec.Flushed {
		t.Error("recorder should have been flushed")
	}
}

func TestStreamingWithoutFlusher(t *testing.T) {
	var buf bytes.Buffer
	sr := newStreamingRenderer(&buf, NewRenderer(RendererConfig{}))
	if err := sr.RenderPage(PageData{Body: []any{"x"}}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "</html>\n") {
		t.Errorf("output = %q", buf.String())
	}
}
