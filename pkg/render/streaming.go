package render

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vango-dev/drafter/pkg/codec"
)

// StreamingRenderer wraps Renderer with chunked output support.
// It flushes content incrementally for faster time-to-first-byte.
type StreamingRenderer struct {
	*Renderer
	flusher http.Flusher
	w       io.Writer
}

// NewStreamingRenderer creates a streaming renderer that writes to
// an http.ResponseWriter. If the writer implements http.Flusher,
// content will be flushed after each section for faster TTFB.
func NewStreamingRenderer(w http.ResponseWriter, renderer *Renderer) *StreamingRenderer {
	return newStreamingRenderer(w, renderer)
}

func newStreamingRenderer(w io.Writer, renderer *Renderer) *StreamingRenderer {
	flusher, _ := w.(http.Flusher)
	return &StreamingRenderer{
		Renderer: renderer,
		flusher:  flusher,
		w:        w,
	}
}

// RenderPage renders a complete HTML document with incremental flushing.
// The head section is flushed immediately for faster first paint.
func (s *StreamingRenderer) RenderPage(page PageData) error {
	start := time.Now()

	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(s.w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, `<html lang="%s">`+"\n", codec.EscapeHTML(lang)); err != nil {
		return err
	}
	if err := s.renderHead(s.w, page); err != nil {
		return err
	}

	// Flush head immediately for faster first paint
	s.flush()

	if err := s.renderBody(s.w, page); err != nil {
		return err
	}
	if _, err := io.WriteString(s.w, "</html>\n"); err != nil {
		return err
	}

	s.flush()

	s.config.Observer.PageRendered(page.Route, time.Since(start))
	return nil
}

// flush flushes the writer if it supports flushing.
func (s *StreamingRenderer) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}
