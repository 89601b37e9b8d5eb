package render

import (
	"fmt"
	"io"
	"time"

	"github.com/vango-dev/drafter/pkg/codec"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Route is the path the page was served for. It labels observer events.
	Route string

	// Body is the page content.
	Body []any

	// State is the application state the content is rendered against.
	State any

	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Styles contains inline CSS styles.
	Styles []string

	// HeadContent is raw markup appended to the head.
	HeadContent string

	// Framed wraps the form in a container div.
	Framed bool
}

// RenderPage renders a complete HTML document to the given writer. The
// content is wrapped in a form that posts back to the server, so buttons
// and fields submit the page's values.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	start := time.Now()

	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<html lang="%s">`+"\n", codec.EscapeHTML(lang)); err != nil {
		return err
	}
	if err := r.renderHead(w, page); err != nil {
		return err
	}
	if err := r.renderBody(w, page); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "</html>\n"); err != nil {
		return err
	}

	r.config.Observer.PageRendered(page.Route, time.Since(start))
	return nil
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n"); err != nil {
		return err
	}

	if _, err := io.WriteString(w, `  <meta charset="utf-8">`+"\n"); err != nil {
		return err
	}

	if _, err := io.WriteString(w, `  <meta name="viewport" content="width=device-width, initial-scale=1">`+"\n"); err != nil {
		return err
	}

	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", codec.EscapeHTML(page.Title)); err != nil {
			return err
		}
	}

	for _, href := range page.StyleSheets {
		if _, err := fmt.Fprintf(w, `  <link rel="stylesheet" href="%s">`+"\n", codec.EscapeHTML(href)); err != nil {
			return err
		}
	}

	for _, style := range page.Styles {
		if _, err := fmt.Fprintf(w, "  <style>%s</style>\n", style); err != nil {
			return err
		}
	}

	if page.HeadContent != "" {
		if _, err := io.WriteString(w, page.HeadContent+"\n"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</head>\n")
	return err
}

// renderBody renders the body with the page content inside its form.
func (r *Renderer) renderBody(w io.Writer, page PageData) error {
	open := "<body>\n"
	if page.Framed {
		open += `<div class="container">` + "\n"
	}
	open += `<form method="POST" enctype="application/x-www-form-urlencoded" accept-charset="utf-8">` + "\n"
	if _, err := io.WriteString(w, open); err != nil {
		return err
	}

	if err := r.RenderToWriter(w, page.Body, page.State); err != nil {
		return err
	}

	closing := "\n</form>\n"
	if page.Framed {
		closing += "</div>\n"
	}
	closing += "</body>\n"
	_, err := io.WriteString(w, closing)
	return err
}
