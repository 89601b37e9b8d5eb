// Package render provides server-side rendering of drafter page content.
//
// A page is a list of content items: strings written verbatim, or nodes
// from package content that render themselves. The renderer concatenates
// them, wraps them in a document and reports what it rendered to an
// Observer.
//
// # Basic Usage
//
// To render a content list to a string:
//
//	renderer := render.NewRenderer(render.RendererConfig{Configuration: cfg})
//	html, err := renderer.RenderToString(items, state)
//
// # Full Page Rendering
//
// To render a complete HTML document:
//
//	page := render.PageData{
//	    Route: "/",
//	    Body:  items,
//	    State: state,
//	    Title: cfg.Title,
//	}
//	err := renderer.RenderPage(w, page)
//
// The body is wrapped in a POST form so that buttons submit the page's
// fields back to the server.
//
// # Verification
//
// Renderer.Verify checks every link on a page against the route table
// before anything is written, and reports a failure to the observer.
//
// # Streaming
//
// For large pages, use StreamingRenderer to flush the head before the body:
//
//	sr := render.NewStreamingRenderer(w, renderer)
//	err := sr.RenderPage(page)
//
// # Security
//
// Text and Header bodies are raw markup by design. Values that end up in
// attributes (argument values, field names, option values) are escaped by
// the nodes themselves.
package render
