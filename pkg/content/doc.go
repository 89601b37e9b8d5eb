// Package content provides the page content nodes a drafter site is built
// from: text, links, buttons, images, form fields, lists and tables.
//
// Every node implements Content. Render produces the node's HTML and
// Verify checks its links against the server's route table before a page
// is served:
//
//	link, err := content.NewLink("Next", "second_page", []content.Pair{{Name: "step", Value: 2}})
//	if err != nil {
//	    return err
//	}
//	if err := link.Verify(router); err != nil {
//	    return err // E110: points to a page that is not registered
//	}
//	html := link.Render(state, cfg)
//
// Links and buttons carry arguments: hidden form fields scoped to the
// control's label, so the page that receives the request only sees the
// arguments of the control that was pressed (see codec.RemapForm).
//
// Nodes that accept Options also accept arbitrary keyword settings. A
// setting whose name is a known HTML attribute renders as that attribute;
// any other setting becomes a CSS declaration in the node's style
// attribute (see package attrs).
package content
