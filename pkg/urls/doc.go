// Package urls turns link targets into route paths and classifies them.
//
// A link target is either a route identifier ("index", "second_page",
// "/about") or a Go page function, whose name is used as the identifier.
// Identifiers are mapped to paths with Friendly. Targets that look like
// absolute URLs are left alone and checked with CheckInvalidExternal:
//
//	urls.Normalize("index")              // "/"
//	urls.Normalize(showProfile)          // "/showProfile"
//	urls.Classify("https://example.com") // External, ""
//	urls.Classify("javascript:alert(1)") // Invalid, "The URL uses the unsafe `javascript:` scheme"
//
// Verify is the route-table integrity check run when a page's links are
// validated: unregistered internal targets are broken links (E110) and
// malformed external targets are invalid URLs (E111).
package urls
