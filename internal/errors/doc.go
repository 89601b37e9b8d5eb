// Package errors provides the structured error taxonomy shared by Drafter's
// packages.
//
// Every failure the content layer can produce is one of three kinds:
//   - value: a malformed Argument value, arguments shape or table rows.
//     These are programmer errors caught at construction time.
//   - broken link: an internal link target that is not a registered route.
//   - invalid URL: an external-looking link that fails the syntax check.
//
// Configuration and site-description errors form a fourth category used by
// the command line tool.
//
// # Error Codes
//
// Each error has a unique code (e.g., "E110") that maps to a short message,
// a detailed explanation and a documentation URL. Errors match their kind's
// sentinel with errors.Is:
//
//	err := errors.New("E110").WithDetail("Link `Next` points to non-existent page `/next`.")
//	stderrors.Is(err, errors.ErrBrokenLink) // true
//
// Site files attach a source location, which Format renders with
// surrounding lines:
//
//	ERROR E121: Invalid site description
//
//	  site.yaml:4:7
//
//	     3 │   - path: /
//	  →  4 │     content: 12
//	       │       ^
package errors
