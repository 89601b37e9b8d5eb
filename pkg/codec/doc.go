// Package codec carries typed values through hidden form fields.
//
// A value is serialized to JSON and escaped for an HTML attribute with
// Encode. The field name tells the receiving side how to treat it:
//
//	--json-count        JSON-decoded on receipt (standalone Argument nodes)
//	Save~~~count        scoped to the control labelled "Save"
//
// RemapForm performs the receiving half, turning url.Values back into a
// handler's arguments. Only marker-prefixed fields are JSON-decoded; values
// scoped to a control label arrive as their raw JSON text.
package codec
