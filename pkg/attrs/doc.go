// Package attrs resolves a node's keyword settings into HTML attributes and
// inline CSS.
//
// Nodes accept an open-ended bag of settings instead of a fixed list of
// options. At render time every setting becomes either an attribute or a
// style declaration:
//
//	settings := attrs.NewSettings(
//	    attrs.Setting{Key: "id", Value: "total"},
//	    attrs.Setting{Key: "color", Value: "red"},
//	    attrs.Setting{Key: "style_margin", Value: "4px"},
//	)
//	attrs.Resolve(nil, settings)
//	// id='total' style='color: red; margin: 4px'
//
// "id" is in the Baseline allow-list so it stays an attribute; "color" is
// not, so it becomes a style; "style_margin" is a style because of its
// prefix. Node types widen the allow-list with their own extra set (a text
// area accepts "rows" and "cols", a check box accepts "checked").
package attrs
