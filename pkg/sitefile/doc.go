// Package sitefile decodes site descriptions: YAML files listing a site's
// pages and the content of each.
//
//	title: Shop
//	pages:
//	  index:
//	    - header: Welcome
//	      level: 1
//	    - "Plain <b>markup</b> is written as is."
//	    - link: Our products
//	      to: products
//	      arguments: {category: tea}
//	  products:
//	    - bulleted_list:
//	        - Green tea
//	        - Black tea
//	      class: products
//	    - button: Back
//	      to: index
//
// Each item is a scalar, written verbatim, or a mapping whose first key
// names the kind (text, header, link, button, image, textbox, textarea,
// selectbox, checkbox, linebreak, rule, span, numbered_list,
// bulleted_list, table, argument). Kinds that take settings accept
// settings, style, id and class keys. JSON files decode too.
//
// Decoding errors are E121 and carry the line and column of the
// offending node.
package sitefile
