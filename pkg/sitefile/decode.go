package sitefile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/drafter/internal/errors"
	"github.com/vango-dev/drafter/pkg/content"
	"github.com/vango-dev/drafter/pkg/urls"
)

// styleKeys are accepted by every kind whose constructor takes options.
var styleKeys = []string{"settings", "style", "id", "class"}

type kindSpec struct {
	params []string
	styled bool
}

// kinds lists every content kind a site file may name, with the extra
// keys it takes.
var kinds = map[string]kindSpec{
	"text":          {},
	"header":        {params: []string{"level"}},
	"link":          {params: []string{"to", "arguments"}, styled: true},
	"button":        {params: []string{"to", "arguments"}, styled: true},
	"image":         {params: []string{"width", "height"}, styled: true},
	"textbox":       {params: []string{"default", "kind"}, styled: true},
	"textarea":      {params: []string{"default"}, styled: true},
	"selectbox":     {params: []string{"options", "default"}, styled: true},
	"checkbox":      {params: []string{"default"}, styled: true},
	"linebreak":     {},
	"rule":          {},
	"span":          {},
	"numbered_list": {styled: true},
	"bulleted_list": {styled: true},
	"table":         {params: []string{"header"}, styled: true},
	"argument":      {params: []string{"value"}, styled: true},
}

func (k kindSpec) accepts(key string) bool {
	for _, p := range k.params {
		if p == key {
			return true
		}
	}
	if k.styled {
		for _, p := range styleKeys {
			if p == key {
				return true
			}
		}
	}
	return false
}

type decoder struct {
	file string
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) *errors.DrafterError {
	return errors.New("E121").
		WithDetailf(format, args...).
		WithLocation(d.file, n.Line, n.Column)
}

// param is a key of a content item other than its kind.
type param struct {
	key   *yaml.Node
	value *yaml.Node
}

func (d *decoder) site(root *yaml.Node) (*Site, error) {
	if root.Kind != yaml.MappingNode {
		return nil, d.errorf(root, "The site file must be a mapping with a `pages` key.")
	}

	site := &Site{}
	var pages *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "title":
			title, err := d.str(value)
			if err != nil {
				return nil, err
			}
			site.Title = title
		case "pages":
			pages = value
		default:
			return nil, d.errorf(key, "Unknown key `%s`; expected `title` or `pages`.", key.Value)
		}
	}
	if pages == nil {
		return nil, d.errorf(root, "The site file has no `pages`.")
	}
	if pages.Kind != yaml.MappingNode {
		return nil, d.errorf(pages, "`pages` must map page names to content lists.")
	}

	seen := make(map[string]bool)
	for i := 0; i+1 < len(pages.Content); i += 2 {
		key, value := pages.Content[i], pages.Content[i+1]
		path := urls.Friendly(key.Value)
		if seen[path] {
			return nil, d.errorf(key, "Page `%s` is defined twice.", path)
		}
		seen[path] = true

		items, err := d.items(value)
		if err != nil {
			return nil, err
		}
		site.Pages = append(site.Pages, Page{Name: key.Value, Path: path, Content: items})
	}
	return site, nil
}

// items decodes a sequence of content items. A null node is empty.
func (d *decoder) items(n *yaml.Node) ([]any, error) {
	n = resolve(n)
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "Expected a list of content items, found %s.", describe(n))
	}
	out := make([]any, 0, len(n.Content))
	for _, child := range n.Content {
		item, err := d.item(child)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// item decodes one content item: a scalar stands for itself, a mapping
// names its kind with its first key.
func (d *decoder) item(n *yaml.Node) (any, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		return d.scalar(n)
	case yaml.MappingNode:
	default:
		return nil, d.errorf(n, "Expected a content item, found %s.", describe(n))
	}
	if len(n.Content) == 0 {
		return nil, d.errorf(n, "Empty content item.")
	}

	kindKey, value := n.Content[0], n.Content[1]
	spec, ok := kinds[kindKey.Value]
	if !ok {
		return nil, d.errorf(kindKey, "Unknown content kind `%s`.", kindKey.Value)
	}

	var params []param
	seen := make(map[string]bool)
	for i := 2; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if !spec.accepts(key.Value) {
			return nil, d.errorf(key, "A %s does not take `%s`.", kindKey.Value, key.Value)
		}
		if seen[key.Value] {
			return nil, d.errorf(key, "Duplicate key `%s`.", key.Value)
		}
		seen[key.Value] = true
		params = append(params, param{key: key, value: n.Content[i+1]})
	}

	var opts []content.Option
	if spec.styled {
		var err error
		if opts, err = d.options(params); err != nil {
			return nil, err
		}
	}

	node, err := d.build(kindKey.Value, value, lookup(params), opts)
	if err != nil {
		if isSiteError(err) {
			return nil, err
		}
		return nil, d.errorf(kindKey, "Cannot build %s: %v", kindKey.Value, err).Wrap(err)
	}
	return node, nil
}

func (d *decoder) build(kind string, v *yaml.Node, p map[string]*yaml.Node, opts []content.Option) (any, error) {
	switch kind {
	case "text":
		body, err := d.str(v)
		if err != nil {
			return nil, err
		}
		return content.NewText(body), nil

	case "header":
		body, err := d.str(v)
		if err != nil {
			return nil, err
		}
		level, err := d.optInt(p["level"], 1)
		if err != nil {
			return nil, err
		}
		return content.NewHeader(body, level), nil

	case "link", "button":
		text, err := d.str(v)
		if err != nil {
			return nil, err
		}
		to, ok := p["to"]
		if !ok {
			return nil, d.errorf(v, "A %s needs a `to` target.", kind)
		}
		target, err := d.str(to)
		if err != nil {
			return nil, err
		}
		args, err := d.pairs(p["arguments"])
		if err != nil {
			return nil, err
		}
		if kind == "link" {
			return content.NewLink(text, target, args, opts...)
		}
		return content.NewButton(text, target, args, opts...)

	case "image":
		src, err := d.str(v)
		if err != nil {
			return nil, err
		}
		width, err := d.optInt(p["width"], 0)
		if err != nil {
			return nil, err
		}
		height, err := d.optInt(p["height"], 0)
		if err != nil {
			return nil, err
		}
		return content.NewImage(src, width, height, opts...), nil

	case "textbox":
		name, err := d.str(v)
		if err != nil {
			return nil, err
		}
		def, err := d.optScalar(p["default"])
		if err != nil {
			return nil, err
		}
		box := content.NewTextBox(name, def, opts...)
		if k, ok := p["kind"]; ok {
			kind, err := d.str(k)
			if err != nil {
				return nil, err
			}
			box.WithKind(kind)
		}
		return box, nil

	case "textarea":
		name, err := d.str(v)
		if err != nil {
			return nil, err
		}
		def, err := d.optScalar(p["default"])
		if err != nil {
			return nil, err
		}
		return content.NewTextArea(name, def, opts...), nil

	case "selectbox":
		name, err := d.str(v)
		if err != nil {
			return nil, err
		}
		options, err := d.strs(p["options"])
		if err != nil {
			return nil, err
		}
		def, err := d.optScalar(p["default"])
		if err != nil {
			return nil, err
		}
		return content.NewSelectBox(name, options, def, opts...), nil

	case "checkbox":
		name, err := d.str(v)
		if err != nil {
			return nil, err
		}
		checked := false
		if n, ok := p["default"]; ok {
			if err := d.decode(n, &checked); err != nil {
				return nil, err
			}
		}
		return content.NewCheckBox(name, checked, opts...), nil

	case "linebreak":
		return content.LineBreak{}, nil

	case "rule":
		return content.HorizontalRule{}, nil

	case "span":
		items, err := d.items(v)
		if err != nil {
			return nil, err
		}
		return content.NewSpan(items...), nil

	case "numbered_list", "bulleted_list":
		items, err := d.items(v)
		if err != nil {
			return nil, err
		}
		if kind == "numbered_list" {
			return content.NewNumberedList(items, opts...), nil
		}
		return content.NewBulletedList(items, opts...), nil

	case "table":
		rows, err := d.rows(v)
		if err != nil {
			return nil, err
		}
		var header []string
		if h, ok := p["header"]; ok {
			if header, err = d.strs(h); err != nil {
				return nil, err
			}
		}
		return content.NewTable(rows, header, opts...)

	case "argument":
		name, err := d.str(v)
		if err != nil {
			return nil, err
		}
		value, err := d.optScalar(p["value"])
		if err != nil {
			return nil, err
		}
		return content.NewArgument(name, value, opts...)
	}
	return nil, fmt.Errorf("unhandled content kind %q", kind)
}

// options turns the styling keys of an item into content options, in
// file order.
func (d *decoder) options(params []param) ([]content.Option, error) {
	var opts []content.Option
	for _, p := range params {
		switch p.key.Value {
		case "id":
			id, err := d.str(p.value)
			if err != nil {
				return nil, err
			}
			opts = append(opts, content.ID(id))
		case "class":
			classes, err := d.strs(p.value)
			if err != nil {
				return nil, err
			}
			opts = append(opts, content.Class(classes...))
		case "settings", "style":
			m := resolve(p.value)
			if m.Kind != yaml.MappingNode {
				return nil, d.errorf(m, "`%s` must be a mapping, found %s.", p.key.Value, describe(m))
			}
			for i := 0; i+1 < len(m.Content); i += 2 {
				v, err := d.scalar(m.Content[i+1])
				if err != nil {
					return nil, err
				}
				if p.key.Value == "style" {
					opts = append(opts, content.Style(m.Content[i].Value, v))
				} else {
					opts = append(opts, content.Set(m.Content[i].Value, v))
				}
			}
		}
	}
	return opts, nil
}

// pairs decodes an arguments mapping into name/value pairs in file order.
func (d *decoder) pairs(n *yaml.Node) ([]content.Pair, error) {
	if n == nil {
		return nil, nil
	}
	n = resolve(n)
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "`arguments` must map names to values, found %s.", describe(n))
	}
	out := make([]content.Pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		v, err := d.scalar(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, content.Pair{Name: n.Content[i].Value, Value: v})
	}
	return out, nil
}

// rows decodes table rows: each row is a list of cells or a single cell.
func (d *decoder) rows(n *yaml.Node) ([]any, error) {
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "Table rows must be a list, found %s.", describe(n))
	}
	rows := make([]any, 0, len(n.Content))
	for _, r := range n.Content {
		r = resolve(r)
		switch r.Kind {
		case yaml.ScalarNode:
			cell, err := d.str(r)
			if err != nil {
				return nil, err
			}
			rows = append(rows, cell)
		case yaml.SequenceNode:
			cells := make([]any, 0, len(r.Content))
			for _, c := range r.Content {
				v, err := d.scalar(c)
				if err != nil {
					return nil, err
				}
				cells = append(cells, v)
			}
			rows = append(rows, cells)
		default:
			return nil, d.errorf(r, "A table row must be a list of cells, found %s.", describe(r))
		}
	}
	return rows, nil
}

func (d *decoder) decode(n *yaml.Node, v any) error {
	if err := resolve(n).Decode(v); err != nil {
		return d.errorf(n, "%v", err).Wrap(err)
	}
	return nil
}

// scalar decodes a scalar to its natural Go value: string, int, float64,
// bool or nil.
func (d *decoder) scalar(n *yaml.Node) (any, error) {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode {
		return nil, d.errorf(n, "Expected a single value, found %s.", describe(n))
	}
	var v any
	if err := d.decode(n, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (d *decoder) optScalar(n *yaml.Node) (any, error) {
	if n == nil {
		return nil, nil
	}
	return d.scalar(n)
}

func (d *decoder) str(n *yaml.Node) (string, error) {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode {
		return "", d.errorf(n, "Expected text, found %s.", describe(n))
	}
	if isNull(n) {
		return "", nil
	}
	return n.Value, nil
}

func (d *decoder) optInt(n *yaml.Node, def int) (int, error) {
	if n == nil {
		return def, nil
	}
	var i int
	if err := d.decode(n, &i); err != nil {
		return 0, err
	}
	return i, nil
}

// strs decodes a list of strings; a single scalar is a list of one.
func (d *decoder) strs(n *yaml.Node) ([]string, error) {
	if n == nil {
		return nil, nil
	}
	n = resolve(n)
	if n.Kind == yaml.ScalarNode {
		s, err := d.str(n)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, d.errorf(n, "Expected a list of text, found %s.", describe(n))
	}
	out := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		s, err := d.str(c)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func lookup(params []param) map[string]*yaml.Node {
	m := make(map[string]*yaml.Node, len(params))
	for _, p := range params {
		m[p.key.Value] = p.value
	}
	return m
}

// isSiteError reports whether err already carries a site file location.
func isSiteError(err error) bool {
	de, ok := err.(*errors.DrafterError)
	return ok && de.Code == "E121"
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a list"
	case yaml.ScalarNode:
		return fmt.Sprintf("%q", n.Value)
	}
	return "nothing"
}
