package content

import (
	"reflect"
	"strings"

	"github.com/vango-dev/drafter/internal/errors"
	"github.com/vango-dev/drafter/internal/literal"
	"github.com/vango-dev/drafter/pkg/codec"
)

// Table is an HTML table of pre-formatted cells.
type Table struct {
	settings
	Header []string
	Rows   [][]string
}

// NewTable builds a table from rows, which may be:
//
//   - a struct (or pointer to one): one row per field showing its name,
//     type and current value, under a Field/Type/Current Value header;
//   - a slice of structs: one row per element, headed by the field names
//     unless header is given;
//   - a slice of rows, each a slice of cells or a single string.
//
// Struct fields tagged `table:"-"` are skipped and `table:"name"` renames
// a column. Unexported fields are skipped.
func NewTable(rows any, header []string, opts ...Option) (*Table, error) {
	t := &Table{settings: newSettings(opts), Header: header}

	rv := indirect(reflect.ValueOf(rows))
	switch rv.Kind() {
	case reflect.Invalid:
		return t, nil
	case reflect.Struct:
		t.Rows = describeRecord(rv)
		if len(t.Header) == 0 {
			t.Header = []string{"Field", "Type", "Current Value"}
		}
		return t, nil
	case reflect.Slice, reflect.Array:
	default:
		return nil, errors.New("E102").WithDetailf("Table rows must be a list or a struct, got %T", rows)
	}

	var names []string
	for i := 0; i < rv.Len(); i++ {
		row := indirect(rv.Index(i))
		switch row.Kind() {
		case reflect.Struct:
			fields := visibleFields(row.Type())
			cells := make([]string, len(fields))
			names = names[:0]
			for j, f := range fields {
				cells[j] = literal.Format(row.FieldByIndex(f.index).Interface())
				names = append(names, f.name)
			}
			t.Rows = append(t.Rows, cells)
		case reflect.String:
			t.Rows = append(t.Rows, []string{row.String()})
		case reflect.Slice, reflect.Array:
			cells := make([]string, row.Len())
			for j := range cells {
				cells[j] = literal.Format(row.Index(j).Interface())
			}
			t.Rows = append(t.Rows, cells)
		default:
			return nil, errors.New("E102").
				WithDetailf("Table row %d must be a list, a string or a struct, got %s", i,
					literal.Repr(rv.Index(i).Interface()))
		}
	}
	if names != nil && header == nil {
		t.Header = names
	}
	return t, nil
}

func (t *Table) Render(any, Configuration) string {
	var b strings.Builder
	b.WriteString("<table " + t.resolve(nil) + ">")
	if len(t.Header) > 0 {
		b.WriteString("<thead><tr>")
		for _, cell := range t.Header {
			b.WriteString("<th>" + cell + "</th>")
		}
		b.WriteString("</tr></thead>")
	}
	for i, row := range t.Rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>" + cell + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String()
}

func (t *Table) Verify(RouteTable) error { return nil }

func (t *Table) String() string { return t.Render(nil, nil) }

type column struct {
	name  string
	index []int
}

func visibleFields(rt reflect.Type) []column {
	var cols []column
	for _, f := range reflect.VisibleFields(rt) {
		if !f.IsExported() || f.Anonymous {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("table"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		cols = append(cols, column{name: name, index: f.Index})
	}
	return cols
}

func describeRecord(rv reflect.Value) [][]string {
	var rows [][]string
	for _, col := range visibleFields(rv.Type()) {
		f := rv.FieldByIndex(col.index)
		rows = append(rows, []string{
			"<code>" + col.name + "</code>",
			"<code>" + typeName(f.Type()) + "</code>",
			"<code>" + codec.EscapeHTML(literal.Repr(f.Interface())) + "</code>",
		})
	}
	return rows
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
