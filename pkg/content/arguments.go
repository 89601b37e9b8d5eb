package content

import (
	"reflect"
	"sort"
	"strings"

	"github.com/vango-dev/drafter/internal/errors"
	"github.com/vango-dev/drafter/internal/literal"
	"github.com/vango-dev/drafter/pkg/codec"
)

// Argument is a named scalar carried by a form. Rendered on its own it is a
// hidden field marked for JSON decoding; attached to a link or button it is
// scoped to that control's label.
type Argument struct {
	settings
	Name  string
	Value any
}

// NewArgument validates value and returns an Argument. Values must be
// strings, integers, floats or booleans.
func NewArgument(name string, value any, opts ...Option) (*Argument, error) {
	v, err := codec.Normalize(value)
	if err != nil {
		return nil, err
	}
	return &Argument{settings: newSettings(opts), Name: name, Value: v}, nil
}

// MustArgument is like NewArgument but panics on an invalid value.
func MustArgument(name string, value any, opts ...Option) *Argument {
	a, err := NewArgument(name, value, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Render returns the hidden input for the argument. A Value that cannot be
// encoded renders as an empty value; Verify reports it, and pages are
// verified before they are rendered.
func (a *Argument) Render(any, Configuration) string {
	value, err := codec.Encode(a.Value)
	if err != nil {
		value = ""
	}
	return "<input type='hidden' name='" + codec.JSONDecodeSymbol + codec.EscapeHTML(a.Name) +
		"' value='" + value + "' " + a.resolve(nil) + " />"
}

// Verify reports an invalid value set after construction.
func (a *Argument) Verify(RouteTable) error {
	_, err := codec.Normalize(a.Value)
	return err
}

func (a *Argument) String() string { return a.Render(nil, nil) }

// Pair is a (name, value) argument given without an Argument node.
type Pair struct {
	Name  string
	Value any
}

// Field is one hidden form field produced from a control's arguments.
// Value is already JSON-encoded and HTML-escaped.
type Field struct {
	Name  string
	Value string
}

// String renders the hidden input for the field.
func (f Field) String() string {
	return "<input type='hidden' name='" + codec.EscapeHTML(f.Name) + "' value='" + f.Value + "' />"
}

// ParseArguments turns the arguments given to a link or button into form
// fields scoped under namespace. Accepted shapes are nil, a single
// Argument, a map of names to values, or a slice whose elements are
// Arguments, Pairs or two-element [name, value] pairs. Map entries are
// emitted in key order. Any other shape fails with E101.
func ParseArguments(args any, namespace string) ([]Field, error) {
	switch a := args.(type) {
	case nil:
		return nil, nil
	case Argument:
		return appendField(nil, namespace, a.Name, a.Value)
	case *Argument:
		if a == nil {
			return nil, nil
		}
		return appendField(nil, namespace, a.Name, a.Value)
	}

	rv := reflect.ValueOf(args)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)

		var fields []Field
		for _, k := range keys {
			v := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
			var err error
			if fields, err = appendField(fields, namespace, k, v.Interface()); err != nil {
				return nil, err
			}
		}
		return fields, nil

	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		var fields []Field
		for i := 0; i < rv.Len(); i++ {
			name, value, err := splitArgument(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			if fields, err = appendField(fields, namespace, name, value); err != nil {
				return nil, err
			}
		}
		return fields, nil
	}

	return nil, errors.New("E101").
		WithDetailf("Could not create arguments from the provided value: %s", literal.Format(args))
}

// BuildArguments renders the hidden fields for args, one per line.
func BuildArguments(args any, namespace string) (string, error) {
	fields, err := ParseArguments(args, namespace)
	if err != nil {
		return "", err
	}
	return renderFields(fields), nil
}

func renderFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, "\n")
}

func splitArgument(item any) (string, any, error) {
	switch a := item.(type) {
	case Argument:
		return a.Name, a.Value, nil
	case *Argument:
		if a != nil {
			return a.Name, a.Value, nil
		}
	case Pair:
		return a.Name, a.Value, nil
	case [2]any:
		if name, ok := a[0].(string); ok {
			return name, a[1], nil
		}
	case []any:
		if len(a) == 2 {
			if name, ok := a[0].(string); ok {
				return name, a[1], nil
			}
		}
	}
	return "", nil, errors.New("E101").
		WithDetailf("Could not create an argument from the list item: %s", literal.Repr(item))
}

func appendField(fields []Field, namespace, name string, value any) ([]Field, error) {
	encoded, err := codec.Encode(value)
	if err != nil {
		return nil, errors.New("E100").WithDetailf("argument %q: %s", name, detailOf(err)).Wrap(err)
	}
	return append(fields, Field{Name: codec.Qualify(namespace, name), Value: encoded}), nil
}

func detailOf(err error) string {
	if de, ok := err.(*errors.DrafterError); ok && de.Detail != "" {
		return de.Detail
	}
	return err.Error()
}
