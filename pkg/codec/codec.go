package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vango-dev/drafter/internal/errors"
	"github.com/vango-dev/drafter/internal/literal"
)

// Markup constants shared with the front end. They must not change.
const (
	// JSONDecodeSymbol prefixes the name of a hidden field whose value must
	// be JSON-decoded on receipt.
	JSONDecodeSymbol = "--json-"

	// LabelSeparator joins a namespace and a field name.
	LabelSeparator = "~~~"

	// SubmitButtonKey is the query parameter (and submit input name) that
	// carries the label of the control that submitted a request.
	SubmitButtonKey = "--submit-button"
)

// Qualify returns the form field name for field scoped under namespace.
// The namespace is usually the visible label of a link or button, so two
// controls with the same label share their fields.
func Qualify(namespace, field string) string {
	return namespace + LabelSeparator + field
}

// Normalize checks that v is a string, integer, float or bool and returns
// it in canonical form: integers as int, floats as float64. NaN and
// infinities are rejected because they have no JSON form.
func Normalize(v any) (any, error) {
	switch x := v.(type) {
	case string, bool, int:
		return x, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, errors.New("E100").WithDetailf("Argument values must be finite numbers. Found %v", x)
		}
		return x, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < math.MinInt || n > math.MaxInt {
			return nil, errors.New("E100").WithDetailf("Argument value %d overflows int", n)
		}
		return int(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n > math.MaxInt {
			return nil, errors.New("E100").WithDetailf("Argument value %d overflows int", n)
		}
		return int(n), nil
	case reflect.Float32, reflect.Float64:
		return Normalize(rv.Float())
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	}
	return nil, errors.New("E100").WithDetailf(
		"Argument values must be strings, integers, floats, or booleans. Found %T", v)
}

// Marshal returns the JSON text of a scalar value. Output is ASCII-only and
// floats always carry a fractional part or an exponent, so the receiving
// side can tell 1.0 from 1.
func Marshal(v any) (string, error) {
	v, err := Normalize(v)
	if err != nil {
		return "", err
	}
	switch x := v.(type) {
	case string:
		return quoteJSON(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case float64:
		return literal.FormatFloat(x), nil
	}
	return "", errors.New("E100").WithDetailf("unsupported value %T", v)
}

// Encode returns the JSON text of v escaped for use inside an HTML
// attribute value.
func Encode(v any) (string, error) {
	s, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return EscapeHTML(s), nil
}

// Decode parses JSON text produced by Marshal. Integers decode as int and
// numbers with a fraction or exponent as float64; null decodes as nil.
// Arrays and objects are accepted for values produced by other clients.
func Decode(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON value in %q", s)
	}
	return fromJSON(raw)
}

func fromJSON(raw any) (any, error) {
	switch x := raw.(type) {
	case json.Number:
		if strings.ContainsAny(x.String(), ".eE") {
			return x.Float64()
		}
		if n, err := x.Int64(); err == nil && n >= math.MinInt && n <= math.MaxInt {
			return int(n), nil
		}
		return x.Float64()
	case []any:
		for i, item := range x {
			v, err := fromJSON(item)
			if err != nil {
				return nil, err
			}
			x[i] = v
		}
		return x, nil
	case map[string]any:
		for k, item := range x {
			v, err := fromJSON(item)
			if err != nil {
				return nil, err
			}
			x[k] = v
		}
		return x, nil
	}
	return raw, nil
}

// EscapeHTML escapes s for inclusion in HTML text or a quoted attribute
// value, converting both quote characters to entities.
func EscapeHTML(s string) string {
	if !strings.ContainsAny(s, `&<>"'`) {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + 16)
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#x27;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// Unescape reverses EscapeHTML (and any other HTML character references),
// as a browser does before submitting an attribute value.
func Unescape(s string) string {
	return html.UnescapeString(s)
}

// quoteJSON quotes s as an ASCII-only JSON string.
func quoteJSON(s string) string {
	var buf bytes.Buffer
	buf.Grow(len(s) + 2)
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			switch {
			case r < 0x20:
				fmt.Fprintf(&buf, `\u%04x`, r)
			case r < utf8.RuneSelf:
				buf.WriteRune(r)
			case r > 0xffff:
				r -= 0x10000
				fmt.Fprintf(&buf, `\u%04x\u%04x`, 0xd800+(r>>10), 0xdc00+(r&0x3ff))
			default:
				fmt.Fprintf(&buf, `\u%04x`, r)
			}
		}
	}
	buf.WriteByte('"')
	return buf.String()
}
