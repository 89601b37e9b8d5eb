// Package literal formats Go values the way the Drafter front end expects
// them to appear in markup: booleans as True/False, floats always carrying a
// fractional part or exponent, and quoted strings following repr rules
// (single quotes unless the text contains a single quote and no double quote).
package literal

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Format returns the display form of v.
// Strings are returned unchanged; containers format their elements with Repr.
func Format(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return format(v, false)
}

// Repr returns the quoted literal form of v.
// Strings are quoted with Quote; everything else matches Format.
func Repr(v any) string {
	return format(v, true)
}

func format(v any, quoteStrings bool) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case string:
		if quoteStrings {
			return Quote(x)
		}
		return x
	case bool:
		if x {
			return "True"
		}
		return "False"
	case float64:
		return FormatFloat(x)
	case float32:
		return FormatFloat(float64(x))
	case fmt.Stringer:
		if quoteStrings {
			return Quote(x.String())
		}
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return FormatFloat(rv.Float())
	case reflect.String:
		if quoteStrings {
			return Quote(rv.String())
		}
		return rv.String()
	case reflect.Bool:
		return format(rv.Bool(), quoteStrings)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "[]"
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = Repr(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case reflect.Map:
		keys := rv.MapKeys()
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, Repr(k.Interface())+": "+Repr(rv.MapIndex(k).Interface()))
		}
		sort.Strings(parts)
		return "{" + strings.Join(parts, ", ") + "}"
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "None"
		}
		return format(rv.Elem().Interface(), quoteStrings)
	}
	return fmt.Sprintf("%+v", v)
}

// FormatFloat formats f with the shortest representation that round-trips,
// always including a fractional part or an exponent so the value reads back
// as a float. Exponent notation is used outside [1e-4, 1e16).
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if f == 0 {
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.IndexByte(s, '.') < 0 {
		s += ".0"
	}
	return s
}

// Quote returns s as a quoted string literal using repr rules.
func Quote(s string) string {
	quote := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		quote = '"'
	}

	var buf strings.Builder
	buf.Grow(len(s) + 2)
	buf.WriteByte(quote)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&buf, `\x%02x`, s[i])
			i++
			continue
		}
		i += size

		switch {
		case r == rune(quote) || r == '\\':
			buf.WriteByte('\\')
			buf.WriteRune(r)
		case r == '\t':
			buf.WriteString(`\t`)
		case r == '\n':
			buf.WriteString(`\n`)
		case r == '\r':
			buf.WriteString(`\r`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&buf, `\x%02x`, r)
		case r == ' ' || unicode.IsPrint(r):
			buf.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&buf, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&buf, `\u%04x`, r)
		default:
			fmt.Fprintf(&buf, `\U%08x`, r)
		}
	}
	buf.WriteByte(quote)
	return buf.String()
}
