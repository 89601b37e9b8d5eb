package codec

import (
	"net/url"
	"sort"
	"strings"

	"github.com/vango-dev/drafter/internal/errors"
)

// RemapForm reconstructs a handler's arguments from submitted form values.
//
//   - Fields named JSONDecodeSymbol+name are JSON-decoded and stored under
//     name. They take precedence over a plain field of the same name.
//   - Fields qualified under the label of the pressed control (read from
//     SubmitButtonKey) are stored under their field name with the raw,
//     still JSON-encoded, string value.
//   - Fields qualified under any other label are dropped.
//   - The SubmitButtonKey field itself is dropped.
//   - Every other field is stored as a string.
//
// When a field is submitted more than once the last value wins, so a check
// box's visible input overrides its hidden fallback.
func RemapForm(values url.Values) (map[string]any, error) {
	pressed := values.Get(SubmitButtonKey)
	prefix := pressed + LabelSeparator

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(keys))
	decoded := make(map[string]any)
	for _, key := range keys {
		vs := values[key]
		if len(vs) == 0 || key == SubmitButtonKey {
			continue
		}
		value := vs[len(vs)-1]

		switch {
		case strings.HasPrefix(key, JSONDecodeSymbol):
			name := key[len(JSONDecodeSymbol):]
			v, err := Decode(value)
			if err != nil {
				return nil, errors.New("E100").
					WithDetailf("Field `%s` does not hold a JSON value: %q", name, value).
					Wrap(err)
			}
			decoded[name] = v
		case pressed != "" && strings.HasPrefix(key, prefix):
			out[key[len(prefix):]] = value
		case strings.Contains(key, LabelSeparator):
			continue
		default:
			out[key] = value
		}
	}
	for name, v := range decoded {
		out[name] = v
	}
	return out, nil
}
