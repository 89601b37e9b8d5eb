package content

import (
	"strings"

	"github.com/vango-dev/drafter/internal/literal"
	"github.com/vango-dev/drafter/pkg/attrs"
	"github.com/vango-dev/drafter/pkg/codec"
)

// TextBox is a single-line <input>. Its value is submitted under Name.
type TextBox struct {
	settings
	Name string
	// Kind is the input type, "text" unless changed.
	Kind string
	// Default is the initial value; nil leaves the box empty.
	Default any
}

// NewTextBox returns a text input.
func NewTextBox(name string, defaultValue any, opts ...Option) *TextBox {
	return &TextBox{settings: newSettings(opts), Name: name, Kind: "text", Default: defaultValue}
}

// WithKind sets the input type (password, email, number, ...).
func (t *TextBox) WithKind(kind string) *TextBox {
	t.Kind = kind
	return t
}

func (t *TextBox) Render(any, Configuration) string {
	var overrides []attrs.Setting
	if t.Default != nil {
		overrides = append(overrides, attrs.Setting{Key: "value", Value: t.Default})
	}
	return "<input type='" + codec.EscapeHTML(t.Kind) + "' name='" + codec.EscapeHTML(t.Name) + "' " +
		t.resolve(nil, overrides...) + ">"
}

func (t *TextBox) Verify(RouteTable) error { return nil }

func (t *TextBox) String() string { return t.Render(nil, nil) }

var textAreaAttrs = attrs.NewSet("rows", "cols", "autocomplete", "autofocus", "disabled", "placeholder",
	"readonly", "required")

// TextArea is a multi-line text input.
type TextArea struct {
	settings
	Name    string
	Default any
}

// NewTextArea returns a text area. Settings named rows, cols, autocomplete,
// autofocus, disabled, placeholder, readonly or required become attributes.
func NewTextArea(name string, defaultValue any, opts ...Option) *TextArea {
	return &TextArea{settings: newSettings(opts), Name: name, Default: defaultValue}
}

func (t *TextArea) Render(any, Configuration) string {
	body := ""
	if t.Default != nil {
		body = codec.EscapeHTML(literal.Format(t.Default))
	}
	return "<textarea name='" + codec.EscapeHTML(t.Name) + "' " + t.resolve(textAreaAttrs) + ">" + body +
		"</textarea>"
}

func (t *TextArea) Verify(RouteTable) error { return nil }

func (t *TextArea) String() string { return t.Render(nil, nil) }

// SelectBox is a drop-down of string options.
type SelectBox struct {
	settings
	Name    string
	Options []string
	// Default preselects the option equal to it; nil selects nothing.
	Default any
}

// NewSelectBox returns a drop-down.
func NewSelectBox(name string, options []string, defaultValue any, opts ...Option) *SelectBox {
	return &SelectBox{settings: newSettings(opts), Name: name, Options: options, Default: defaultValue}
}

func (s *SelectBox) Render(any, Configuration) string {
	var overrides []attrs.Setting
	if s.Default != nil {
		overrides = append(overrides, attrs.Setting{Key: "value", Value: s.Default})
	}

	options := make([]string, len(s.Options))
	for i, option := range s.Options {
		escaped := codec.EscapeHTML(option)
		if d, ok := s.Default.(string); ok && d == option {
			options[i] = "<option selected value='" + escaped + "'>" + escaped + "</option>"
		} else {
			options[i] = "<option value='" + escaped + "'>" + escaped + "</option>"
		}
	}
	return "<select name='" + codec.EscapeHTML(s.Name) + "' " + s.resolve(nil, overrides...) + ">" +
		strings.Join(options, "\n") + "</select>"
}

func (s *SelectBox) Verify(RouteTable) error { return nil }

func (s *SelectBox) String() string { return s.Render(nil, nil) }

var checkBoxAttrs = attrs.NewSet("checked")

// CheckBox is a checkbox paired with a hidden empty field of the same
// name, so an unchecked box still submits a value.
type CheckBox struct {
	settings
	Name    string
	Checked bool
}

// NewCheckBox returns a checkbox.
func NewCheckBox(name string, checked bool, opts ...Option) *CheckBox {
	return &CheckBox{settings: newSettings(opts), Name: name, Checked: checked}
}

func (c *CheckBox) Render(any, Configuration) string {
	s := c.resolve(checkBoxAttrs)
	name := codec.EscapeHTML(c.Name)
	checked := ""
	if c.Checked {
		checked = "checked"
	}
	return "<input type='hidden' name='" + name + "' value='' " + s + ">" +
		"<input type='checkbox' name='" + name + "' " + checked + " value='checked' " + s + ">"
}

func (c *CheckBox) Verify(RouteTable) error { return nil }

func (c *CheckBox) String() string { return c.Render(nil, nil) }
