package content

import (
	stderrors "errors"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/drafter/pkg/codec"
)

type routeSet map[string]bool

func (r routeSet) HasRoute(path string) bool { return r[path] }

type imageConfig string

func (c imageConfig) DeployImagePath() string { return string(c) }

func secondPage(state any) []any { return nil }

// elements parses markup as a browser would and returns the elements named
// tag in document order.
func elements(t *testing.T, markup, tag string) []*html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse %q: %v", markup, err)
	}
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func mustLink(t *testing.T, text string, to any, args any, opts ...Option) *Link {
	t.Helper()
	l, err := NewLink(text, to, args, opts...)
	if err != nil {
		t.Fatalf("NewLink(%q): %v", text, err)
	}
	return l
}

func TestRenderDispatch(t *testing.T) {
	tests := []struct {
		name string
		item any
		want string
	}{
		{"nil", nil, ""},
		{"string", "<b>raw</b>", "<b>raw</b>"},
		{"int", 5, "5"},
		{"bool", true, "True"},
		{"node", NewHeader("Hi", 2), "<h2>Hi</h2>"},
		{"value node", LineBreak{}, "<br />"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.item, nil, nil); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArgument(t *testing.T) {
	a := MustArgument("x", 5)
	want := "<input type='hidden' name='--json-x' value='5'  />"
	if got := a.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	s := MustArgument("msg", "it's")
	inputs := elements(t, s.String(), "input")
	if len(inputs) != 1 {
		t.Fatalf("got %d inputs", len(inputs))
	}
	value, _ := attr(inputs[0], "value")
	decoded, err := codec.Decode(value)
	if err != nil || decoded != "it's" {
		t.Errorf("decoded value = %#v, %v", decoded, err)
	}

	if _, err := NewArgument("bad", []int{1}); !stderrors.Is(err, ErrValue) {
		t.Errorf("NewArgument(list) error = %v, want value error", err)
	}
	if _, err := NewArgument("bad", nil); !stderrors.Is(err, ErrValue) {
		t.Errorf("NewArgument(nil) error = %v, want value error", err)
	}

	changed := MustArgument("x", 1)
	changed.Value = []int{1}
	if err := VerifyAll([]any{changed}, nil); !stderrors.Is(err, ErrValue) {
		t.Errorf("Verify() after setting a list = %v, want value error", err)
	}
	if got := changed.String(); got != "<input type='hidden' name='--json-x' value=''  />" {
		t.Errorf("String() = %q", got)
	}
}

func TestBuildArguments(t *testing.T) {
	tests := []struct {
		name string
		args any
		want string
	}{
		{
			name: "nil",
			args: nil,
			want: "",
		},
		{
			name: "single argument",
			args: MustArgument("x", 5),
			want: "<input type='hidden' name='Go~~~x' value='5' />",
		},
		{
			name: "map in key order",
			args: map[string]any{"b": 1, "a": "z"},
			want: "<input type='hidden' name='Go~~~a' value='&quot;z&quot;' />\n" +
				"<input type='hidden' name='Go~~~b' value='1' />",
		},
		{
			name: "mixed list",
			args: []any{Pair{Name: "a", Value: 1.5}, [2]any{"b", true}, MustArgument("c", "d")},
			want: "<input type='hidden' name='Go~~~a' value='1.5' />\n" +
				"<input type='hidden' name='Go~~~b' value='true' />\n" +
				"<input type='hidden' name='Go~~~c' value='&quot;d&quot;' />",
		},
		{
			name: "pairs",
			args: []Pair{{Name: "n", Value: 0}},
			want: "<input type='hidden' name='Go~~~n' value='0' />",
		},
		{
			name: "empty list",
			args: []Pair{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildArguments(tt.args, "Go")
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("BuildArguments() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseArgumentsRejects(t *testing.T) {
	bad := []any{
		42,
		"name",
		[]any{"not a pair"},
		[]any{[2]any{1, 2}},
		[]Pair{{Name: "list", Value: []int{1}}},
		map[string]any{"x": nil},
	}
	for _, args := range bad {
		if _, err := ParseArguments(args, "Go"); !stderrors.Is(err, ErrValue) {
			t.Errorf("ParseArguments(%#v) error = %v, want value error", args, err)
		}
	}
}

func TestLinkRender(t *testing.T) {
	tests := []struct {
		name string
		link *Link
		want string
	}{
		{
			name: "internal",
			link: mustLink(t, "Next", "second", nil),
			want: "<a href='/second?--submit-button=Next' >Next</a>",
		},
		{
			name: "index is root",
			link: mustLink(t, "Home", "index", nil),
			want: "<a href='/?--submit-button=Home' >Home</a>",
		},
		{
			name: "external keeps query",
			link: mustLink(t, "Docs", "https://example.com/a?q=1", nil),
			want: "<a href='https://example.com/a?q=1&--submit-button=Docs' >Docs</a>",
		},
		{
			name: "arguments precede anchor",
			link: mustLink(t, "Go", "next", []Pair{{Name: "x", Value: 5}}),
			want: "<input type='hidden' name='Go~~~x' value='5' /><a href='/next?--submit-button=Go' >Go</a>",
		},
		{
			name: "settings",
			link: mustLink(t, "Go Back", "/", nil, ID("back"), Style("color", "red")),
			want: "<a href='/?--submit-button=Go+Back' id='back' style='color: red'>Go Back</a>",
		},
		{
			name: "unsafe scheme is not written",
			link: mustLink(t, "x", "javascript:alert(1)", nil),
			want: "<a href='#' >x</a>",
		},
		{
			name: "malformed external is not written",
			link: mustLink(t, "x", "http://", nil),
			want: "<a href='#' >x</a>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.link.Render(nil, nil); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLinkTargets(t *testing.T) {
	if l := mustLink(t, "x", secondPage, nil); l.URL != "/secondPage" || l.External {
		t.Errorf("function target = %q (external %v)", l.URL, l.External)
	}
	if l := mustLink(t, "x", "mailto:a@b.c", nil); !l.External {
		t.Error("mailto link should be external")
	}
	if _, err := NewLink("x", "y", 3.5); !stderrors.Is(err, ErrValue) {
		t.Errorf("NewLink with bad arguments error = %v", err)
	}
}

func TestUnsafeTargets(t *testing.T) {
	for _, to := range []string{"javascript:alert(1)", "JavaScript:alert(1)", "data:text/html,<b>x</b>", "vbscript:msgbox"} {
		t.Run(to, func(t *testing.T) {
			l := mustLink(t, "x", to, nil)
			anchors := elements(t, l.Render(nil, nil), "a")
			if href, _ := attr(anchors[0], "href"); href != "#" {
				t.Errorf("link href = %q", href)
			}
			if err := l.Verify(routeSet{}); !stderrors.Is(err, ErrInvalidURL) {
				t.Errorf("link Verify() = %v, want invalid url", err)
			}

			b, err := NewButton("x", to, nil)
			if err != nil {
				t.Fatal(err)
			}
			inputs := elements(t, b.Render(nil, nil), "input")
			if action, _ := attr(inputs[0], "formaction"); action != "#" {
				t.Errorf("button formaction = %q", action)
			}
			if err := b.Verify(routeSet{}); !stderrors.Is(err, ErrInvalidURL) {
				t.Errorf("button Verify() = %v, want invalid url", err)
			}
		})
	}
}

func TestLinkVerify(t *testing.T) {
	routes := routeSet{"/": true, "/second": true}

	tests := []struct {
		name    string
		to      string
		wantErr error
		message string
	}{
		{name: "registered", to: "second"},
		{name: "root", to: "index"},
		{name: "external", to: "https://example.com"},
		{
			name:    "missing route",
			to:      "missing",
			wantErr: ErrBrokenLink,
			message: "Link `Next` points to non-existent page `/missing`.",
		},
		{
			name:    "invalid external",
			to:      "http://",
			wantErr: ErrInvalidURL,
			message: "is not a valid external url",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mustLink(t, "Next", tt.to, nil).Verify(routes)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Verify() = %v", err)
				}
				return
			}
			if !stderrors.Is(err, tt.wantErr) {
				t.Fatalf("Verify() = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Verify() = %q, want it to mention %q", err.Error(), tt.message)
			}
		})
	}
}

func TestButton(t *testing.T) {
	b, err := NewButton("Save", "index", nil, ID("save"))
	if err != nil {
		t.Fatal(err)
	}
	want := "<input type='submit' name='--submit-button' value='Save' formaction='/?--submit-button=Save' id='save' />"
	if got := b.Render(nil, nil); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	if err := b.Verify(routeSet{}); !stderrors.Is(err, ErrBrokenLink) {
		t.Errorf("Verify() = %v, want broken link", err)
	}

	b, err = NewButton("Add", "cart", map[string]any{"item": "apple"})
	if err != nil {
		t.Fatal(err)
	}
	inputs := elements(t, b.Render(nil, nil), "input")
	if len(inputs) != 2 {
		t.Fatalf("got %d inputs, want hidden field and submit", len(inputs))
	}
	if name, _ := attr(inputs[0], "name"); name != "Add~~~item" {
		t.Errorf("hidden field name = %q", name)
	}
	if got := b.GoString(); got != "Button(text='Add', url='/cart', arguments=['Add~~~item'])" {
		t.Errorf("GoString() = %q", got)
	}
}

func TestImage(t *testing.T) {
	tests := []struct {
		name  string
		image *Image
		cfg   Configuration
		want  string
	}{
		{
			name:  "default folder width only",
			image: NewImage("cat.png", 100, 0),
			want:  "<img src='/__images/cat.png' width='100'>",
		},
		{
			name:  "configured folder",
			image: NewImage("cat.png", 0, 0),
			cfg:   imageConfig("images"),
			want:  "<img src='images/cat.png' >",
		},
		{
			name:  "external",
			image: NewImage("https://example.com/c.png", 0, 20),
			want:  "<img src='https://example.com/c.png' height='20'>",
		},
		{
			name:  "alt and style",
			image: NewImage("/cat.png", 10, 0, Style("border", "1px"), Set("alt", "A cat")),
			want:  "<img src='/__images/cat.png' alt='A cat' width='10' style='border: 1px'>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.image.Render(nil, tt.cfg); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}

	if err := NewImage("missing.png", 0, 0).Verify(routeSet{}); err != nil {
		t.Errorf("Verify() = %v", err)
	}
}

func TestFormFields(t *testing.T) {
	tests := []struct {
		name string
		node Content
		want string
	}{
		{
			name: "text box",
			node: NewTextBox("name", nil),
			want: "<input type='text' name='name' >",
		},
		{
			name: "text box default",
			node: NewTextBox("name", "Ada"),
			want: "<input type='text' name='name' value='Ada'>",
		},
		{
			name: "password box",
			node: NewTextBox("pw", nil).WithKind("password"),
			want: "<input type='password' name='pw' >",
		},
		{
			name: "text area",
			node: NewTextArea("bio", "a<b", Set("rows", 3), Set("width", "100%")),
			want: "<textarea name='bio' rows='3' style='width: 100%'>a&lt;b</textarea>",
		},
		{
			name: "empty text area",
			node: NewTextArea("bio", nil),
			want: "<textarea name='bio' ></textarea>",
		},
		{
			name: "select box",
			node: NewSelectBox("color", []string{"red", "green"}, "green"),
			want: "<select name='color' value='green'><option value='red'>red</option>\n" +
				"<option selected value='green'>green</option></select>",
		},
		{
			name: "unchecked box",
			node: NewCheckBox("ok", false),
			want: "<input type='hidden' name='ok' value='' ><input type='checkbox' name='ok'  value='checked' >",
		},
		{
			name: "checked box",
			node: NewCheckBox("ok", true),
			want: "<input type='hidden' name='ok' value='' ><input type='checkbox' name='ok' checked value='checked' >",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Render(nil, nil); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
			if err := tt.node.Verify(nil); err != nil {
				t.Errorf("Verify() = %v", err)
			}
		})
	}
}

// A checkbox always submits its name: the hidden empty field when unchecked,
// and the checkbox value after it when checked.
func TestCheckBoxMarkup(t *testing.T) {
	for _, checked := range []bool{false, true} {
		inputs := elements(t, NewCheckBox("agree", checked).Render(nil, nil), "input")
		if len(inputs) != 2 {
			t.Fatalf("checked=%v: got %d inputs", checked, len(inputs))
		}
		if typ, _ := attr(inputs[0], "type"); typ != "hidden" {
			t.Errorf("first input type = %q, want hidden", typ)
		}
		for _, in := range inputs {
			if name, _ := attr(in, "name"); name != "agree" {
				t.Errorf("input name = %q", name)
			}
		}
		if _, ok := attr(inputs[1], "checked"); ok != checked {
			t.Errorf("checked=%v: checked attribute present = %v", checked, ok)
		}
	}
}

func TestSelectBoxSelectsExactlyOne(t *testing.T) {
	tests := []struct {
		def  any
		want int
	}{
		{nil, 0},
		{"b", 1},
		{"z", 0},
		{2, 0},
	}
	for _, tt := range tests {
		options := elements(t, NewSelectBox("s", []string{"a", "b", "2"}, tt.def).Render(nil, nil), "option")
		if len(options) != 3 {
			t.Fatalf("got %d options", len(options))
		}
		selected := 0
		for _, o := range options {
			if _, ok := attr(o, "selected"); ok {
				selected++
			}
		}
		if selected != tt.want {
			t.Errorf("default %#v: %d selected, want %d", tt.def, selected, tt.want)
		}
	}
}

func TestStructuralNodes(t *testing.T) {
	tests := []struct {
		name string
		node Content
		want string
	}{
		{"text", NewText("<i>x</i>"), "<i>x</i>"},
		{"line break", LineBreak{}, "<br />"},
		{"rule", HorizontalRule{}, "<hr />"},
		{"span", NewSpan("a", NewText("<b>b</b>"), LineBreak{}, 3), "<span>a<b>b</b><br />3</span>"},
		{"header default level", NewHeader("Hi", 0), "<h1>Hi</h1>"},
		{"header", NewHeader("Hi", 3), "<h3>Hi</h3>"},
		{"header negative level", NewHeader("Hi", -1), "<h1>Hi</h1>"},
		{"header level above six", NewHeader("Hi", 9), "<h6>Hi</h6>"},
		{"bulleted", NewBulletedList(Items([]string{"a", "b"})), "<ul ><li>a</li>\n<li>b</li></ul>"},
		{"numbered", NewNumberedList([]any{1, 2}, Class("steps")), "<ol class='steps'><li>1</li>\n<li>2</li></ol>"},
		{"empty list", NewBulletedList(nil), "<ul ></ul>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Render(nil, nil); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContainersVerifyChildren(t *testing.T) {
	routes := routeSet{"/ok": true}
	good := mustLink(t, "ok", "ok", nil)
	bad := mustLink(t, "bad", "gone", nil)

	if err := NewSpan("x", good).Verify(routes); err != nil {
		t.Errorf("span Verify() = %v", err)
	}
	if err := NewSpan(good, bad).Verify(routes); !stderrors.Is(err, ErrBrokenLink) {
		t.Errorf("span Verify() = %v, want broken link", err)
	}
	if err := NewBulletedList([]any{"x", bad}).Verify(routes); !stderrors.Is(err, ErrBrokenLink) {
		t.Errorf("list Verify() = %v, want broken link", err)
	}
}

type point struct {
	X      int
	Y      string `table:"why"`
	Hidden bool   `table:"-"`
	note   string
}

func TestTable(t *testing.T) {
	tests := []struct {
		name   string
		rows   any
		header []string
		want   string
	}{
		{
			name:   "cells with header",
			rows:   [][]string{{"a", "b"}, {"c", "d"}},
			header: []string{"x", "y"},
			want: "<table ><thead><tr><th>x</th><th>y</th></tr></thead>" +
				"<tr><td>a</td><td>b</td></tr>\n<tr><td>c</td><td>d</td></tr></table>",
		},
		{
			name: "mixed cells",
			rows: []any{[]any{1, true}, "whole row"},
			want: "<table ><tr><td>1</td><td>True</td></tr>\n<tr><td>whole row</td></tr></table>",
		},
		{
			name: "single struct",
			rows: point{X: 1, Y: "a", note: "n"},
			want: "<table ><thead><tr><th>Field</th><th>Type</th><th>Current Value</th></tr></thead>" +
				"<tr><td><code>X</code></td><td><code>int</code></td><td><code>1</code></td></tr>\n" +
				"<tr><td><code>why</code></td><td><code>string</code></td><td><code>&#x27;a&#x27;</code></td></tr></table>",
		},
		{
			name: "list of structs",
			rows: []*point{{X: 1, Y: "a"}, {X: 2, Y: "b"}},
			want: "<table ><thead><tr><th>X</th><th>why</th></tr></thead>" +
				"<tr><td>1</td><td>a</td></tr>\n<tr><td>2</td><td>b</td></tr></table>",
		},
		{
			name:   "list of structs with header",
			rows:   []point{{X: 1, Y: "a"}},
			header: []string{"Num", "Letter"},
			want: "<table ><thead><tr><th>Num</th><th>Letter</th></tr></thead>" +
				"<tr><td>1</td><td>a</td></tr></table>",
		},
		{
			name: "nil",
			rows: nil,
			want: "<table ></table>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.rows, tt.header)
			if err != nil {
				t.Fatal(err)
			}
			if got := table.Render(nil, nil); got != tt.want {
				t.Errorf("Render() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestTableRejects(t *testing.T) {
	for _, rows := range []any{5, "text", []any{5}, []any{nil}} {
		if _, err := NewTable(rows, nil); !stderrors.Is(err, ErrValue) {
			t.Errorf("NewTable(%#v) error = %v, want value error", rows, err)
		}
	}
}

func TestUpdateStyleAndAttr(t *testing.T) {
	l := mustLink(t, "x", "y", nil)
	if got := UpdateStyle(l, "color", "red"); got != l {
		t.Fatal("UpdateStyle should return the same node")
	}
	UpdateAttr(l, "title", "tip")
	want := "<a href='/y?--submit-button=x' title='tip' style='color: red'>x</a>"
	if got := l.Render(nil, nil); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	area := UpdateAttr(NewTextArea("t", nil), "cols", 20)
	if got := area.Render(nil, nil); got != "<textarea name='t' cols='20'></textarea>" {
		t.Errorf("Render() = %q", got)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		item any
		want string
	}{
		{nil, "none"},
		{"s", "string"},
		{NewText("t"), "text"},
		{MustArgument("a", 1), "argument"},
		{mustLink(t, "l", "x", nil), "link"},
		{NewImage("i", 0, 0), "image"},
		{NewCheckBox("c", false), "checkbox"},
		{LineBreak{}, "linebreak"},
		{&HorizontalRule{}, "rule"},
		{NewNumberedList(nil), "numbered_list"},
		{7, "value"},
	}
	for _, tt := range tests {
		if got := KindOf(tt.item); got != tt.want {
			t.Errorf("KindOf(%T) = %q, want %q", tt.item, got, tt.want)
		}
	}
}
