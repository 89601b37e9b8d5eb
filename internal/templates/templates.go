package templates

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/vango-dev/drafter/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName is the name of the project directory.
	ProjectName string

	// Title is the site title.
	Title string

	// Port is the port the site is served on.
	Port int
}

// Template represents a site template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"form":    formTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E130").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: minimal, form")
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create writes the template's files into dir.
func (t *Template) Create(dir string, cfg Config) error {
	if cfg.Title == "" {
		cfg.Title = cfg.ProjectName
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}

	for relPath, content := range t.Files {
		tmpl, err := template.New(relPath).Parse(content)
		if err != nil {
			return fmt.Errorf("invalid template %s: %w", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return fmt.Errorf("template execute error %s: %w", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}
	return nil
}

const configFile = `title: {{printf "%q" .Title}}
port: {{.Port}}
framed: true
srcImageFolder: images
deployImagePath: /images
log:
  level: info
  format: text
`

// minimalTemplate returns the minimal template.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "A two-page site",
		Files: map[string]string{
			"drafter.yaml": configFile,
			"images/.keep": "",
			"site.yaml": `pages:
  index:
    - header: {{printf "%q" .Title}}
    - Welcome to your new site.
    - link: About
      to: about
  about:
    - header: About
      level: 2
    - text: Edit site.yaml to change this page.
    - button: Back
      to: index
`,
		},
	}
}

// formTemplate returns a template with a form that submits arguments.
func formTemplate() *Template {
	return &Template{
		Name:        "form",
		Description: "A site with a sign-up form",
		Files: map[string]string{
			"drafter.yaml": configFile,
			"images/.keep": "",
			"site.yaml": `pages:
  index:
    - header: {{printf "%q" .Title}}
    - text: Tell us about yourself.
    - textbox: name
      style: {width: 20em}
    - selectbox: plan
      options: [Free, Pro]
      default: Free
    - checkbox: newsletter
      default: true
    - linebreak:
    - button: Sign up
      to: thanks
      arguments: {source: {{printf "%q" .ProjectName}}}
  thanks:
    - header: Thanks!
      level: 2
    - table:
        - [Plan, Free]
        - [Newsletter, "yes"]
      header: [Setting, Value]
    - link: Home
      to: index
`,
		},
	}
}
