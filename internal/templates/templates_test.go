package templates

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/drafter/internal/config"
	"github.com/vango-dev/drafter/internal/errors"
	"github.com/vango-dev/drafter/pkg/sitefile"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"minimal", false},
		{"form", false},
		{"nonexistent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Get(tt.name)
			if tt.wantErr {
				var de *errors.DrafterError
				if !stderrors.As(err, &de) || de.Code != "E130" {
					t.Errorf("Get(%q) = %v, want E130", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tmpl.Name != tt.name {
				t.Errorf("Name = %q, want %q", tmpl.Name, tt.name)
			}
		})
	}
}

func TestList(t *testing.T) {
	if got := strings.Join(List(), ","); got != "form,minimal" {
		t.Errorf("List() = %s", got)
	}
}

// Every template must produce a site that decodes, has no broken links,
// and a configuration that loads.
func TestCreate(t *testing.T) {
	for _, name := range List() {
		t.Run(name, func(t *testing.T) {
			tmpl, err := Get(name)
			if err != nil {
				t.Fatal(err)
			}

			dir := t.TempDir()
			if err := tmpl.Create(dir, Config{ProjectName: "tea-shop", Title: `Tea "&" Co`, Port: 9000}); err != nil {
				t.Fatalf("Create() error: %v", err)
			}

			site, err := sitefile.ParseFile(filepath.Join(dir, "site.yaml"))
			if err != nil {
				t.Fatalf("site.yaml: %v", err)
			}
			if err := site.Verify(); err != nil {
				t.Errorf("site.yaml has broken links: %v", err)
			}

			cfg, err := config.Load(dir)
			if err != nil {
				t.Fatalf("drafter.yaml: %v", err)
			}
			if cfg.Title != `Tea "&" Co` || cfg.Port != 9000 {
				t.Errorf("config = %+v", cfg)
			}
			if _, err := os.Stat(filepath.Join(dir, "images")); err != nil {
				t.Errorf("images folder: %v", err)
			}
		})
	}
}

func TestCreateDefaults(t *testing.T) {
	tmpl, _ := Get("minimal")
	dir := t.TempDir()
	if err := tmpl.Create(dir, Config{ProjectName: "blog"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "blog" || cfg.Port != 8080 {
		t.Errorf("config = %+v", cfg)
	}
}
