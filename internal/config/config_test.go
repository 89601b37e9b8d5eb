package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/drafter/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func errorCode(err error) string {
	var de *errors.DrafterError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return ""
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want %q", cfg.Host, DefaultHost)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if !cfg.Debug || !cfg.Framed {
		t.Errorf("Debug = %v, Framed = %v, want both true", cfg.Debug, cfg.Framed)
	}
	if cfg.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", cfg.Title, DefaultTitle)
	}
	if cfg.DeployImagePath() != "images" {
		t.Errorf("DeployImagePath() = %q, want %q", cfg.DeployImagePath(), "images")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if errorCode(err) != "E120" {
		t.Errorf("Load(empty dir) error = %v, want E120", err)
	}

	writeFile(t, filepath.Join(tmpDir, "drafter.json"), `{
  "host": "0.0.0.0",
  "port": 9000,
  "debug": false,
  "title": "Shop",
  "deployImagePath": "/static/img",
  "log": {"format": "json"}
}
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Address() != "0.0.0.0:9000" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if cfg.Debug {
		t.Error("Debug should be false")
	}
	if !cfg.Framed {
		t.Error("Framed should keep its default")
	}
	if cfg.Title != "Shop" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if cfg.DeployImagePath() != "/static/img" {
		t.Errorf("DeployImagePath() = %q", cfg.DeployImagePath())
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "info" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics.Path = %q", cfg.Metrics.Path)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "drafter.yaml"), `
port: 3000
framed: false
lang: de
styleSheets:
  - /css/site.css
srcImageFolder: pictures
metrics:
  enabled: true
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != 3000 || cfg.Host != DefaultHost {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if cfg.Framed {
		t.Error("Framed should be false")
	}
	if !cfg.Debug {
		t.Error("Debug should keep its default")
	}
	if cfg.Lang != "de" {
		t.Errorf("Lang = %q", cfg.Lang)
	}
	if len(cfg.StyleSheets) != 1 || cfg.StyleSheets[0] != "/css/site.css" {
		t.Errorf("StyleSheets = %v", cfg.StyleSheets)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if got := cfg.ImageFolder(); got != filepath.Join(tmpDir, "pictures") {
		t.Errorf("ImageFolder() = %q", got)
	}
}

func TestLoadPrefersJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "drafter.json"), `{"title": "from json"}`)
	writeFile(t, filepath.Join(tmpDir, "drafter.yml"), `title: from yaml`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "from json" {
		t.Errorf("Title = %q", cfg.Title)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		detail  string
	}{
		{"bad json", "drafter.json", `{"port": `, "Failed to parse drafter.json"},
		{"bad yaml", "drafter.yaml", "port: [", "Failed to parse drafter.yaml"},
		{"port range", "drafter.json", `{"port": 70000}`, "Port must be between"},
		{"log format", "drafter.yaml", "log:\n  format: xml", "Log format"},
		{"metrics path", "drafter.json", `{"metrics": {"path": "metrics"}}`, "Metrics path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, tt.file), tt.content)

			_, err := Load(tmpDir)
			if errorCode(err) != "E120" {
				t.Fatalf("Load() error = %v, want E120", err)
			}
			if !strings.Contains(err.Error(), tt.detail) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.detail)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"drafter.json", "drafter.yaml"} {
		t.Run(name, func(t *testing.T) {
			tmpDir := t.TempDir()
			cfg := New()
			cfg.Title = "Saved"
			cfg.Debug = false
			cfg.Port = 4000

			if err := cfg.SaveTo(filepath.Join(tmpDir, name)); err != nil {
				t.Fatal(err)
			}
			loaded, err := Load(tmpDir)
			if err != nil {
				t.Fatal(err)
			}
			if loaded.Title != "Saved" || loaded.Debug || loaded.Port != 4000 {
				t.Errorf("loaded = %+v", loaded)
			}

			loaded.Title = "Again"
			if err := loaded.Save(); err != nil {
				t.Fatal(err)
			}
			again, err := LoadFile(loaded.Path())
			if err != nil {
				t.Fatal(err)
			}
			if again.Title != "Again" {
				t.Errorf("Title = %q", again.Title)
			}
		})
	}

	if err := New().Save(); errorCode(err) != "E120" {
		t.Errorf("Save() without path = %v", err)
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "pages", "deep")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(tmpDir, "drafter.yml"), "title: root")

	root, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	if root != tmpDir {
		t.Errorf("FindProjectRoot() = %q, want %q", root, tmpDir)
	}

	cfg, err := LoadFromDir(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "root" {
		t.Errorf("Title = %q", cfg.Title)
	}
}

func TestLoadFromDirDefaults(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != DefaultTitle || cfg.Path() != "" {
		t.Errorf("cfg = %+v", cfg)
	}
}
