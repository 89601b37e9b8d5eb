package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/drafter/internal/errors"
)

const (
	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultTitle is the default page title.
	DefaultTitle = "Drafter Website"

	// DefaultLang is the default document language.
	DefaultLang = "en"

	// DefaultDeployImagePath is where images are served from once deployed.
	DefaultDeployImagePath = "images"

	// DefaultMetricsPath is where the metrics endpoint is mounted.
	DefaultMetricsPath = "/metrics"
)

// FileNames are the configuration file names searched for, in order.
var FileNames = []string{"drafter.json", "drafter.yaml", "drafter.yml"}

// Config is the server and page configuration of a drafter site.
type Config struct {
	// Host is the host the server binds to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port the server listens on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Debug enables debug output on rendered pages and verbose logs.
	Debug bool `json:"debug" yaml:"debug"`

	// Title is the title of every page.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Framed wraps page content in the site frame.
	Framed bool `json:"framed" yaml:"framed"`

	// Lang is the language of every page.
	Lang string `json:"lang,omitempty" yaml:"lang,omitempty"`

	// StyleSheets are stylesheet URLs linked from every page head.
	StyleSheets []string `json:"styleSheets,omitempty" yaml:"styleSheets,omitempty"`

	// AdditionalHeaderContent is raw markup appended to every page head.
	AdditionalHeaderContent string `json:"additionalHeaderContent,omitempty" yaml:"additionalHeaderContent,omitempty"`

	// AdditionalCSSContent is raw CSS appended to every page.
	AdditionalCSSContent string `json:"additionalCssContent,omitempty" yaml:"additionalCssContent,omitempty"`

	// SrcImageFolder is the local directory images are served from.
	SrcImageFolder string `json:"srcImageFolder,omitempty" yaml:"srcImageFolder,omitempty"`

	// ImagePath is the base path internal image URLs are rewritten to.
	ImagePath string `json:"deployImagePath,omitempty" yaml:"deployImagePath,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// Metrics contains metrics endpoint configuration.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	path string
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// MetricsConfig contains metrics endpoint settings.
type MetricsConfig struct {
	// Enabled mounts the Prometheus endpoint on the server.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Path is the URL path of the endpoint.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Host:      DefaultHost,
		Port:      DefaultPort,
		Debug:     true,
		Title:     DefaultTitle,
		Framed:    true,
		Lang:      DefaultLang,
		ImagePath: DefaultDeployImagePath,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Path: DefaultMetricsPath,
		},
	}
}

// DeployImagePath returns the base path internal image URLs are served
// from.
func (c *Config) DeployImagePath() string {
	return c.ImagePath
}

// Load reads configuration from the first of FileNames found in dir.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E120").
		WithDetail("No drafter.json or drafter.yaml found in " + dir).
		WithSuggestion("Create drafter.json or run without a configuration file to use the defaults")
}

// LoadFile reads configuration from path. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E120").Wrap(err).WithDetail(err.Error())
	}

	cfg := New()
	if isYAML(path) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E120").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that " + filepath.Base(path) + " is valid YAML")
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
	}

	cfg.path = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("E120").WithDetail("no config path set")
	}
	return c.SaveTo(c.path)
}

// SaveTo writes the configuration to path, as YAML or JSON by extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.path = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.path == "" {
		return ""
	}
	return filepath.Dir(c.path)
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Lang == "" {
		c.Lang = DefaultLang
	}
	if c.ImagePath == "" {
		c.ImagePath = DefaultDeployImagePath
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return errors.New("E120").
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Port))
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return errors.New("E120").
			WithDetail("Log format must be text or json, got " + strconv.Quote(c.Log.Format))
	}
	if c.Metrics.Path != "" && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("E120").
			WithDetail("Metrics path must start with /, got " + strconv.Quote(c.Metrics.Path))
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// URL returns the base URL of the running server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// ImageFolder returns the absolute path of the local image directory, or ""
// when none is configured.
func (c *Config) ImageFolder() string {
	if c.SrcImageFolder == "" {
		return ""
	}
	if filepath.IsAbs(c.SrcImageFolder) {
		return c.SrcImageFolder
	}
	return filepath.Join(c.Dir(), c.SrcImageFolder)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E120").
				WithDetail("No drafter.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromDir loads the configuration governing dir: the nearest config file
// in dir or one of its parents, or the defaults when there is none.
func LoadFromDir(dir string) (*Config, error) {
	root, err := FindProjectRoot(dir)
	if err != nil {
		return New(), nil
	}
	return Load(root)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
