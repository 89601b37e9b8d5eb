package main

import (
	"log/slog"
	"path/filepath"

	"github.com/vango-dev/drafter/internal/config"
	"github.com/vango-dev/drafter/pkg/router"
	"github.com/vango-dev/drafter/pkg/sitefile"
)

// project is a site file with the configuration found next to it.
type project struct {
	site   *sitefile.Site
	config *config.Config
}

// loadProject reads the site file at path. The configuration is read from
// configPath when given, and otherwise searched for upward from the site
// file's directory.
func loadProject(path, configPath string) (*project, error) {
	site, err := sitefile.ParseFile(path)
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.LoadFromDir(filepath.Dir(path))
	}
	if err != nil {
		return nil, err
	}

	if site.Title != "" {
		cfg.Title = site.Title
	}
	return &project{site: site, config: cfg}, nil
}

// newRouter builds a router serving every page of the site.
func (p *project) newRouter(logger *slog.Logger, opts ...router.Option) *router.Router {
	opts = append([]router.Option{router.WithLogger(logger)}, opts...)
	r := router.New(p.config, nil, opts...)
	p.site.Register(r)
	return r
}
