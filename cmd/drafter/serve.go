package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/drafter/internal/logging"
	"github.com/vango-dev/drafter/pkg/middleware"
	"github.com/vango-dev/drafter/pkg/router"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		port       int
		host       string
		configPath string
		trace      bool
		metrics    bool
	)

	cmd := &cobra.Command{
		Use:   "serve <site>",
		Short: "Serve a site",
		Long: `Serve every page of a site over HTTP.

Submitted forms are decoded and passed back to the page. Pages with
broken links are answered with an error instead of being shown.

Examples:
  drafter serve site.yaml
  drafter serve site.yaml --port=9000
  drafter serve site.yaml --metrics --trace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(args[0], configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				p.config.Port = port
			}
			if host != "" {
				p.config.Host = host
			}
			if metrics {
				p.config.Metrics.Enabled = true
			}
			if err := p.config.Validate(); err != nil {
				return err
			}
			return runServe(cmd, p, trace)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file (default: drafter.json or drafter.yaml next to the site)")
	cmd.Flags().BoolVar(&trace, "trace", false, "Trace requests with the global OpenTelemetry tracer provider")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose Prometheus metrics (default from config)")

	return cmd
}

// handler builds the site's HTTP handler with the observability the
// configuration asks for.
func (p *project) handler(cmd *cobra.Command, trace bool) (*router.Router, error) {
	logger, err := logging.NewWriter(cmd.ErrOrStderr(), p.config.Log.Level, p.config.Log.Format)
	if err != nil {
		return nil, err
	}

	var opts []router.Option
	if p.config.Metrics.Enabled {
		m := middleware.Prometheus()
		opts = append(opts, router.WithObserver(m), router.WithMiddleware(m.Handler))
	}
	if trace {
		t := middleware.OpenTelemetry()
		opts = append(opts, router.WithRequestObserver(t.Observer), router.WithMiddleware(t.Handler))
	}

	r := p.newRouter(logger, opts...)
	if p.config.Metrics.Enabled {
		r.Mount(p.config.Metrics.Path, middleware.MetricsHandler(prometheus.DefaultGatherer))
	}

	if err := r.Check(cmd.Context()); err != nil {
		logger.Warn("site has broken links", "error", err)
	}
	return r, nil
}

func runServe(cmd *cobra.Command, p *project, trace bool) error {
	r, err := p.handler(cmd, trace)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printBanner(w)
	success(w, "Serving %d pages at %s", len(p.site.Pages), p.config.URL())
	if p.config.Metrics.Enabled {
		info(w, "Metrics at %s%s", p.config.URL(), p.config.Metrics.Path)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              p.config.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	info(w, "Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
