package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/drafter/internal/logging"
)

func renderCmd() *cobra.Command {
	var (
		output     string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "render <site> [page]",
		Short: "Render a page to HTML",
		Long: `Render one page of a site to a complete HTML document.

The page defaults to index. Links are verified first; a page with
a broken link is not rendered.

Examples:
  drafter render site.yaml
  drafter render site.yaml about
  drafter render site.yaml about --output=about.html`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := "index"
			if len(args) == 2 {
				page = args[1]
			}
			return runRender(cmd, args[0], page, configPath, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the document to a file instead of stdout")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file (default: drafter.json or drafter.yaml next to the site)")

	return cmd
}

func runRender(cmd *cobra.Command, sitePath, page, configPath, output string) error {
	p, err := loadProject(sitePath, configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewWriter(cmd.ErrOrStderr(), p.config.Log.Level, p.config.Log.Format)
	if err != nil {
		return err
	}

	doc, err := p.newRouter(logger).Render(cmd.Context(), page, nil)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if _, err := io.WriteString(w, doc); err != nil {
		return fmt.Errorf("writing %s: %w", page, err)
	}
	if output != "" {
		success(cmd.ErrOrStderr(), "Rendered %s to %s", page, output)
	}
	return nil
}
