package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/drafter/internal/errors"
	"github.com/vango-dev/drafter/pkg/content"
)

func checkCmd() *cobra.Command {
	var (
		configPath string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "check <site>",
		Short: "Verify every link of a site",
		Long: `Decode a site file and verify that every link and button on
every page leads to a page of the site or a valid external URL.

With --json, one JSON object is printed per page.

Examples:
  drafter check site.yaml
  drafter check site.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], configPath, jsonOut)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file (default: drafter.json or drafter.yaml next to the site)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print results as JSON lines")

	return cmd
}

// pageResult is one line of `check --json` output.
type pageResult struct {
	Page  string          `json:"page"`
	OK    bool            `json:"ok"`
	Error json.RawMessage `json:"error,omitempty"`
}

func runCheck(cmd *cobra.Command, sitePath, configPath string, jsonOut bool) error {
	p, err := loadProject(sitePath, configPath)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	routes := p.site.Routes()
	failed := 0
	for _, page := range p.site.Pages {
		verr := content.VerifyAll(page.Content, routes)
		if verr != nil {
			failed++
		}

		switch {
		case jsonOut:
			if err := writeResult(w, page.Path, verr); err != nil {
				return err
			}
		case verr != nil:
			errorMsg(w, "%s  %s", page.Path, asDrafterError(verr).FormatCompact())
			errors.PrintError(cmd.ErrOrStderr(), verr)
		default:
			success(w, "%s", page.Path)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d pages have broken links", failed, len(p.site.Pages))
	}
	if !jsonOut {
		info(w, "%d pages checked", len(p.site.Pages))
	}
	return nil
}

func writeResult(w io.Writer, path string, err error) error {
	result := pageResult{Page: path, OK: err == nil}
	if err != nil {
		result.Error = json.RawMessage(asDrafterError(err).FormatJSON())
	}
	line, merr := json.Marshal(result)
	if merr != nil {
		return merr
	}
	_, werr := fmt.Fprintln(w, string(line))
	return werr
}

// asDrafterError returns the DrafterError in err's chain, or one carrying
// err's message.
func asDrafterError(err error) *errors.DrafterError {
	var de *errors.DrafterError
	if stderrors.As(err, &de) {
		return de
	}
	return &errors.DrafterError{Message: err.Error()}
}
