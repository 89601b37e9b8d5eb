package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/drafter/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐┬─┐┌─┐┌─┐┌┬┐┌─┐┬─┐
   ││├┬┘├─┤├┤  │ ├┤ ├┬┘
  ─┴┘┴└─┴ ┴└   ┴ └─┘┴└─
`

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafter",
		Short: "Build simple websites from a site file",
		Long: `Drafter turns a site description into a working website.

A site file lists pages and their content: headers, text, links,
buttons, form fields, tables and lists. Drafter renders the pages,
checks that every link leads somewhere, and serves the site.

  • Links are verified before a page is shown
  • Buttons and links carry typed arguments back to the server
  • Prometheus metrics and OpenTelemetry tracing built in`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		createCmd(),
		renderCmd(),
		checkCmd(),
		serveCmd(),
		versionCmd(),
	)
	return cmd
}

// printBanner prints the drafter banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
