package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/drafter/internal/errors"
	"github.com/vango-dev/drafter/internal/templates"
)

func createCmd() *cobra.Command {
	var (
		template string
		title    string
		port     int
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new site",
		Long: `Create a new site in a directory with the specified name.

Templates:
  minimal   A two-page site (default)
  form      A site with a sign-up form

Examples:
  drafter create my-site
  drafter create shop --template=form --title="Tea Shop"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args[0], template, title, port)
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "minimal", "Site template (minimal, form)")
	cmd.Flags().StringVar(&title, "title", "", "Site title (default: the site name)")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port the site is served on")

	return cmd
}

func runCreate(cmd *cobra.Command, name, templateName, title string, port int) error {
	w := cmd.OutOrStdout()
	printBanner(w)
	fmt.Fprintln(w, "  Creating a new drafter site...")
	fmt.Fprintln(w)

	if !isValidProjectName(name) {
		return errors.New("E131").
			WithDetail("Site name '" + name + "' cannot be used as a directory name").
			WithSuggestion("Use letters, numbers, and hyphens")
	}

	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}

	dir, err := filepath.Abs(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		return errors.New("E131").
			WithDetail("Directory '" + name + "' already exists").
			WithSuggestion("Choose a different name or remove the existing directory")
	}

	info(w, "Creating site from '%s' template...", templateName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	cfg := templates.Config{ProjectName: filepath.Base(dir), Title: title, Port: port}
	if err := tmpl.Create(dir, cfg); err != nil {
		os.RemoveAll(dir)
		return err
	}

	fmt.Fprintln(w)
	success(w, "Created %s/", name)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  To get started:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "    drafter serve %s\n", filepath.Join(name, "site.yaml"))
	fmt.Fprintln(w)
	return nil
}

func isValidProjectName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	for _, r := range name {
		if r == ' ' || r == '\\' || r == 0 {
			return false
		}
	}
	return true
}
