// Package templates provides site scaffolding templates.
//
// A template writes a site file and a configuration file for a new
// drafter site.
//
// # Available Templates
//
//   - minimal: A two-page site
//   - form: A site with a sign-up form
//
// # Usage
//
//	tmpl, err := templates.Get("minimal")
//	if err != nil {
//	    return err
//	}
//	err = tmpl.Create(dir, templates.Config{ProjectName: "shop"})
//
// # Template Variables
//
//	{{.ProjectName}} - Name of the project
//	{{.Title}}       - Site title (defaults to the project name)
//	{{.Port}}        - Port to serve on (defaults to 8080)
package templates
