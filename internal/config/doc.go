// Package config provides configuration parsing for drafter sites.
//
// The configuration is stored in drafter.json (or drafter.yaml) next to the
// site. This package handles loading, saving, and validating it. A site
// without a configuration file runs on the defaults returned by New.
//
// # Configuration File Structure
//
//	{
//	  "host": "0.0.0.0",
//	  "port": 8080,
//	  "debug": false,
//	  "title": "My Site",
//	  "framed": true,
//	  "deployImagePath": "/static/images",
//	  "log": {
//	    "level": "info",
//	    "format": "json"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics"
//	  }
//	}
//
// The same keys are accepted in YAML.
//
// # Usage
//
//	cfg, err := config.LoadFromDir(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
