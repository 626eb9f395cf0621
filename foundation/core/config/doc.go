// File: doc.go
// Title: Configuration Package Documentation
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-17

/*
Package config loads glox configuration from TOML or YAML files.

Values are addressed with dot paths ("server.port"). Every getter consults
the environment first: with prefix GLOX the key "server.port" is overridden
by GLOX_SERVER_PORT. Defaults passed to LoadOptions are merged under the
file contents, and every getter accepts a final fallback.

	cfg, err := config.Discover(config.DiscoveryOptions{
		Paths:     []string{".", filepath.Join(home, ".config", "glox")},
		Filenames: []string{"glox"},
		EnvPrefix: "GLOX",
	})
	port := cfg.GetInt("server.port", 9470)

Watch reloads the file through fsnotify and calls the registered handler
with the old and new configuration.
*/
package config
