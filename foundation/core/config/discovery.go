// File: discovery.go
// Title: Configuration File Discovery
// Description: Searches a list of directories for the first configuration
//              file matching the given base names and extensions.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-17

package config

import (
	"os"
	"path/filepath"
	"strings"

	gloxerror "github.com/msto63/glox/foundation/core/error"
)

// DiscoveryOptions controls where Discover looks for configuration files
type DiscoveryOptions struct {
	Paths      []string               // Directories searched in order
	Filenames  []string               // Base names without extension
	Extensions []string               // Extensions including the dot (default: .toml .yaml .yml)
	EnvPrefix  string                 // Passed through to the loaded Config
	Defaults   map[string]interface{} // Passed through to the loaded Config
	Required   bool                   // Fail when no file is found
}

// DefaultExtensions lists the extensions tried when none are configured
var DefaultExtensions = []string{".toml", ".yaml", ".yml"}

// Discover finds and loads the first matching configuration file. When no
// file exists and Required is false, an empty Config carrying the defaults
// and environment prefix is returned.
func Discover(options DiscoveryOptions) (*Config, error) {
	path, found := FindConfigFile(options)
	if !found {
		if options.Required {
			return nil, gloxerror.New("no configuration file found").
				WithCode(gloxerror.CodeNotFound).
				WithOperation("config.Discover").
				WithDetail("paths", options.Paths).
				WithDetail("filenames", options.Filenames)
		}
		return Empty(options.EnvPrefix, options.Defaults), nil
	}

	return LoadWithOptions(path, LoadOptions{
		Format:    FormatAuto,
		EnvPrefix: options.EnvPrefix,
		Defaults:  options.Defaults,
	})
}

// FindConfigFile returns the first existing file in paths × filenames × extensions
func FindConfigFile(options DiscoveryOptions) (string, bool) {
	extensions := options.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	for _, dir := range options.Paths {
		dir = expandHome(dir)
		for _, name := range options.Filenames {
			for _, ext := range extensions {
				candidate := filepath.Join(dir, name+ext)
				if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
					return candidate, true
				}
			}
		}
	}
	return "", false
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) string {
	return expandHome(path)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
