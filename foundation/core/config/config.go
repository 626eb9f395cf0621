// File: config.go
// Title: Core Configuration Management Implementation
// Description: Loads, parses and serves configuration data from TOML and
//              YAML files with environment variable overrides.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2026-10-17 v0.2.0: Dropped caches and validation rules, fsnotify watching

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	gloxerror "github.com/msto63/glox/foundation/core/error"
)

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML

	// FormatAuto auto-detects format from file extension
	FormatAuto
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Config represents a configuration instance with thread-safe access
type Config struct {
	mu        sync.RWMutex
	data      map[string]interface{}
	defaults  map[string]interface{}
	filePath  string
	format    Format
	envPrefix string
	handlers  []ChangeHandler
}

// ChangeHandler is called when configuration changes are detected
type ChangeHandler func(oldConfig, newConfig *Config)

// LoadOptions defines options for loading configuration
type LoadOptions struct {
	Format    Format                 // File format (default: auto-detect)
	EnvPrefix string                 // Environment variable prefix (default: none)
	Defaults  map[string]interface{} // Default values, nested maps allowed
}

// Load loads configuration from a file with default options
func Load(filePath string) (*Config, error) {
	return LoadWithOptions(filePath, LoadOptions{Format: FormatAuto})
}

// LoadWithOptions loads configuration from a file with custom options
func LoadWithOptions(filePath string, options LoadOptions) (*Config, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, gloxerror.New("config file path cannot be empty").
			WithCode(gloxerror.CodeInvalidInput).
			WithOperation("config.LoadWithOptions")
	}

	content, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return nil, gloxerror.New(fmt.Sprintf("config file not found: %s", filePath)).
			WithCode(gloxerror.CodeNotFound).
			WithOperation("config.LoadWithOptions").
			WithDetail("filePath", filePath)
	}
	if err != nil {
		return nil, gloxerror.Wrap(err, "failed to read config file").
			WithCode(gloxerror.CodeConfigError).
			WithOperation("config.LoadWithOptions").
			WithDetail("filePath", filePath)
	}

	format := options.Format
	if format == FormatAuto {
		format = detectFormat(filePath)
	}

	data, err := parseContent(content, format)
	if err != nil {
		return nil, gloxerror.Wrap(err, "failed to parse config file").
			WithCode(gloxerror.CodeInvalidConfig).
			WithOperation("config.LoadWithOptions").
			WithDetail("filePath", filePath).
			WithDetail("format", format.String())
	}

	return &Config{
		data:      data,
		defaults:  options.Defaults,
		filePath:  filePath,
		format:    format,
		envPrefix: options.EnvPrefix,
	}, nil
}

// LoadFromString loads configuration from a string with specified format
func LoadFromString(content string, format Format) (*Config, error) {
	if format == FormatAuto {
		format = FormatTOML
	}

	data, err := parseContent([]byte(content), format)
	if err != nil {
		return nil, gloxerror.Wrap(err, "failed to parse config from string").
			WithCode(gloxerror.CodeInvalidConfig).
			WithOperation("config.LoadFromString").
			WithDetail("format", format.String())
	}

	return &Config{data: data, format: format}, nil
}

// Empty returns a configuration with no file backing. Only defaults and
// environment overrides apply.
func Empty(envPrefix string, defaults map[string]interface{}) *Config {
	return &Config{
		data:      make(map[string]interface{}),
		defaults:  defaults,
		format:    FormatTOML,
		envPrefix: envPrefix,
	}
}

func detectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func parseContent(content []byte, format Format) (map[string]interface{}, error) {
	data := make(map[string]interface{})

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, gloxerror.Wrap(err, "TOML parse error").
				WithCode(gloxerror.CodeInvalidConfig).
				WithOperation("config.parseContent")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, gloxerror.Wrap(err, "YAML parse error").
				WithCode(gloxerror.CodeInvalidConfig).
				WithOperation("config.parseContent")
		}
	default:
		return nil, gloxerror.New(fmt.Sprintf("unsupported format: %s", format)).
			WithCode(gloxerror.CodeInvalidInput).
			WithOperation("config.parseContent")
	}

	return data, nil
}

// FilePath returns the file the configuration was loaded from, if any
func (c *Config) FilePath() string {
	return c.filePath
}

// Format returns the format of the backing file
func (c *Config) Format() Format {
	return c.format
}

// Has reports whether key is set in the file, the defaults or the environment
func (c *Config) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.getEnvValue(key)
	return ok || c.getValue(key) != nil
}

// GetString returns a string configuration value with optional default
func (c *Config) GetString(key string, defaultValue ...string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if env, ok := c.getEnvValue(key); ok {
		return env
	}

	switch v := c.getValue(key).(type) {
	case nil:
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// GetInt returns an integer configuration value with optional default
func (c *Config) GetInt(key string, defaultValue ...int) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if env, ok := c.getEnvValue(key); ok {
		if intVal, err := strconv.Atoi(env); err == nil {
			return intVal
		}
	}

	switch v := c.getValue(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if intVal, err := strconv.Atoi(v); err == nil {
			return intVal
		}
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// GetBool returns a boolean configuration value with optional default
func (c *Config) GetBool(key string, defaultValue ...bool) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if env, ok := c.getEnvValue(key); ok {
		if boolVal, err := strconv.ParseBool(env); err == nil {
			return boolVal
		}
	}

	switch v := c.getValue(key).(type) {
	case bool:
		return v
	case string:
		if boolVal, err := strconv.ParseBool(v); err == nil {
			return boolVal
		}
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// GetDuration returns a time.Duration configuration value with optional default
func (c *Config) GetDuration(key string, defaultValue ...time.Duration) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if env, ok := c.getEnvValue(key); ok {
		if duration, err := time.ParseDuration(env); err == nil {
			return duration
		}
	}

	switch v := c.getValue(key).(type) {
	case string:
		if duration, err := time.ParseDuration(v); err == nil {
			return duration
		}
	case time.Duration:
		return v
	case int:
		return time.Duration(v) * time.Millisecond
	case int64:
		return time.Duration(v) * time.Millisecond
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// OnChange registers a handler called after Watch reloads the file
func (c *Config) OnChange(handler ChangeHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// getValue resolves a dot path in the file data, then in the defaults.
// Callers hold c.mu.
func (c *Config) getValue(key string) interface{} {
	path := strings.Split(key, ".")
	if v := lookup(c.data, path); v != nil {
		return v
	}
	return lookup(c.defaults, path)
}

func lookup(data map[string]interface{}, path []string) interface{} {
	var current interface{} = data
	for _, part := range path {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}
	return current
}

// getEnvValue maps "server.port" with prefix GLOX to GLOX_SERVER_PORT
func (c *Config) getEnvValue(key string) (string, bool) {
	if c.envPrefix == "" {
		return "", false
	}
	name := strings.ToUpper(c.envPrefix + "_" + strings.ReplaceAll(key, ".", "_"))
	return os.LookupEnv(name)
}
