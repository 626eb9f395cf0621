package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gloxerror "github.com/msto63/glox/foundation/core/error"
)

const sampleTOML = `
[log]
level = "debug"

[server]
host = "0.0.0.0"
port = 9000

[watch]
debounce = "250ms"

[history]
enabled = true
`

const sampleYAML = `
log:
  level: warn
server:
  port: 9100
history:
  enabled: false
`

func TestLoadFromString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		check  func(t *testing.T, c *Config)
	}{
		{
			name:   "toml values",
			input:  sampleTOML,
			format: FormatTOML,
			check: func(t *testing.T, c *Config) {
				if got := c.GetString("log.level"); got != "debug" {
					t.Errorf("Expected debug, got %q", got)
				}
				if got := c.GetInt("server.port"); got != 9000 {
					t.Errorf("Expected 9000, got %d", got)
				}
				if got := c.GetDuration("watch.debounce"); got != 250*time.Millisecond {
					t.Errorf("Expected 250ms, got %v", got)
				}
				if !c.GetBool("history.enabled") {
					t.Error("Expected history.enabled to be true")
				}
			},
		},
		{
			name:   "yaml values",
			input:  sampleYAML,
			format: FormatYAML,
			check: func(t *testing.T, c *Config) {
				if got := c.GetString("log.level"); got != "warn" {
					t.Errorf("Expected warn, got %q", got)
				}
				if got := c.GetInt("server.port"); got != 9100 {
					t.Errorf("Expected 9100, got %d", got)
				}
				if c.GetBool("history.enabled", true) {
					t.Error("Expected history.enabled to be false")
				}
			},
		},
		{
			name:   "fallbacks for missing keys",
			input:  sampleTOML,
			format: FormatTOML,
			check: func(t *testing.T, c *Config) {
				if got := c.GetString("output.printer", "parens"); got != "parens" {
					t.Errorf("Expected parens, got %q", got)
				}
				if got := c.GetInt("parser.max_source_bytes", 1024); got != 1024 {
					t.Errorf("Expected 1024, got %d", got)
				}
				if c.Has("output.printer") {
					t.Error("Expected output.printer to be absent")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadFromString(tt.input, tt.format)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestLoadFromStringInvalid(t *testing.T) {
	_, err := LoadFromString("[broken", FormatTOML)
	if err == nil {
		t.Fatal("Expected parse error")
	}
	if !gloxerror.HasCode(err, gloxerror.CodeInvalidConfig) {
		t.Errorf("Expected code %s, got %s", gloxerror.CodeInvalidConfig, gloxerror.GetCode(err))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !gloxerror.HasCode(err, gloxerror.CodeNotFound) {
		t.Errorf("Expected NOT_FOUND, got %v", err)
	}
}

func TestEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glox.toml")
	if err := os.WriteFile(path, []byte(sampleTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GLOX_SERVER_PORT", "7777")
	t.Setenv("GLOX_LOG_LEVEL", "error")

	c, err := LoadWithOptions(path, LoadOptions{Format: FormatAuto, EnvPrefix: "GLOX"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := c.GetInt("server.port"); got != 7777 {
		t.Errorf("Expected 7777, got %d", got)
	}
	if got := c.GetString("log.level"); got != "error" {
		t.Errorf("Expected error, got %q", got)
	}
}

func TestDefaultsMerge(t *testing.T) {
	defaults := map[string]interface{}{
		"output": map[string]interface{}{"printer": "rpn"},
		"server": map[string]interface{}{"port": 1},
	}
	c, err := LoadFromString(sampleTOML, FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	c.defaults = defaults

	if got := c.GetString("output.printer"); got != "rpn" {
		t.Errorf("Expected default rpn, got %q", got)
	}
	if got := c.GetInt("server.port"); got != 9000 {
		t.Errorf("Expected file value to win, got %d", got)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "glox.yml"), []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Discover(DiscoveryOptions{
		Paths:     []string{filepath.Join(dir, "missing"), dir},
		Filenames: []string{"glox"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.Format() != FormatYAML {
		t.Errorf("Expected yaml format, got %s", c.Format())
	}
	if got := c.GetInt("server.port"); got != 9100 {
		t.Errorf("Expected 9100, got %d", got)
	}

	empty, err := Discover(DiscoveryOptions{Paths: []string{filepath.Join(dir, "missing")}, Filenames: []string{"glox"}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if empty.FilePath() != "" {
		t.Errorf("Expected empty config, got %q", empty.FilePath())
	}

	_, err = Discover(DiscoveryOptions{Paths: []string{filepath.Join(dir, "missing")}, Filenames: []string{"glox"}, Required: true})
	if !gloxerror.HasCode(err, gloxerror.CodeNotFound) {
		t.Errorf("Expected NOT_FOUND, got %v", err)
	}
}

func TestReloadNotifiesHandlers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glox.toml")
	if err := os.WriteFile(path, []byte("[server]\nport = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	var oldPort, newPort int
	c.OnChange(func(o, n *Config) {
		oldPort = o.GetInt("server.port")
		newPort = n.GetInt("server.port")
	})

	if err := os.WriteFile(path, []byte("[server]\nport = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := c.Reload(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if oldPort != 1 || newPort != 2 {
		t.Errorf("Expected 1 -> 2, got %d -> %d", oldPort, newPort)
	}
}
