package cmd

import (
	"fmt"
	"time"

	gloxconfig "github.com/msto63/glox/foundation/core/config"
	gloxerror "github.com/msto63/glox/foundation/core/error"
	"github.com/msto63/glox/foundation/lox"
	"github.com/msto63/glox/foundation/lox/printer"
	"github.com/msto63/glox/internal/history"
	"github.com/msto63/glox/internal/server"
	"github.com/msto63/glox/internal/watch"
)

// Settings is the typed view of the glox configuration file
type Settings struct {
	Log     LogSettings
	Output  OutputSettings
	Parser  ParserSettings
	History HistorySettings
	Server  ServerSettings
	Watch   WatchSettings
}

// LogSettings configures the logger
type LogSettings struct {
	Level  string
	Format string
}

// OutputSettings configures how results are printed
type OutputSettings struct {
	Printer printer.Style
	Format  string // text, json or yaml
	Color   bool
}

// ParserSettings configures the front end
type ParserSettings struct {
	MaxSourceBytes int
}

// HistorySettings configures the REPL history store
type HistorySettings struct {
	Enabled bool
	Path    string
	Limit   int
}

// ServerSettings configures `glox serve` and the default --remote target
type ServerSettings struct {
	Host        string
	Port        int
	MetricsPort int
}

// WatchSettings configures `glox watch`
type WatchSettings struct {
	Debounce time.Duration
}

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultSettings returns the built-in settings
func DefaultSettings() Settings {
	srv := server.DefaultServerConfig()
	return Settings{
		Log:     LogSettings{Level: "info", Format: "text"},
		Output:  OutputSettings{Printer: printer.StyleParens, Format: FormatText, Color: true},
		Parser:  ParserSettings{MaxSourceBytes: lox.DefaultMaxSourceBytes},
		History: HistorySettings{Enabled: true, Path: history.DefaultConfig().Path, Limit: 500},
		Server:  ServerSettings{Host: srv.Host, Port: srv.Port, MetricsPort: srv.MetricsPort},
		Watch:   WatchSettings{Debounce: watch.DefaultDebounce},
	}
}

// DefaultValues returns DefaultSettings as the nested map used for config defaults
func DefaultValues() map[string]interface{} {
	d := DefaultSettings()
	return map[string]interface{}{
		"log": map[string]interface{}{
			"level":  d.Log.Level,
			"format": d.Log.Format,
		},
		"output": map[string]interface{}{
			"printer": string(d.Output.Printer),
			"format":  d.Output.Format,
			"color":   d.Output.Color,
		},
		"parser": map[string]interface{}{
			"max_source_bytes": d.Parser.MaxSourceBytes,
		},
		"history": map[string]interface{}{
			"enabled": d.History.Enabled,
			"path":    d.History.Path,
			"limit":   d.History.Limit,
		},
		"server": map[string]interface{}{
			"host":         d.Server.Host,
			"port":         d.Server.Port,
			"metrics_port": d.Server.MetricsPort,
		},
		"watch": map[string]interface{}{
			"debounce": d.Watch.Debounce.String(),
		},
	}
}

// LoadSettings reads and validates the settings from cfg
func LoadSettings(cfg *gloxconfig.Config) (Settings, error) {
	d := DefaultSettings()

	s := Settings{
		Log: LogSettings{
			Level:  cfg.GetString("log.level", d.Log.Level),
			Format: cfg.GetString("log.format", d.Log.Format),
		},
		Output: OutputSettings{
			Format: cfg.GetString("output.format", d.Output.Format),
			Color:  cfg.GetBool("output.color", d.Output.Color),
		},
		Parser: ParserSettings{
			MaxSourceBytes: cfg.GetInt("parser.max_source_bytes", d.Parser.MaxSourceBytes),
		},
		History: HistorySettings{
			Enabled: cfg.GetBool("history.enabled", d.History.Enabled),
			Path:    cfg.GetString("history.path", d.History.Path),
			Limit:   cfg.GetInt("history.limit", d.History.Limit),
		},
		Server: ServerSettings{
			Host:        cfg.GetString("server.host", d.Server.Host),
			Port:        cfg.GetInt("server.port", d.Server.Port),
			MetricsPort: cfg.GetInt("server.metrics_port", d.Server.MetricsPort),
		},
		Watch: WatchSettings{
			Debounce: cfg.GetDuration("watch.debounce", d.Watch.Debounce),
		},
	}

	style, err := printer.ParseStyle(cfg.GetString("output.printer", string(d.Output.Printer)))
	if err != nil {
		return s, invalidSetting("output.printer", err)
	}
	s.Output.Printer = style

	if err := checkFormat(s.Output.Format); err != nil {
		return s, invalidSetting("output.format", err)
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return s, invalidSetting("server.port", gloxerror.New(fmt.Sprintf("port %d out of range", s.Server.Port)))
	}
	if s.History.Limit < 0 {
		return s, invalidSetting("history.limit", gloxerror.New("limit must not be negative"))
	}

	return s, nil
}

// RemoteAddress is the target for --remote-default
func (s Settings) RemoteAddress() string {
	return fmt.Sprintf("%s:%d", s.Server.Host, s.Server.Port)
}

func checkFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return gloxerror.New(fmt.Sprintf("unknown output format %q", format)).
			WithCode(gloxerror.CodeInvalidInput).
			WithDetail("supported", []string{FormatText, FormatJSON, FormatYAML})
	}
}

func invalidSetting(key string, err error) error {
	return gloxerror.Wrap(err, "invalid configuration value").
		WithCode(gloxerror.CodeInvalidConfig).
		WithOperation("cmd.LoadSettings").
		WithDetail("key", key)
}
