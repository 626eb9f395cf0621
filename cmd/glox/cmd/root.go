package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	gloxconfig "github.com/msto63/glox/foundation/core/config"
	gloxerror "github.com/msto63/glox/foundation/core/error"
	gloxlog "github.com/msto63/glox/foundation/core/log"
	"github.com/msto63/glox/foundation/lox"
)

// EnvPrefix prefixes environment overrides (GLOX_SERVER_PORT for server.port)
const EnvPrefix = "GLOX"

var (
	cfgFile   string
	verbose   bool
	logFormat string

	appConfig *gloxconfig.Config
	settings  = DefaultSettings()
	logger    = gloxlog.GetDefault()
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)

var rootCmd = &cobra.Command{
	Use:   "glox",
	Short: "glox - Lox expression scanner and parser",
	Long: `glox tokenizes and parses expressions of the Lox language and prints
the resulting syntax tree.

Commands:
  scan     - print the token stream of a source
  parse    - print the syntax tree or the diagnostics
  repl     - interactive expression prompt
  watch    - re-parse a file whenever it changes
  serve    - run the parser as a gRPC service
  history  - show or clear the REPL history`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and reports errors on stderr. Syntax errors
// have already been printed as diagnostics.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !gloxerror.HasCode(err, gloxerror.CodeSyntax) {
		printError(err)
	}
	return err
}

// ExitCode maps an error returned by Execute onto a process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code := gloxerror.GetCode(err); code != gloxerror.CodeUnknown {
		return code.ExitCode()
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./glox.toml or ~/.config/glox/glox.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json (default from config)")
}

// setup loads the configuration and builds the logger before any command runs
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	appConfig = cfg

	s, err := LoadSettings(cfg)
	if err != nil {
		return err
	}
	if logFormat != "" {
		s.Log.Format = logFormat
	}
	if verbose {
		s.Log.Level = "debug"
	}
	settings = s

	logger, err = newLogger(s)
	if err != nil {
		return err
	}
	gloxlog.SetDefault(logger)

	if path := cfg.FilePath(); path != "" {
		logger.Debug("Configuration loaded", gloxlog.Fields{"path": path, "format": cfg.Format().String()})
	}
	return nil
}

func loadConfig() (*gloxconfig.Config, error) {
	if cfgFile != "" {
		return gloxconfig.LoadWithOptions(cfgFile, gloxconfig.LoadOptions{
			Format:    gloxconfig.FormatAuto,
			EnvPrefix: EnvPrefix,
			Defaults:  DefaultValues(),
		})
	}

	return gloxconfig.Discover(gloxconfig.DiscoveryOptions{
		Paths:     []string{".", "~/.config/glox"},
		Filenames: []string{"glox"},
		EnvPrefix: EnvPrefix,
		Defaults:  DefaultValues(),
	})
}

func newLogger(s Settings) (*gloxlog.Logger, error) {
	level, err := gloxlog.ParseLevel(s.Log.Level)
	if err != nil {
		return nil, gloxerror.Wrap(err, "invalid log level").
			WithCode(gloxerror.CodeInvalidConfig).
			WithDetail("level", s.Log.Level)
	}
	format, err := gloxlog.ParseFormat(s.Log.Format)
	if err != nil {
		return nil, gloxerror.Wrap(err, "invalid log format").
			WithCode(gloxerror.CodeInvalidConfig).
			WithDetail("format", s.Log.Format)
	}

	return gloxlog.NewWithConfig(gloxlog.Config{
		Level:  level,
		Format: format,
		Output: os.Stderr,
		Name:   "glox",
	}), nil
}

func newFrontend() *lox.Frontend {
	return lox.New(lox.Options{
		Logger:         logger,
		MaxSourceBytes: settings.Parser.MaxSourceBytes,
	})
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, colorize(errorStyle, "Error:")+" "+err.Error())
}

// colorize renders s with style unless colors are disabled
func colorize(style lipgloss.Style, s string) string {
	if !settings.Output.Color {
		return s
	}
	return style.Render(s)
}
