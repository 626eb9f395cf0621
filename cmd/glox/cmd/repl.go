package cmd

import (
	"github.com/spf13/cobra"

	gloxlog "github.com/msto63/glox/foundation/core/log"
	"github.com/msto63/glox/foundation/lox"
	"github.com/msto63/glox/foundation/lox/printer"
	"github.com/msto63/glox/internal/history"
	"github.com/msto63/glox/internal/server"
	"github.com/msto63/glox/internal/tui/repl"
)

var (
	replRemote        string
	replRemoteDefault bool
	replPrinter       string
	replNoHistory     bool
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive expression prompt",
	Long: `Starts an interactive prompt. Each line is parsed and printed with
the active printer; diagnostics are shown inline.

Commands inside the REPL:
  :printer [parens|rpn|tree]   show or switch the printer
  :history                     recent inputs
  :clear                       clear the transcript
  :quit                        leave

Keys:
  Up/Down   input history
  Ctrl+P    cycle printer
  Ctrl+L    clear
  Ctrl+C    quit`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replRemote, "remote", "", "parse on a running glox service at this address")
	replCmd.Flags().BoolVar(&replRemoteDefault, "remote-default", false, "parse on the service at the configured server address")
	replCmd.Flags().StringVarP(&replPrinter, "printer", "p", "", "initial printer (default from config)")
	replCmd.Flags().BoolVar(&replNoHistory, "no-history", false, "do not load or record history")
}

func runRepl(cmd *cobra.Command, args []string) error {
	style := settings.Output.Printer
	if replPrinter != "" {
		s, err := printer.ParseStyle(replPrinter)
		if err != nil {
			return err
		}
		style = s
	}

	// The terminal belongs to the REPL; only errors are logged.
	replLogger := logger.WithLevel(gloxlog.LevelError)

	cfg := repl.Config{
		Printer:      style,
		HistoryLimit: settings.History.Limit,
		Logger:       replLogger,
	}

	if target := remoteTarget(replRemote, replRemoteDefault); target != "" {
		client, err := server.Dial(server.DefaultClientConfig(target), replLogger)
		if err != nil {
			return err
		}
		defer client.Close()
		cfg.Evaluator = repl.RemoteEvaluator{Client: client}
		cfg.Remote = target
	} else {
		cfg.Evaluator = repl.LocalEvaluator{Frontend: lox.New(lox.Options{
			Logger:         replLogger,
			MaxSourceBytes: settings.Parser.MaxSourceBytes,
		})}
	}

	if settings.History.Enabled && !replNoHistory {
		store, err := history.Open(history.Config{Path: settings.History.Path})
		if err != nil {
			logger.WarnWithErr("History disabled", err)
		} else {
			defer store.Close()
			cfg.Store = store
		}
	}

	return repl.Run(cfg)
}
