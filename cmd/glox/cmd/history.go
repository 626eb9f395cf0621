package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	gloxerror "github.com/msto63/glox/foundation/core/error"
	"github.com/msto63/glox/internal/history"
)

var (
	historyLimit      int
	historyErrorsOnly bool
	historyFormat     string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the REPL history",
	Long: `Lists recent REPL inputs, newest first, with their printed tree or
diagnostics.

Examples:
  glox history
  glox history --limit 5 --errors
  glox history clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries (0 = all)")
	historyCmd.Flags().BoolVar(&historyErrorsOnly, "errors", false, "only entries with diagnostics")
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", "", "output format: text, json or yaml (default from config)")
}

func openHistory() (*history.SQLiteStore, error) {
	if !settings.History.Enabled {
		return nil, gloxerror.New("history is disabled in the configuration").
			WithCode(gloxerror.CodeInvalidConfig).
			WithDetail("key", "history.enabled")
	}
	return history.Open(history.Config{Path: settings.History.Path})
}

func runHistory(cmd *cobra.Command, args []string) error {
	format := historyFormat
	if format == "" {
		format = settings.Output.Format
	}
	if err := checkFormat(format); err != nil {
		return err
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), history.Filter{Limit: historyLimit, ErrorsOnly: historyErrorsOnly})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format != FormatText {
		if entries == nil {
			entries = []*history.Entry{}
		}
		return writeStructured(out, format, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, colorize(dimStyle, "No history entries."))
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(out, "%s  %s\n", colorize(dimStyle, e.Timestamp.Local().Format("2006-01-02 15:04:05")), e.Source)
		if e.Printed != "" {
			fmt.Fprintln(out, "    "+e.Printed)
		}
		for _, d := range e.Diagnostics {
			fmt.Fprintln(out, "    "+colorize(diagnosticStyle, d))
		}
	}
	fmt.Fprintln(out, colorize(dimStyle, fmt.Sprintf("%d entries", len(entries))))
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Clear(cmd.Context())
	if err != nil {
		return err
	}

	noun := "entries"
	if n == 1 {
		noun = "entry"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d %s.\n", n, noun)
	return nil
}
