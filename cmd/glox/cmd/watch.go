package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/glox/foundation/lox/printer"
	"github.com/msto63/glox/internal/watch"
)

var (
	watchPrinter  string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-parse a file whenever it changes",
	Long: `Parses the file once and again after every write, printing the
syntax tree or the diagnostics each time. Stop with Ctrl+C.

Examples:
  glox watch expr.lox
  glox watch --printer tree --debounce 500ms expr.lox`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchPrinter, "printer", "p", "", "printer: parens, rpn or tree (default from config)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "quiet period before re-parsing (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	style := settings.Output.Printer
	if watchPrinter != "" {
		s, err := printer.ParseStyle(watchPrinter)
		if err != nil {
			return err
		}
		style = s
	}

	debounce := settings.Watch.Debounce
	if watchDebounce > 0 {
		debounce = watchDebounce
	}

	w, err := watch.New(watch.Config{
		Path:     args[0],
		Debounce: debounce,
		Frontend: newFrontend(),
	}, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	return w.Watch(ctx, func(r watch.Report) {
		fmt.Fprintln(out, colorize(headingStyle, r.Path)+" "+colorize(dimStyle, r.At.Format("15:04:05")))
		if r.Err != nil {
			fmt.Fprintln(errOut, colorize(errorStyle, "Error:")+" "+r.Err.Error())
			return
		}
		if r.Result.Expr != nil {
			fmt.Fprintln(out, r.Result.Print(style))
		}
		printDiagnostics(errOut, r.Result.Diagnostics.Strings())
	})
}
