package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/glox/internal/server"
)

var scanFormat string

var scanCmd = &cobra.Command{
	Use:   "scan [file|-]",
	Short: "Print the token stream of a source",
	Long: `Tokenizes a Lox source and prints one token per line as
"KIND lexeme literal line". Without a file, or with "-", stdin is read.

Examples:
  glox scan expr.lox
  echo '1 + 2' | glox scan
  glox scan --format json expr.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "", "output format: text, json or yaml (default from config)")
}

func runScan(cmd *cobra.Command, args []string) error {
	format := scanFormat
	if format == "" {
		format = settings.Output.Format
	}
	if err := checkFormat(format); err != nil {
		return err
	}

	source, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	res, err := newFrontend().Scan(source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format != FormatText {
		if err := writeStructured(out, format, server.NewScanResponse(res)); err != nil {
			return err
		}
	} else {
		for _, tok := range res.Tokens {
			fmt.Fprintf(out, "%s %d\n", tok, tok.Line)
		}
		printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics.Strings())
	}

	if res.HadError() {
		return syntaxError(len(res.Diagnostics))
	}
	return nil
}
