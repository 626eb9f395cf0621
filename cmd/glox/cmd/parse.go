package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/glox/foundation/lox/printer"
	"github.com/msto63/glox/internal/server"
)

var (
	parsePrinter       string
	parseFormat        string
	parseRemote        string
	parseRemoteDefault bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Print the syntax tree of an expression",
	Long: `Parses a Lox expression and prints its syntax tree, or the
diagnostics when the source is malformed. Exits with status 65 on
syntax errors.

Examples:
  glox parse expr.lox
  echo '-1 * (2 + 3)' | glox parse --printer rpn
  glox parse --format yaml expr.lox
  glox parse --remote 127.0.0.1:9470 expr.lox
  glox parse --remote-default expr.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parsePrinter, "printer", "p", "", "printer: parens, rpn or tree (default from config)")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format: text, json or yaml (default from config)")
	parseCmd.Flags().StringVar(&parseRemote, "remote", "", "parse on a running glox service at this address")
	parseCmd.Flags().BoolVar(&parseRemoteDefault, "remote-default", false, "parse on the service at the configured server address")
}

func runParse(cmd *cobra.Command, args []string) error {
	style := settings.Output.Printer
	if parsePrinter != "" {
		s, err := printer.ParseStyle(parsePrinter)
		if err != nil {
			return err
		}
		style = s
	}

	format := parseFormat
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

	var resp *server.ParseResponse
	if target := remoteTarget(parseRemote, parseRemoteDefault); target != "" {
		resp, err = parseRemotely(cmd.Context(), target, source, style)
	} else {
		resp, err = parseLocally(source, style)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format != FormatText {
		if err := writeStructured(out, format, resp); err != nil {
			return err
		}
	} else {
		if resp.Printed != "" {
			fmt.Fprintln(out, resp.Printed)
		}
		diagnostics := make([]string, len(resp.Diagnostics))
		for i, d := range resp.Diagnostics {
			diagnostics[i] = d.Text
		}
		printDiagnostics(cmd.ErrOrStderr(), diagnostics)
	}

	if !resp.OK {
		return syntaxError(len(resp.Diagnostics))
	}
	return nil
}

func parseLocally(source string, style printer.Style) (*server.ParseResponse, error) {
	res, err := newFrontend().Parse(source)
	if err != nil {
		return nil, err
	}
	return server.NewParseResponse(res, style), nil
}

func parseRemotely(ctx context.Context, target, source string, style printer.Style) (*server.ParseResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := server.Dial(server.DefaultClientConfig(target), logger)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	return client.Parse(ctx, source, string(style))
}

// remoteTarget resolves --remote and --remote-default. An empty result
// means parse locally.
func remoteTarget(addr string, useDefault bool) string {
	if addr != "" {
		return addr
	}
	if useDefault {
		return settings.RemoteAddress()
	}
	return ""
}
