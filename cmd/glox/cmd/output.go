package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	gloxerror "github.com/msto63/glox/foundation/core/error"
)

var (
	diagnosticStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	headingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// readSource reads the file named by args[0], or stdin for no argument or "-"
func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", gloxerror.Wrap(err, "failed to read stdin").
				WithCode(gloxerror.CodeInvalidInput).
				WithOperation("cmd.readSource")
		}
		return string(data), nil
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		code := gloxerror.CodeInvalidInput
		if os.IsNotExist(err) {
			code = gloxerror.CodeNotFound
		}
		return "", gloxerror.Wrap(err, "failed to read source file").
			WithCode(code).
			WithOperation("cmd.readSource").
			WithDetail("path", path)
	}
	return string(data), nil
}

// writeStructured encodes v as JSON or YAML
func writeStructured(w io.Writer, format string, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return checkFormat(format)
	}
}

func printDiagnostics(w io.Writer, diagnostics []string) {
	for _, d := range diagnostics {
		fmt.Fprintln(w, colorize(diagnosticStyle, d))
	}
}

// syntaxError is returned by commands after the diagnostics were printed
func syntaxError(count int) error {
	return gloxerror.New("source contains syntax errors").
		WithCode(gloxerror.CodeSyntax).
		WithDetail("diagnostics", count)
}
