package repl

import (
	"context"

	"github.com/msto63/glox/foundation/lox"
	"github.com/msto63/glox/foundation/lox/printer"
	"github.com/msto63/glox/internal/server"
)

// Outcome is the rendered result of one input line
type Outcome struct {
	Printed     string
	Diagnostics []string
}

// Evaluator parses one input line and renders it
type Evaluator interface {
	Evaluate(ctx context.Context, source string, style printer.Style) (Outcome, error)
}

// LocalEvaluator parses in process
type LocalEvaluator struct {
	Frontend *lox.Frontend
}

// Evaluate implements Evaluator
func (e LocalEvaluator) Evaluate(_ context.Context, source string, style printer.Style) (Outcome, error) {
	res, err := e.Frontend.Parse(source)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Printed: res.Print(style), Diagnostics: res.Diagnostics.Strings()}, nil
}

// RemoteEvaluator sends lines to a running parser service
type RemoteEvaluator struct {
	Client *server.Client
}

// Evaluate implements Evaluator
func (e RemoteEvaluator) Evaluate(ctx context.Context, source string, style printer.Style) (Outcome, error) {
	resp, err := e.Client.Parse(ctx, source, string(style))
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Printed: resp.Printed}
	for _, d := range resp.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, d.Text)
	}
	return out, nil
}
