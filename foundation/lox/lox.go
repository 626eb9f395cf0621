// File: lox.go
// Title: Lox Front End
// Description: Runs lexer and parser over a source text with logging and
//              an input size limit, returning tokens, tree and diagnostics.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial front end

package lox

import (
	"fmt"
	"io"
	"time"

	gloxerror "github.com/msto63/glox/foundation/core/error"
	gloxlog "github.com/msto63/glox/foundation/core/log"
	"github.com/msto63/glox/foundation/lox/ast"
	"github.com/msto63/glox/foundation/lox/diag"
	"github.com/msto63/glox/foundation/lox/lexer"
	"github.com/msto63/glox/foundation/lox/parser"
	"github.com/msto63/glox/foundation/lox/printer"
	"github.com/msto63/glox/foundation/lox/token"
)

// DefaultMaxSourceBytes limits the accepted source size
const DefaultMaxSourceBytes = 1 << 20

// Options configures the front end
type Options struct {
	// Logger for front end operations (optional, defaults to default logger)
	Logger *gloxlog.Logger

	// MaxSourceBytes rejects larger inputs (default: 1 MiB, negative disables)
	MaxSourceBytes int

	// Echo receives each diagnostic line as it is reported (optional)
	Echo io.Writer
}

// Result holds everything produced for one source text
type Result struct {
	Tokens      []token.Token
	Expr        ast.Expr  // nil when parsing failed or was not run
	Diagnostics diag.List // lexer diagnostics first, then parser diagnostics
	Duration    time.Duration
}

// HadError reports whether any diagnostic was recorded
func (r *Result) HadError() bool {
	return r.Diagnostics.HadError()
}

// Err converts the diagnostics into a SYNTAX_ERROR, or returns nil
func (r *Result) Err() error {
	if !r.HadError() {
		return nil
	}
	return gloxerror.FromDiagnostics([]diag.Diagnostic(r.Diagnostics)).
		WithOperation("lox.Parse")
}

// Print renders the tree in the given style
func (r *Result) Print(style printer.Style) string {
	return printer.Render(style, r.Expr)
}

// Frontend scans and parses source texts. It holds no per-parse state and
// is safe for concurrent use.
type Frontend struct {
	logger  *gloxlog.Logger
	options Options
}

// New creates a front end with the given options
func New(opts Options) *Frontend {
	if opts.Logger == nil {
		opts.Logger = gloxlog.GetDefault()
	}
	if opts.MaxSourceBytes == 0 {
		opts.MaxSourceBytes = DefaultMaxSourceBytes
	}

	return &Frontend{
		logger:  opts.Logger.WithField("component", "lox-frontend"),
		options: opts,
	}
}

// Parse scans and parses source with a new front end
func Parse(source string, opts Options) (*Result, error) {
	return New(opts).Parse(source)
}

// Scan tokenizes source with a new front end
func Scan(source string, opts Options) (*Result, error) {
	return New(opts).Scan(source)
}

// Scan tokenizes source without parsing it
func (f *Frontend) Scan(source string) (*Result, error) {
	if err := f.checkSize(source, "lox.Scan"); err != nil {
		return nil, err
	}

	start := time.Now()
	lx := lexer.New(source, f.options.Echo)
	res := &Result{Tokens: lx.ScanTokens(), Diagnostics: lx.Diagnostics()}
	res.Duration = time.Since(start)

	f.logger.Debug("Scanned source", gloxlog.Fields{
		"bytes":       len(source),
		"tokens":      len(res.Tokens),
		"diagnostics": len(res.Diagnostics),
	})
	return res, nil
}

// Parse scans and parses source. The returned error is only set when the
// source is rejected up front; syntax errors are in Result.Diagnostics.
func (f *Frontend) Parse(source string) (*Result, error) {
	if err := f.checkSize(source, "lox.Parse"); err != nil {
		return nil, err
	}

	start := time.Now()
	lx := lexer.New(source, f.options.Echo)
	tokens := lx.ScanTokens()

	p := parser.New(tokens, parser.Options{Logger: f.logger, Echo: f.options.Echo})
	expr, parseDiags := p.Parse()

	res := &Result{Tokens: tokens, Expr: expr, Diagnostics: lx.Diagnostics()}
	res.Diagnostics.Merge(parseDiags)
	res.Duration = time.Since(start)

	f.logger.Debug("Parsed source", gloxlog.Fields{
		"bytes":       len(source),
		"tokens":      len(tokens),
		"diagnostics": len(res.Diagnostics),
		"absent":      expr == nil,
		"duration":    res.Duration.String(),
	})
	return res, nil
}

func (f *Frontend) checkSize(source, operation string) error {
	limit := f.options.MaxSourceBytes
	if limit < 0 || len(source) <= limit {
		return nil
	}
	return gloxerror.New(fmt.Sprintf("source exceeds maximum size: %d > %d bytes", len(source), limit)).
		WithCode(gloxerror.CodeSourceTooLarge).
		WithOperation(operation).
		WithDetail("bytes", len(source)).
		WithDetail("limit", limit)
}
