// File: diag.go
// Title: Lox Diagnostics
// Description: Per-invocation syntax diagnostics with the
//              "[line N] Error<where>: message" rendering.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial diagnostics list and sink

// Package diag collects syntax diagnostics reported while scanning and
// parsing. Every scan or parse owns its own List, so independent parses
// never observe each other's errors.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/msto63/glox/foundation/lox/token"
)

// Diagnostic is one reported syntax error
type Diagnostic struct {
	Line    int    // 1-based source line
	Where   string // "", " at end" or " at '<lexeme>'"
	Message string
}

// AtLine creates a diagnostic with no location context
func AtLine(line int, message string) Diagnostic {
	return Diagnostic{Line: line, Message: message}
}

// AtToken creates a diagnostic located at tok. The raw lexeme is quoted,
// never the decoded literal.
func AtToken(tok token.Token, message string) Diagnostic {
	where := " at '" + tok.Lexeme + "'"
	if tok.Kind == token.EOF {
		where = " at end"
	}
	return Diagnostic{Line: tok.Line, Where: where, Message: message}
}

// String renders the diagnostic in console form
func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// List is an ordered set of diagnostics
type List []Diagnostic

// HadError reports whether any diagnostic was recorded
func (l List) HadError() bool {
	return len(l) > 0
}

// Reset empties the list, keeping its storage
func (l *List) Reset() {
	*l = (*l)[:0]
}

// Merge appends other after the receiver's entries
func (l *List) Merge(other List) {
	*l = append(*l, other...)
}

// Strings renders every diagnostic
func (l List) Strings() []string {
	out := make([]string, len(l))
	for i, d := range l {
		out[i] = d.String()
	}
	return out
}

// String renders one diagnostic per line
func (l List) String() string {
	return strings.Join(l.Strings(), "\n")
}

// Sink records diagnostics and optionally echoes each one to a writer as
// it arrives.
type Sink struct {
	list List
	out  io.Writer
}

// NewSink creates a sink. out may be nil.
func NewSink(out io.Writer) *Sink {
	return &Sink{out: out}
}

// Report records d
func (s *Sink) Report(d Diagnostic) {
	s.list = append(s.list, d)
	if s.out != nil {
		fmt.Fprintln(s.out, d.String())
	}
}

// Error reports message at line with no location context
func (s *Sink) Error(line int, message string) {
	s.Report(AtLine(line, message))
}

// ErrorAt reports message located at tok
func (s *Sink) ErrorAt(tok token.Token, message string) {
	s.Report(AtToken(tok, message))
}

// HadError reports whether anything was recorded since the last Reset
func (s *Sink) HadError() bool {
	return s.list.HadError()
}

// Reset clears the recorded diagnostics
func (s *Sink) Reset() {
	s.list = nil
}

// List returns a copy of the recorded diagnostics
func (s *Sink) List() List {
	if len(s.list) == 0 {
		return nil
	}
	return append(List(nil), s.list...)
}
