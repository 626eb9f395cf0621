// Package error provides the structured error type used by glox outside the
// lexer and parser.
//
// Package: error
// Title: glox Error Handling
// Description: Coded errors with severity, operation and detail metadata.
//              Syntax diagnostics stay plain values inside the front end;
//              everything that crosses a process boundary (config loading,
//              file input, the history store, the gRPC service) is reported
//              as an *Error so callers can branch on Code.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-17 v0.2.0: Reduced to glox codes, added FromDiagnostics
//
// Usage:
//
//	err := gloxerror.New("source file not found").
//		WithCode(gloxerror.CodeNotFound).
//		WithOperation("cmd.readSource").
//		WithDetail("path", path)
//
//	if gloxerror.HasCode(err, gloxerror.CodeSyntax) {
//		os.Exit(65)
//	}
package error
