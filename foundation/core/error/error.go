// File: error.go
// Title: Core Error Implementation
// Description: Implements the Error type with code, severity, operation and
//              detail metadata. Compatible with errors.Is/As through Unwrap.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors
// - 2026-10-17 v0.2.0: Dropped stack capture and localization, added FromDiagnostics

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// MaxErrorChainDepth limits the depth of error wrapping
const MaxErrorChainDepth = 15

// Error represents a structured error with context, codes, and metadata
type Error struct {
	message   string
	cause     error
	code      Code
	severity  Severity
	timestamp time.Time

	details   map[string]interface{}
	operation string
	requestID string
}

// New creates a new Error with the given message
func New(message string) *Error {
	return &Error{
		message:   message,
		code:      CodeUnknown,
		severity:  SeverityMedium,
		timestamp: time.Now(),
		details:   make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with additional context. Code and severity of
// a wrapped *Error are inherited.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	if depth := chainDepth(err); depth >= MaxErrorChainDepth {
		flat := New(fmt.Sprintf("%s (chain truncated at depth %d): %s", message, MaxErrorChainDepth, rootCause(err).Error()))
		flat.severity = SeverityHigh
		flat.details["truncated"] = true
		return flat
	}

	wrapped := New(message)
	wrapped.cause = err

	var inner *Error
	if errors.As(err, &inner) {
		wrapped.code = inner.code
		wrapped.severity = inner.severity
		wrapped.requestID = inner.requestID
		for k, v := range inner.details {
			wrapped.details[k] = v
		}
	}
	return wrapped
}

// FromDiagnostics folds front-end diagnostics into one SYNTAX_ERROR. Returns
// nil for an empty slice.
func FromDiagnostics[T fmt.Stringer](diags []T) *Error {
	if len(diags) == 0 {
		return nil
	}

	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = d.String()
	}

	msg := lines[0]
	if len(lines) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", lines[0], len(lines)-1)
	}

	return New(msg).
		WithCode(CodeSyntax).
		WithDetail("diagnostics", lines).
		WithDetail("count", len(lines))
}

func chainDepth(err error) int {
	depth := 0
	for current := err; current != nil && depth < MaxErrorChainDepth*2; {
		depth++
		e, ok := current.(*Error)
		if !ok {
			break
		}
		current = e.cause
	}
	return depth
}

func rootCause(err error) error {
	last := err
	for current := err; current != nil; {
		last = current
		e, ok := current.(*Error)
		if !ok {
			break
		}
		current = e.cause
	}
	return last
}

// Error implements the standard error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
	}
	return e.message
}

// Unwrap returns the underlying cause for error unwrapping
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCode sets the error code. Severity follows the code unless it was set explicitly.
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	if e.severity == SeverityMedium {
		e.severity = GetSeverityFromCode(code)
	}
	return e
}

// WithSeverity sets the error severity
func (e *Error) WithSeverity(severity Severity) *Error {
	e.severity = severity
	return e
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.details[key] = value
	return e
}

// WithOperation sets the operation that caused the error
func (e *Error) WithOperation(operation string) *Error {
	e.operation = operation
	return e
}

// WithRequestID sets the request ID associated with the error
func (e *Error) WithRequestID(requestID string) *Error {
	e.requestID = requestID
	return e
}

// Code returns the error code
func (e *Error) Code() Code { return e.code }

// Severity returns the error severity
func (e *Error) Severity() Severity { return e.severity }

// Timestamp returns when the error was created
func (e *Error) Timestamp() time.Time { return e.timestamp }

// Operation returns the operation that caused the error
func (e *Error) Operation() string { return e.operation }

// RequestID returns the request ID associated with the error
func (e *Error) RequestID() string { return e.requestID }

// Message returns the message without the cause chain
func (e *Error) Message() string { return e.message }

// Details returns a copy of the error details
func (e *Error) Details() map[string]interface{} {
	result := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		result[k] = v
	}
	return result
}

// String returns a detailed multi-line representation of the error
func (e *Error) String() string {
	parts := []string{
		fmt.Sprintf("Error: %s", e.message),
		fmt.Sprintf("Code: %s", e.code),
		fmt.Sprintf("Severity: %s", e.severity),
	}

	if e.operation != "" {
		parts = append(parts, fmt.Sprintf("Operation: %s", e.operation))
	}
	if e.requestID != "" {
		parts = append(parts, fmt.Sprintf("RequestID: %s", e.requestID))
	}

	if len(e.details) > 0 {
		keys := make([]string, 0, len(e.details))
		for k := range e.details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		detailStrs := make([]string, 0, len(keys))
		for _, k := range keys {
			detailStrs = append(detailStrs, fmt.Sprintf("%s=%v", k, e.details[k]))
		}
		parts = append(parts, fmt.Sprintf("Details: {%s}", strings.Join(detailStrs, ", ")))
	}

	if e.cause != nil {
		parts = append(parts, fmt.Sprintf("Cause: %s", e.cause.Error()))
	}

	return strings.Join(parts, "\n")
}

// MarshalJSON implements json.Marshaler for structured logging
func (e *Error) MarshalJSON() ([]byte, error) {
	data := map[string]interface{}{
		"message":   e.message,
		"code":      e.code,
		"severity":  e.severity.String(),
		"timestamp": e.timestamp.Format(time.RFC3339),
		"details":   e.details,
	}
	if e.operation != "" {
		data["operation"] = e.operation
	}
	if e.requestID != "" {
		data["request_id"] = e.requestID
	}
	if e.cause != nil {
		data["cause"] = e.cause.Error()
	}
	return json.Marshal(data)
}

// HasCode reports whether err, or any *Error it wraps, carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode returns the error code from an error, or CodeUnknown if it is not an *Error
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return CodeUnknown
}

// GetSeverity returns the error severity, or SeverityMedium if err is not an *Error
func GetSeverity(err error) Severity {
	var e *Error
	if errors.As(err, &e) {
		return e.severity
	}
	return SeverityMedium
}
