// File: logger.go
// Title: Core Logger Implementation
// Description: Implements the Logger type: leveled, structured, safe for
//              concurrent use, with immutable derivation via With* methods.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-17 v0.2.0: Synchronous writes only, severity-aware LogError

package log

import (
	"errors"
	"io"
	"os"
	"sync"

	gloxerror "github.com/msto63/glox/foundation/core/error"
)

// Logger represents a structured logger with contextual information
type Logger struct {
	level     Level
	formatter Formatter
	output    io.Writer
	name      string
	requestID string

	contextFields Fields

	// guards level; writes to output are serialized by writeMu
	mutex   sync.RWMutex
	writeMu *sync.Mutex
}

// Config represents logger configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
	Name   string
}

// New creates a new logger writing text to stderr at info level
func New() *Logger {
	return NewWithConfig(Config{Level: DefaultLevel(), Format: FormatText})
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(config Config) *Logger {
	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	return &Logger{
		level:         config.Level,
		formatter:     GetFormatter(config.Format),
		output:        output,
		name:          config.Name,
		contextFields: make(Fields),
		writeMu:       &sync.Mutex{},
	}
}

// WithLevel returns a copy with the minimum level set
func (l *Logger) WithLevel(level Level) *Logger {
	clone := l.clone()
	clone.level = level
	return clone
}

// WithName returns a copy with the logger name set
func (l *Logger) WithName(name string) *Logger {
	clone := l.clone()
	clone.name = name
	return clone
}

// WithField returns a copy with a persistent field added
func (l *Logger) WithField(key string, value interface{}) *Logger {
	clone := l.clone()
	clone.contextFields[key] = value
	return clone
}

// WithFields returns a copy with persistent fields added
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := l.clone()
	for k, v := range fields {
		clone.contextFields[k] = v
	}
	return clone
}

// WithRequestID returns a copy bound to a request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	clone := l.clone()
	clone.requestID = requestID
	return clone
}

// Trace logs a trace level message
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, nil, fields...)
}

// Debug logs a debug level message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, fields...)
}

// Info logs an info level message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, fields...)
}

// Warn logs a warning level message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, fields...)
}

// Error logs an error level message
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, fields...)
}

// ErrorWithErr logs an error with an error object
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields...)
}

// WarnWithErr logs a warning with an error object
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, err, fields...)
}

// LogError logs err at a level derived from its severity when it is a glox error
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	var gerr *gloxerror.Error
	if !errors.As(err, &gerr) {
		l.log(LevelError, err.Error(), err)
		return
	}

	fields := Fields{
		"error_code":     gerr.Code(),
		"error_severity": gerr.Severity().String(),
	}
	if gerr.Operation() != "" {
		fields["error_operation"] = gerr.Operation()
	}

	switch gerr.Severity() {
	case gloxerror.SeverityLow:
		l.log(LevelInfo, gerr.Message(), err, fields)
	case gloxerror.SeverityMedium:
		l.log(LevelWarn, gerr.Message(), err, fields)
	default:
		l.log(LevelError, gerr.Message(), err, fields)
	}
}

// IsLevelEnabled returns true if the given level is enabled
func (l *Logger) IsLevelEnabled(level Level) bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return level.ShouldLog(l.level)
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() Level {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.level
}

// SetLevel changes the level in place
func (l *Logger) SetLevel(level Level) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.level = level
}

func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	if !l.IsLevelEnabled(level) {
		return
	}

	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.RequestID = l.requestID
	entry.Error = err

	for k, v := range l.contextFields {
		entry.Fields[k] = v
	}
	for _, fieldSet := range fields {
		for k, v := range fieldSet {
			entry.Fields[k] = v
		}
	}

	formatted, formatErr := l.formatter.Format(entry)
	if formatErr != nil {
		return
	}

	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	_, _ = l.output.Write(formatted)
}

func (l *Logger) clone() *Logger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	clone := &Logger{
		level:         l.level,
		formatter:     l.formatter,
		output:        l.output,
		name:          l.name,
		requestID:     l.requestID,
		contextFields: make(Fields, len(l.contextFields)),
		writeMu:       l.writeMu,
	}
	for k, v := range l.contextFields {
		clone.contextFields[k] = v
	}
	return clone
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New()
)

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	return NewWithConfig(Config{Level: LevelError + 1, Output: io.Discard})
}
