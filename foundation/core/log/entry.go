// File: entry.go
// Title: Log Entry Structure
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17

package log

import (
	"time"
)

// Entry represents a single log entry with all its metadata
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	RequestID string
	Fields    Fields
	Error     error
}

// Fields represents custom key-value pairs for structured logging
type Fields map[string]interface{}

// NewEntry creates an entry stamped with the current time
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}

// Field creates a single field for logging
func Field(key string, value interface{}) Fields {
	return Fields{key: value}
}

// Err creates an error field for logging
func Err(err error) Fields {
	return Fields{"error": err}
}
