// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used to pick the log level for an error.
// Author: msto63
// Version: v0.1.0
// Created: 2025-01-24
// Modified: 2025-01-24

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow covers bad user input such as syntax errors
	SeverityLow Severity = iota

	// SeverityMedium is the default for unclassified errors
	SeverityMedium

	// SeverityHigh covers failures of storage or services
	SeverityHigh

	// SeverityCritical covers failures that leave the process unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeStorage, CodeServiceUnavailable, CodeServiceInitialization:
		return SeverityHigh
	case CodeSyntax, CodeSourceTooLarge, CodeInvalidInput, CodeNotFound:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
