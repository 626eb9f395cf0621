// File: codes.go
// Title: Error Code Definitions
// Description: Standardized error codes for classifying glox failures.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-17 v0.2.0: Replaced platform codes with front-end codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Front end
	CodeSyntax         Code = "SYNTAX_ERROR"
	CodeSourceTooLarge Code = "SOURCE_TOO_LARGE"

	// Storage
	CodeStorage Code = "STORAGE_ERROR"

	// Service and network
	CodeServiceUnavailable    Code = "SERVICE_UNAVAILABLE"
	CodeServiceInitialization Code = "SERVICE_INITIALIZATION"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeSyntax, CodeSourceTooLarge, CodeStorage,
		CodeServiceUnavailable, CodeServiceInitialization,
		CodeConfigError, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeSyntax, CodeSourceTooLarge:
		return "frontend"
	case CodeStorage:
		return "storage"
	case CodeServiceUnavailable, CodeServiceInitialization:
		return "service"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// ExitCode maps a code onto a sysexits(3) process status.
func (c Code) ExitCode() int {
	switch c {
	case CodeSyntax:
		return 65 // EX_DATAERR
	case CodeNotFound:
		return 66 // EX_NOINPUT
	case CodeInvalidInput, CodeSourceTooLarge:
		return 64 // EX_USAGE
	case CodeServiceUnavailable:
		return 69 // EX_UNAVAILABLE
	case CodeStorage:
		return 74 // EX_IOERR
	case CodeConfigError, CodeInvalidConfig:
		return 78 // EX_CONFIG
	default:
		return 70 // EX_SOFTWARE
	}
}
