package kicadcfg

import (
	"errors"
	"fmt"
)

// Error types for KiCad configuration operations

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNotFound indicates a required file or directory is absent
	ErrTypeNotFound ErrorType = iota
	// ErrTypeFormat indicates a file exists but violates the expected structure
	ErrTypeFormat
	// ErrTypeValidation indicates a caller-supplied value violates a documented constraint
	ErrTypeValidation
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNotFound:
		return "Not Found"
	case ErrTypeFormat:
		return "Format Error"
	case ErrTypeValidation:
		return "Validation Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ConfigError represents an error that occurred while reading or updating
// KiCad configuration files. None of these errors are retryable; they all
// carry enough context (file path, offending value) to report to a user.
type ConfigError struct {
	Type    ErrorType // Category of error
	Message string    // Human-readable error message
	Path    string    // File or directory involved (if applicable)
	Value   string    // Offending caller-supplied value (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (path: %s)", msg, e.Path)
	}
	if e.Value != "" {
		msg = fmt.Sprintf("%s (value: %q)", msg, e.Value)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates an error for a missing required file or directory
func NewNotFoundError(message, path string) *ConfigError {
	return &ConfigError{
		Type:    ErrTypeNotFound,
		Message: message,
		Path:    path,
	}
}

// NewFormatError creates an error for a structurally invalid file
func NewFormatError(message, path string, err error) *ConfigError {
	return &ConfigError{
		Type:    ErrTypeFormat,
		Message: message,
		Path:    path,
		Err:     err,
	}
}

// NewValidationError creates an error for an invalid caller-supplied value
func NewValidationError(message, value string) *ConfigError {
	return &ConfigError{
		Type:    ErrTypeValidation,
		Message: message,
		Value:   value,
	}
}

// IsNotFoundError checks if an error is a missing-file error
func IsNotFoundError(err error) bool {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Type == ErrTypeNotFound
	}
	return false
}

// IsFormatError checks if an error is a file-structure error
func IsFormatError(err error) bool {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Type == ErrTypeFormat
	}
	return false
}

// IsValidationError checks if an error is a caller-input validation error
func IsValidationError(err error) bool {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return cfgErr.Type == ErrTypeValidation
	}
	return false
}
