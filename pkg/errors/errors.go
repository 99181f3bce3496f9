// Package errors defines the shared error taxonomy for dotforge.
package errors

import (
	"fmt"
)

// ParseError represents a configuration parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ModuleError represents a runtime failure inside one module's operation.
// The engine records it in that module's result entry; it never aborts the pass.
type ModuleError struct {
	ModuleID string
	Err      error
}

// NewModuleError constructs a ModuleError.
func NewModuleError(moduleID string, err error) error {
	return &ModuleError{ModuleID: moduleID, Err: err}
}

func (e *ModuleError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("module %q failed", e.ModuleID)
	}
	return fmt.Sprintf("module %q failed: %s", e.ModuleID, e.Err.Error())
}

// Unwrap exposes the underlying error.
func (e *ModuleError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
