// internal/relay/core/errors.go
package core

import (
	"errors"
	"fmt"
)

// Domain specific errors
var (
	// Request related errors
	ErrEmptyTarget       = errors.New("target cannot be empty")
	ErrEmptyContent      = errors.New("content cannot be empty")
	ErrUnsupportedKind   = errors.New("unsupported content kind")
	ErrCaptionNotAllowed = errors.New("caption is not supported for text messages")

	// Target related errors
	ErrTargetNotFound = errors.New("target alias not found")
)

// Error types for better error handling

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

func (e ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(field string, cause error) ValidationError {
	return ValidationError{
		Field:   field,
		Message: cause.Error(),
		Cause:   cause,
	}
}

// ServiceError represents an error in the relay service
type ServiceError struct {
	Code    string
	Message string
	Cause   error
}

func (e ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e ServiceError) Unwrap() error {
	return e.Cause
}

// NewServiceError creates a new service error
func NewServiceError(code, message string, cause error) ServiceError {
	return ServiceError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
