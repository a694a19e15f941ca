// Package errors provides error handling utilities.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput indicates an input validation error
	TypeInput Type = "INPUT_ERROR"

	// TypeInvalidBounds indicates min/max line bounds that cannot be enumerated
	TypeInvalidBounds Type = "INVALID_BOUNDS"

	// TypeLimitExceeded indicates the bundle ceiling was hit during enumeration
	TypeLimitExceeded Type = "LIMIT_EXCEEDED"

	// TypeNotFound indicates a referenced product or plan is absent
	TypeNotFound Type = "NOT_FOUND"

	// TypeEmptyCatalog indicates the catalog holds no products at all
	TypeEmptyCatalog Type = "EMPTY_CATALOG"

	// TypeCatalog indicates a catalog access failure (connectivity, malformed rows)
	TypeCatalog Type = "CATALOG_ERROR"

	// TypeSeed indicates a seed-file parsing or apply error
	TypeSeed Type = "SEED_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// InvalidBounds creates an invalid-bounds error
func InvalidBounds(serviceType string, min, max int) *Error {
	return Newf(TypeInvalidBounds, "invalid line bounds for %s: min=%d max=%d", serviceType, min, max).
		WithContext("service_type", serviceType)
}

// LimitExceeded creates a bundle-ceiling error
func LimitExceeded(limit int) *Error {
	return Newf(TypeLimitExceeded, "enumeration exceeded the bundle ceiling of %d", limit)
}

// NotFound creates a not found error
func NotFound(resourceType, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", resourceType, identifier)
}

// EmptyCatalog creates an empty-catalog error
func EmptyCatalog(message string) *Error {
	return New(TypeEmptyCatalog, message)
}

// Catalog creates a catalog access error
func Catalog(message string, cause error) *Error {
	return Wrap(TypeCatalog, message, cause)
}

// Seed creates a seed-file error
func Seed(message string, cause error) *Error {
	return Wrap(TypeSeed, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
