// Package errors provides custom error types for the eventdeck system.
// These errors enable programmatic error checking and consistent error
// reporting across the catalog, cache, and mutation layers.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As are aliases for the standard library matchers so callers
// can import a single errors package.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the eventdeck system
var (
	// ErrNotFound indicates that a requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable indicates that the remote record store is temporarily unavailable
	ErrStoreUnavailable = errors.New("record store unavailable")

	// ErrCacheEmpty indicates that the catalog cache has not completed a refresh yet
	ErrCacheEmpty = errors.New("catalog cache empty")
)

// NotFoundError represents an error when a record is not found
type NotFoundError struct {
	Collection string
	ID         string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Collection, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(collection, id string) *NotFoundError {
	return &NotFoundError{Collection: collection, ID: id}
}

// ValidationError represents a validation failure caught before any
// network call is made
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// TransportError represents a transport-level failure: the request never
// produced a status code from the remote store
type TransportError struct {
	Operation string // "list", "get", "create", "replace", "delete"
	URL       string
	Err       error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("transport error during %s of %s: %v", e.Operation, e.URL, e.Err)
	}
	return fmt.Sprintf("transport error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

// NewTransportError creates a new TransportError
func NewTransportError(operation, url string, err error) *TransportError {
	return &TransportError{Operation: operation, URL: url, Err: err}
}

// RemoteError represents a non-success status returned by the remote
// record store
type RemoteError struct {
	Operation  string
	Collection string
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.Collection != "" {
		return fmt.Sprintf("remote store rejected %s of %s (status %d): %s", e.Operation, e.Collection, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote store rejected %s (status %d): %s", e.Operation, e.StatusCode, e.Message)
}

// Is implements errors.Is support
func (e *RemoteError) Is(target error) bool {
	if e.StatusCode == 404 {
		return target == ErrNotFound
	}
	if e.StatusCode >= 500 {
		return target == ErrStoreUnavailable
	}
	return false
}

// NewRemoteError creates a new RemoteError
func NewRemoteError(operation, collection string, statusCode int, message string) *RemoteError {
	return &RemoteError{
		Operation:  operation,
		Collection: collection,
		StatusCode: statusCode,
		Message:    message,
	}
}

// IOError represents an error during local I/O, such as reading or
// writing the allocator state file
type IOError struct {
	Operation string // "read", "write", "create", "rename"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsStoreUnavailable checks if an error indicates remote store unavailability
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsTransportError checks if an error is a transport-level failure
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsRemoteError checks if an error is a rejection from the remote store,
// and returns the status code when it is
func IsRemoteError(err error) (int, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.StatusCode, true
	}
	return 0, false
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapTransport wraps an error as a TransportError
func WrapTransport(operation, url string, err error) error {
	if err == nil {
		return nil
	}
	return NewTransportError(operation, url, err)
}
