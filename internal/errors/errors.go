package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for startup failure modes
type ErrorCode string

const (
	// InvalidBindAddress indicates the bind address is not a valid IP literal
	InvalidBindAddress ErrorCode = "INVALID_BIND_ADDRESS"
	// InvalidPort indicates the port is outside the valid range
	InvalidPort ErrorCode = "INVALID_PORT"
	// InvalidIndexRoute indicates the index route does not start with /
	InvalidIndexRoute ErrorCode = "INVALID_INDEX_ROUTE"
	// RootNotFound indicates the served directory does not exist
	RootNotFound ErrorCode = "ROOT_NOT_FOUND"
	// RootNotDirectory indicates the served path is not a directory
	RootNotDirectory ErrorCode = "ROOT_NOT_DIRECTORY"
	// ConfigInvalid indicates the config file could not be read or parsed
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// ServerFailed indicates the HTTP listener failed to start or serve
	ServerFailed ErrorCode = "SERVER_FAILED"
)

// ServeError represents a startup or server error with a stable code.
// Resolution outcomes (missing file, traversal attempt) are not errors;
// they are ordinary Resolution values handled by the HTTP layer.
type ServeError struct {
	Code    ErrorCode
	Message string
	cause   error
}

// New creates a new ServeError
func New(code ErrorCode, message string, cause error) *ServeError {
	return &ServeError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *ServeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ServeError) Unwrap() error {
	return e.cause
}
