package alphavantage

import (
	"fmt"
)

// ErrorKind represents the category of error that occurred during a fetch operation
type ErrorKind string

const (
	// ErrorKindTransport indicates a network-level failure: connection error,
	// timeout, or a non-2xx HTTP status
	ErrorKindTransport ErrorKind = "transport"
	// ErrorKindAPI indicates a failure signaled by the upstream inside an
	// otherwise successful HTTP response body
	ErrorKindAPI ErrorKind = "api_error"
	// ErrorKindParse indicates a response body that could not be parsed as JSON
	ErrorKindParse ErrorKind = "parse_error"
)

// FetchError represents a structured error from a fetch operation
type FetchError struct {
	Kind      ErrorKind
	Retryable bool
	Message   string
	Cause     error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NewTransportError creates a transport error
func NewTransportError(message string, cause error) *FetchError {
	return &FetchError{
		Kind:      ErrorKindTransport,
		Retryable: true,
		Message:   message,
		Cause:     cause,
	}
}

// NewAPIError creates an error carrying an upstream-signaled failure message
func NewAPIError(message string) *FetchError {
	return &FetchError{
		Kind:      ErrorKindAPI,
		Retryable: false,
		Message:   message,
	}
}

// NewParseError creates a parse error
func NewParseError(cause error) *FetchError {
	return &FetchError{
		Kind:      ErrorKindParse,
		Retryable: false,
		Message:   "failed to parse response body",
		Cause:     cause,
	}
}
