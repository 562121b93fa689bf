// Package errors provides structured API errors and their translation to
// RFC 7807 problem-details responses.
package errors

import (
	"fmt"
	"net/http"
)

// APIError represents a structured API error.
type APIError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError.
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{StatusCode: statusCode, ErrorCode: errorCode, Message: message}
}

// NewWithDetails creates a new APIError with additional details.
func NewWithDetails(statusCode int, errorCode, message string, details any) *APIError {
	return &APIError{StatusCode: statusCode, ErrorCode: errorCode, Message: message, Details: details}
}

// ErrValidation creates a validation error with field details.
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// NotFoundError creates a not found error for a named resource.
func NotFoundError(resource string) *APIError {
	return NewWithDetails(http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("%s not found", resource), resource)
}

// ErrImport wraps a failure while reading or unifying uploaded batches.
func ErrImport(err error) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, "IMPORT_FAILED", "Failed to import batches", err.Error())
}

// ErrNoDataset signals that an operation needs an imported dataset first.
func ErrNoDataset() *APIError {
	return New(http.StatusConflict, "NO_DATASET", "No dataset has been imported yet")
}

// ErrPayloadTooLarge signals an import body over the configured limit.
func ErrPayloadTooLarge() *APIError {
	return New(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "The request body exceeds the maximum allowed size")
}
