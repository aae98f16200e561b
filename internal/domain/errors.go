package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrDocumentNotFound = errors.New("file not found")
)

// ValidationError reports a missing, malformed or out-of-range field or file.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ConflictError reports a uniqueness violation on Email, Aadhaar or PAN.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + " already exists"
}

// UploadError reports a rejected multipart payload or file.
type UploadError struct {
	Field  string
	Reason string
}

func (e *UploadError) Error() string {
	return e.Reason
}
