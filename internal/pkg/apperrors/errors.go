package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrDuplicateEntry   = errors.New("duplicate entry")
	// ErrBusinessRule marks a request that references existing rows but breaks a domain rule,
	// e.g. mapping a student to a course that is not in the mentor's bucket.
	ErrBusinessRule = errors.New("business rule violation")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Course errors
var (
	ErrCourseNotFound      = fmt.Errorf("course not found: %w", ErrResourceNotFound)
	ErrCourseAlreadyExists = fmt.Errorf("course already exists: %w", ErrDuplicateEntry)
)

// Mentor errors
var (
	ErrMentorNotFound          = fmt.Errorf("mentor not found: %w", ErrResourceNotFound)
	ErrCourseAlreadyAssigned   = fmt.Errorf("course already assigned to mentor: %w", ErrDuplicateEntry)
	ErrCourseNotAssigned       = fmt.Errorf("course not assigned to mentor: %w", ErrResourceNotFound)
	ErrCourseNotInMentorBucket = fmt.Errorf("course not in mentor bucket: %w", ErrBusinessRule)
)

// Student and mapping errors
var (
	ErrStudentNotFound = fmt.Errorf("student not found: %w", ErrResourceNotFound)
	ErrMappingNotFound = fmt.Errorf("student course mentor record not found: %w", ErrResourceNotFound)
)

// User errors
var (
	ErrUserNotFound       = fmt.Errorf("user not found: %w", ErrResourceNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("email already exists: %w", ErrDuplicateEntry)
)

// CustomError represents application-specific errors with a user facing message
type CustomError struct {
	Err     error
	Message string
	// Fields holds per-field validation messages
	Fields map[string]string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewNotFoundError creates a not found error carrying a message
func NewNotFoundError(err error, message string) error {
	if err == nil {
		err = ErrResourceNotFound
	}
	return NewCustomError(err, message)
}

// NewDuplicateError creates a duplicate entry error carrying a message
func NewDuplicateError(err error, message string) error {
	if err == nil {
		err = ErrDuplicateEntry
	}
	return NewCustomError(err, message)
}

// NewFieldError creates a validation error for a single field
func NewFieldError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Fields:  map[string]string{field: message},
	}
}

// WithField adds another field message to a validation error
func (e *CustomError) WithField(field, message string) *CustomError {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = message
	return e
}

// MessageOf returns the user facing message of err if it carries one.
func MessageOf(err error) (string, bool) {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message, true
	}
	return "", false
}

// FieldsOf returns per-field validation messages carried by err.
func FieldsOf(err error) map[string]string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Fields
	}
	return nil
}
