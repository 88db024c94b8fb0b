package apperrors

import (
	"errors"
	"fmt"
)

// MsgMissingAttributes is returned when a required field is absent
const MsgMissingAttributes = "Not all required attributes were provided in the request"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrInvalidReference      = errors.New("referenced resource does not exist")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Query errors
	ErrQueryFailed = errors.New("query failed")
)

// Course Errors
var (
	ErrCourseAlreadyExists = fmt.Errorf("course %w", ErrResourceAlreadyExists)
	ErrPrerequisiteExists  = fmt.Errorf("prerequisite %w", ErrResourceAlreadyExists)
)

// Term Errors
var (
	ErrTermAlreadyExists = fmt.Errorf("term %w", ErrResourceAlreadyExists)
	ErrTermCourseExists  = fmt.Errorf("term course %w", ErrResourceAlreadyExists)
)

// Student Errors
var (
	ErrStudentNotFound        = fmt.Errorf("student %w", ErrResourceNotFound)
	ErrStudentIDAlreadyExists = fmt.Errorf("student ID %w", ErrResourceAlreadyExists)
)

// Student term plan Errors
var (
	ErrPlanNotFound       = fmt.Errorf("student term plan %w", ErrResourceNotFound)
	ErrPlanAlreadyExists  = fmt.Errorf("student term plan %w", ErrResourceAlreadyExists)
	ErrPlanCourseNotFound = fmt.Errorf("student term plan course %w", ErrResourceNotFound)
	ErrPlanCourseExists   = fmt.Errorf("student term plan course %w", ErrResourceAlreadyExists)
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(err error, message string) error {
	if err == nil {
		err = ErrResourceNotFound
	}
	return &CustomError{Err: err, Message: message}
}

// NewAlreadyExistsError creates a duplicate-key rejection carrying an entity specific message
func NewAlreadyExistsError(err error, message string) error {
	if err == nil {
		err = ErrResourceAlreadyExists
	}
	return &CustomError{Err: err, Message: message}
}

// NewValidationError creates a new custom error for a request that failed validation
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewBadRequestError creates an error for a request body that could not be decoded
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
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

// QueryError is the single error kind returned by the repositories when the
// query executor reports anything other than success. Status is the
// executor's status code; Err is the underlying detail.
type QueryError struct {
	Status int
	Err    error
}

// NewQueryError wraps an executor failure
func NewQueryError(status int, err error) *QueryError {
	return &QueryError{Status: status, Err: err}
}

func (e *QueryError) Error() string {
	if e.Err == nil {
		return "an error occurred while executing the query"
	}
	return fmt.Sprintf("an error occurred while executing the query: %v", e.Err)
}

// Unwrap exposes the driver error so callers can classify it
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is reports QueryError as ErrQueryFailed
func (e *QueryError) Is(target error) bool {
	return target == ErrQueryFailed
}
