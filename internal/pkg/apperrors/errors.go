package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Account errors
var (
	ErrAccountNotFound       = errors.New("account not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// Course errors
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseAlreadyExists = errors.New("course with this code already exists")
	// ErrCourseForbidden is the terminal denial for a course that exists but
	// is outside the acting account's administrable set. It must never be
	// reported as a not-found condition: a valid id out of scope renders as
	// forbidden, so callers cannot probe which courses exist.
	ErrCourseForbidden = errors.New("course is not administrable by this account")
)

// Student errors
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrCedulaAlreadyExists  = errors.New("cedula already exists")
	ErrStudentNotRegistered = errors.New("account has no student profile")
)

// Permission request errors
var (
	ErrPermissionRequestNotFound = errors.New("permission request not found")
	// ErrPermissionAlreadyDecided rejects transitions out of APPROVED or
	// REJECTED; those states are terminal.
	ErrPermissionAlreadyDecided = errors.New("permission request has already been decided")
)

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
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

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
