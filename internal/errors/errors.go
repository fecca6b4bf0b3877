package errors

import (
	stderrors "errors"
	"fmt"
)

// BookError is the structured error type for addrbook.
// It provides rich context for error handling, logging, and user presentation.
type BookError struct {
	// Code is the unique error code (e.g., "ERR_201_LOAD_FAILED").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *BookError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *BookError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with BookError sentinels.
func (e *BookError) Is(target error) bool {
	if t, ok := target.(*BookError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *BookError) WithDetail(key, value string) *BookError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *BookError) WithSuggestion(suggestion string) *BookError {
	e.Suggestion = suggestion
	return e
}

// New creates a new BookError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *BookError {
	return &BookError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a BookError from an existing error.
// The error's message becomes the BookError message.
func Wrap(code string, err error) *BookError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// Sentinels for errors.Is comparisons. Matching is by code only.
var (
	ErrLoad              = &BookError{Code: ErrCodeLoadFailed}
	ErrWrite             = &BookError{Code: ErrCodeWriteFailed}
	ErrInvalidFieldCount = &BookError{Code: ErrCodeInvalidFieldCount}
	ErrInvalidID         = &BookError{Code: ErrCodeInvalidID}
	ErrDuplicate         = &BookError{Code: ErrCodeDuplicateContact}
)

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *BookError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// LoadError creates an error for a book file that cannot be opened or read.
func LoadError(path string, cause error) *BookError {
	return New(ErrCodeLoadFailed, "cannot load address book", cause).
		WithDetail("path", path)
}

// WriteError creates an error for a failed append or rewrite.
// Write errors are retryable.
func WriteError(path string, cause error) *BookError {
	return New(ErrCodeWriteFailed, "cannot write address book", cause).
		WithDetail("path", path)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *BookError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *BookError {
	return New(ErrCodeInternal, message, cause)
}

// as finds the first BookError in err's chain.
func as(err error) (*BookError, bool) {
	var be *BookError
	if stderrors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsRetryable checks if an error is retryable.
// Returns true if the chain holds a BookError with Retryable flag set.
func IsRetryable(err error) bool {
	if be, ok := as(err); ok {
		return be.Retryable
	}
	return false
}

// IsFatal checks if an error has fatal severity.
// Fatal errors should abort the current operation.
func IsFatal(err error) bool {
	if be, ok := as(err); ok {
		return be.Severity == SeverityFatal
	}
	return false
}

// IsDecodeError reports whether err is a record decoding failure
// (invalid field count or invalid id).
func IsDecodeError(err error) bool {
	if be, ok := as(err); ok {
		return isDecodeCode(be.Code)
	}
	return false
}

// GetCode extracts the error code from a BookError.
// Returns empty string if not a BookError.
func GetCode(err error) string {
	if be, ok := as(err); ok {
		return be.Code
	}
	return ""
}

// GetCategory extracts the category from a BookError.
// Returns empty string if not a BookError.
func GetCategory(err error) Category {
	if be, ok := as(err); ok {
		return be.Category
	}
	return ""
}
