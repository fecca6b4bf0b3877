// Package errors provides structured error handling for addrbook.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (book file, lock file)
//   - 4XX: Validation errors (record decoding, user input)
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates book file and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryValidation indicates malformed records or invalid input.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeLoadFailed  = "ERR_201_LOAD_FAILED"
	ErrCodeWriteFailed = "ERR_202_WRITE_FAILED"
	ErrCodeLockFailed  = "ERR_203_LOCK_FAILED"

	// Validation errors (400-499)
	ErrCodeInvalidInput      = "ERR_401_INVALID_INPUT"
	ErrCodeInvalidFieldCount = "ERR_402_INVALID_FIELD_COUNT"
	ErrCodeInvalidID         = "ERR_403_INVALID_ID"
	ErrCodeDuplicateContact  = "ERR_404_DUPLICATE_CONTACT"

	// Internal errors (500-599)
	ErrCodeInternal     = "ERR_501_INTERNAL"
	ErrCodeExportFailed = "ERR_502_EXPORT_FAILED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Numeric portion, e.g. "201" from "ERR_201_LOAD_FAILED"
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
// A book that cannot be loaded aborts startup.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeLoadFailed, ErrCodeInvalidFieldCount, ErrCodeInvalidID:
		return SeverityFatal
	}

	if isRetryableCode(code) {
		return SeverityWarning
	}

	return SeverityError
}

// isRetryableCode checks if an error code represents a retryable error.
func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeWriteFailed, ErrCodeLockFailed:
		return true
	default:
		return false
	}
}

// isDecodeCode reports whether code belongs to the record decoding family.
func isDecodeCode(code string) bool {
	return code == ErrCodeInvalidFieldCount || code == ErrCodeInvalidID
}
