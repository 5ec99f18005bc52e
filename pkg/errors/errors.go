package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Rule errors
	ErrRuleNotFound   ErrorCode = "RULE_NOT_FOUND"
	ErrRuleExists     ErrorCode = "RULE_EXISTS"
	ErrNoMatchingRule ErrorCode = "NO_MATCHING_RULE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileMove     ErrorCode = "FILE_MOVE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"

	// History errors
	ErrHistoryAccess ErrorCode = "HISTORY_ACCESS"

	// Watcher errors
	ErrWatchFailed ErrorCode = "WATCH_FAILED"
)

// SortError represents a structured error with code and details
type SortError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SortError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SortError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SortError) Is(target error) bool {
	var targetErr *SortError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SortError with the given code and message
func New(code ErrorCode, message string) *SortError {
	return &SortError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SortError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SortError {
	return &SortError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SortError
func Wrap(err error, code ErrorCode, message string) *SortError {
	if err == nil {
		return nil
	}
	return &SortError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SortError {
	if err == nil {
		return nil
	}
	return &SortError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SortError) WithDetail(key string, value interface{}) *SortError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var sortErr *SortError
	if errors.As(err, &sortErr) {
		return sortErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SortError
func GetErrorCode(err error) ErrorCode {
	var sortErr *SortError
	if errors.As(err, &sortErr) {
		return sortErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SortError
func GetErrorDetails(err error) map[string]interface{} {
	var sortErr *SortError
	if errors.As(err, &sortErr) {
		return sortErr.Details
	}
	return nil
}
