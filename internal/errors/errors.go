// Package errors provides unified error handling across the checksmith
// system.
//
// Errors fall into two tiers: load-time structural errors (missing or
// malformed registry) and operation-level domain errors (unknown
// template, unsupported group, existing output path, incomplete
// inference). Both tiers surface as an AppError; main prints the message
// with an "ERROR:" prefix and exits nonzero. Template content defects
// are deliberately NOT errors — the validator collects them as data so a
// single run can report every problem at once.
package errors

import "fmt"

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	ErrCodeInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrCodeValidation     ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
	ErrCodeRegistryError  ErrorCode = "REGISTRY_ERROR"
	ErrCodeInputClosed    ErrorCode = "INPUT_CLOSED"
	ErrCodeInternalError  ErrorCode = "INTERNAL_ERROR"
)

// AppError represents a standardized application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface. The message is the operator
// facing text; the code is for programmatic handling only.
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf creates a new application error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: err}
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// GetAppError extracts an AppError from an error, or converts it to one
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, err.Error())
}

// Common error constructors for frequently used errors

func InvalidInput(format string, args ...interface{}) *AppError {
	return Newf(ErrCodeInvalidInput, format, args...)
}

func NotFound(format string, args ...interface{}) *AppError {
	return Newf(ErrCodeNotFound, format, args...)
}

func AlreadyExists(format string, args ...interface{}) *AppError {
	return Newf(ErrCodeAlreadyExists, format, args...)
}

func StorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorageFailure, fmt.Sprintf("%s: %v", operation, err))
}
