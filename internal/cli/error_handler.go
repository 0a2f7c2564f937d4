package cli

import (
	"fmt"

	"paper2plan/internal/errors"
	"paper2plan/internal/validation"
)

// Process exit codes
const (
	ExitFailure     = 1
	ExitUsage       = 2
	ExitUnavailable = 3
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.UserMessage())
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %w", operation, userError{msg: errors.GetUserMessage(err), cause: err})
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("%s", validationErr.UserMessage())
	}

	if _, ok := errors.AsAppError(err); ok {
		return userError{msg: errors.GetUserMessage(err), cause: err}
	}

	return err
}

// ExitCode maps an error to the process exit status
func (eh *ErrorHandler) ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case eh.IsValidationError(err), errors.IsErrorType(err, errors.ErrorTypeInvalidInput):
		return ExitUsage
	case errors.IsErrorType(err, errors.ErrorTypeUnavailable):
		return ExitUnavailable
	default:
		return ExitFailure
	}
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsUpstreamError checks if an AI provider or Google failed
func (eh *ErrorHandler) IsUpstreamError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeUpstream)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}

// userError shows the user message but keeps the AppError reachable for
// exit code mapping
type userError struct {
	msg   string
	cause error
}

func (e userError) Error() string { return e.msg }

func (e userError) Unwrap() error { return e.cause }
