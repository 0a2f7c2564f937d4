package validation

import (
	stderrors "errors"
	"fmt"
	"strings"

	apperrors "paper2plan/internal/errors"
)

// ValidationErrorType names the rule a field broke
type ValidationErrorType string

const (
	ErrorTypeRequired      ValidationErrorType = "required"
	ErrorTypeInvalidFormat ValidationErrorType = "invalid_format"
	ErrorTypeInvalidLength ValidationErrorType = "invalid_length"
	ErrorTypeInvalidValue  ValidationErrorType = "invalid_value"
	ErrorTypeInvalidRange  ValidationErrorType = "invalid_range"
)

// FieldError is one broken rule on a request field
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   interface{}
}

func (fe *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
}

// ValidationError collects every broken rule of one task, event, chat or
// image request so they are reported together
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError returns an empty collection
func NewValidationError() *ValidationError {
	return &ValidationError{Errors: make([]FieldError, 0)}
}

func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 0 {
		return "invalid request"
	}
	parts := make([]string, 0, len(ve.Errors))
	for i := range ve.Errors {
		parts = append(parts, ve.Errors[i].Error())
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// HasErrors reports whether any rule was broken
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// Fields lists the offending fields in the order they were checked
func (ve *ValidationError) Fields() []string {
	fields := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}

func (ve *ValidationError) add(field string, errorType ValidationErrorType, message string, value interface{}) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Type: errorType, Message: message, Value: value})
}

func (ve *ValidationError) AddRequiredError(field string) {
	ve.add(field, ErrorTypeRequired, field+" is required", nil)
}

// AddInvalidFormatError records a value that does not parse, e.g. a date
// outside YYYY-MM-DD
func (ve *ValidationError) AddInvalidFormatError(field string, value interface{}, expectedFormat string) {
	ve.add(field, ErrorTypeInvalidFormat, fmt.Sprintf("%s must look like %s", field, expectedFormat), value)
}

// AddInvalidLengthError records a length outside [min, max]; a zero bound
// is not checked
func (ve *ValidationError) AddInvalidLengthError(field string, value interface{}, min, max int) {
	var message string
	switch {
	case min > 0 && max > 0:
		message = fmt.Sprintf("%s must be %d to %d characters", field, min, max)
	case min > 0:
		message = fmt.Sprintf("%s must be at least %d characters", field, min)
	case max > 0:
		message = fmt.Sprintf("%s must be at most %d characters", field, max)
	default:
		message = field + " has the wrong length"
	}
	ve.add(field, ErrorTypeInvalidLength, message, value)
}

// AddInvalidValueError records a value outside an accepted set
func (ve *ValidationError) AddInvalidValueError(field string, value interface{}, reason string) {
	ve.add(field, ErrorTypeInvalidValue, fmt.Sprintf("%s: %s", field, reason), value)
}

// AddInvalidRangeError records a number outside its bounds
func (ve *ValidationError) AddInvalidRangeError(field string, value interface{}, reason string) {
	ve.add(field, ErrorTypeInvalidRange, fmt.Sprintf("%s %s", field, reason), value)
}

// UserMessage is the text shown to CLI users and API clients: the single
// message, or one line per broken rule
func (ve *ValidationError) UserMessage() string {
	switch len(ve.Errors) {
	case 0:
		return "Invalid request"
	case 1:
		return ve.Errors[0].Message
	}
	lines := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		lines = append(lines, "- "+fe.Message)
	}
	return "Please fix the following:\n" + strings.Join(lines, "\n")
}

// IsValidationError checks if an error is, or wraps, a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// ToAppError lifts field errors into the application error taxonomy so
// transports can map them uniformly. Other errors pass through untouched.
func ToAppError(err error) error {
	var ve *ValidationError
	if !stderrors.As(err, &ve) {
		return err
	}
	appErr := apperrors.NewValidationError(ve.UserMessage(), ve)
	if ve.HasErrors() {
		appErr.WithContext("field", ve.Errors[0].Field)
		appErr.WithContext("fields", ve.Fields())
	}
	return appErr
}
