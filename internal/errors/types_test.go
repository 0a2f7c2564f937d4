package errors

import (
	"errors"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		expected  string
	}{
		{"Validation", ErrorTypeValidation, "validation"},
		{"NotFound", ErrorTypeNotFound, "not_found"},
		{"Database", ErrorTypeDatabase, "database"},
		{"InvalidInput", ErrorTypeInvalidInput, "invalid_input"},
		{"Timeout", ErrorTypeTimeout, "timeout"},
		{"Conflict", ErrorTypeConflict, "conflict"},
		{"Unavailable", ErrorTypeUnavailable, "unavailable"},
		{"Upstream", ErrorTypeUpstream, "upstream"},
		{"Unknown", ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.errorType.String(); got != tt.expected {
				t.Errorf("ErrorType.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name:     "Error without cause",
			appError: &AppError{Type: ErrorTypeConflict, Message: "nothing to undo"},
			expected: "conflict: nothing to undo",
		},
		{
			name: "Error with cause",
			appError: &AppError{
				Type:    ErrorTypeUpstream,
				Message: "gemini request failed",
				Cause:   errors.New("quota exceeded"),
			},
			expected: "upstream: gemini request failed (caused by: quota exceeded)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appError.Error(); got != tt.expected {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	appError := &AppError{Type: ErrorTypeDatabase, Message: "write failed", Cause: cause}

	if appError.Unwrap() != cause {
		t.Errorf("AppError.Unwrap() = %v, want %v", appError.Unwrap(), cause)
	}
	if !errors.Is(appError, cause) {
		t.Errorf("errors.Is should find the cause through Unwrap")
	}
}

func TestAppError_Is(t *testing.T) {
	a := NewConflictError("undo", "no snapshot")
	b := NewConflictError("schedule", "no tasks")
	c := NewUnavailableError("ai", "disabled")

	if !errors.Is(a, b) {
		t.Errorf("conflict errors with the same code should match")
	}
	if errors.Is(a, c) {
		t.Errorf("errors of different types should not match")
	}
	if a.Is(errors.New("plain")) {
		t.Errorf("plain errors should never match")
	}
}

func TestAppError_IsType(t *testing.T) {
	err := NewUpstreamError("openai", errors.New("500"))

	if !err.IsType(ErrorTypeUpstream) {
		t.Errorf("IsType(ErrorTypeUpstream) = false, want true")
	}
	if err.IsType(ErrorTypeUnavailable) {
		t.Errorf("IsType(ErrorTypeUnavailable) = true, want false")
	}
}

func TestAppError_Context(t *testing.T) {
	err := &AppError{Type: ErrorTypeValidation, Message: "bad"}

	if _, ok := err.GetContext("field"); ok {
		t.Errorf("GetContext on nil map should report missing")
	}

	err.WithContext("field", "title").WithContext("limit", 100)

	if v, ok := err.GetContext("field"); !ok || v != "title" {
		t.Errorf("GetContext(field) = %v, %v", v, ok)
	}
	if v, ok := err.GetContext("limit"); !ok || v != 100 {
		t.Errorf("GetContext(limit) = %v, %v", v, ok)
	}
}
