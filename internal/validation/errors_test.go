package validation

import (
	"errors"
	"fmt"
	"testing"

	apperrors "paper2plan/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Messages(t *testing.T) {
	tests := []struct {
		name     string
		build    func(ve *ValidationError)
		wantType ValidationErrorType
		want     string
	}{
		{"required", func(ve *ValidationError) { ve.AddRequiredError("title") }, ErrorTypeRequired, "title is required"},
		{"format", func(ve *ValidationError) { ve.AddInvalidFormatError("date", "2025-13-01", "YYYY-MM-DD") }, ErrorTypeInvalidFormat, "date must look like YYYY-MM-DD"},
		{"length window", func(ve *ValidationError) { ve.AddInvalidLengthError("taskTitle", "", 1, 500) }, ErrorTypeInvalidLength, "taskTitle must be 1 to 500 characters"},
		{"length minimum", func(ve *ValidationError) { ve.AddInvalidLengthError("image", "data:", 10, 0) }, ErrorTypeInvalidLength, "image must be at least 10 characters"},
		{"length maximum", func(ve *ValidationError) { ve.AddInvalidLengthError("time", "x", 0, 20) }, ErrorTypeInvalidLength, "time must be at most 20 characters"},
		{"value", func(ve *ValidationError) { ve.AddInvalidValueError("type", "meeting", "must be one of work, personal, deadline, other") }, ErrorTypeInvalidValue, "type: must be one of work, personal, deadline, other"},
		{"range", func(ve *ValidationError) { ve.AddInvalidRangeError("dayOfWeek", 7, "must be between 0 (Sunday) and 6 (Saturday)") }, ErrorTypeInvalidRange, "dayOfWeek must be between 0 (Sunday) and 6 (Saturday)"},
	}

	for _, tt := range tests {
		t.Run("should describe a "+tt.name+" error", func(t *testing.T) {
			ve := NewValidationError()
			tt.build(ve)

			require.Len(t, ve.Errors, 1)
			assert.Equal(t, tt.wantType, ve.Errors[0].Type)
			assert.Equal(t, tt.want, ve.UserMessage())
		})
	}
}

func TestValidationError_Collects(t *testing.T) {
	t.Run("should start empty", func(t *testing.T) {
		ve := NewValidationError()
		assert.False(t, ve.HasErrors())
		assert.NotNil(t, ve.Errors)
		assert.Equal(t, "invalid request", ve.Error())
		assert.Equal(t, "Invalid request", ve.UserMessage())
	})

	t.Run("should report every broken rule of an event", func(t *testing.T) {
		ve := NewValidationError()
		ve.AddRequiredError("title")
		ve.AddInvalidRangeError("dayOfWeek", 9, "must be between 0 (Sunday) and 6 (Saturday)")

		assert.True(t, ve.HasErrors())
		assert.Equal(t, []string{"title", "dayOfWeek"}, ve.Fields())
		assert.Equal(t, "invalid request: title: title is required; dayOfWeek: dayOfWeek must be between 0 (Sunday) and 6 (Saturday)", ve.Error())
		assert.Equal(t, "Please fix the following:\n- title is required\n- dayOfWeek must be between 0 (Sunday) and 6 (Saturday)", ve.UserMessage())
	})
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("message")

	assert.True(t, IsValidationError(ve))
	assert.True(t, IsValidationError(fmt.Errorf("send chat: %w", ve)))
	assert.False(t, IsValidationError(&FieldError{Field: "message", Message: "message is required"}))
}

func TestToAppError(t *testing.T) {
	t.Run("should lift field errors into a validation app error", func(t *testing.T) {
		ve := NewValidationError()
		ve.AddRequiredError("title")
		ve.AddInvalidLengthError("time", "a very long time", 0, 10)

		appErr, ok := apperrors.AsAppError(ToAppError(ve))
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
		assert.Contains(t, appErr.Message, "- title is required")

		field, _ := appErr.GetContext("field")
		assert.Equal(t, "title", field)
		fields, _ := appErr.GetContext("fields")
		assert.Equal(t, []string{"title", "time"}, fields)
		assert.True(t, IsValidationError(appErr))
	})

	t.Run("should pass other errors through", func(t *testing.T) {
		plain := errors.New("boom")
		assert.Same(t, plain, ToAppError(plain))
	})
}
