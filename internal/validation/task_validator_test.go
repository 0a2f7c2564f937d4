package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskValidator_ValidateTitle(t *testing.T) {
	validator := NewTaskValidator(nil)

	tests := []struct {
		name        string
		input       string
		expectError bool
		errorType   ValidationErrorType
	}{
		{"Valid title", "Buy groceries", false, ""},
		{"Empty title", "", true, ErrorTypeRequired},
		{"Whitespace only", "   ", true, ErrorTypeRequired},
		{"Title at limit", strings.Repeat("a", 200), false, ""},
		{"Title over limit", strings.Repeat("a", 201), true, ErrorTypeInvalidLength},
		{"Symbols are allowed", "Pay bill @ 5pm #home", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTitle(tt.input)
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ve, ok := err.(*ValidationError)
			require.True(t, ok)
			require.NotEmpty(t, ve.Errors)
			assert.Equal(t, tt.errorType, ve.Errors[0].Type)
			assert.Equal(t, "title", ve.Errors[0].Field)
		})
	}
}

func TestTaskValidator_GetValidTitle(t *testing.T) {
	validator := NewTaskValidator(nil)

	title, err := validator.GetValidTitle("  Stretch  ")
	require.NoError(t, err)
	assert.Equal(t, "Stretch", title)

	_, err = validator.GetValidTitle(" ")
	assert.Error(t, err)
}

func TestTaskValidator_ValidateEstimateTitle(t *testing.T) {
	validator := NewTaskValidator(nil)

	assert.NoError(t, validator.ValidateEstimateTitle("Write quarterly report"))
	assert.Error(t, validator.ValidateEstimateTitle(""))
	assert.NoError(t, validator.ValidateEstimateTitle(strings.Repeat("x", 500)))
	assert.Error(t, validator.ValidateEstimateTitle(strings.Repeat("x", 501)))
}
