package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageValidator_ValidatePayload(t *testing.T) {
	validator := NewImageValidator(nil)
	body := strings.Repeat("A", 200)

	tests := []struct {
		name        string
		image       string
		expectError bool
	}{
		{"should accept bare base64", body, false},
		{"should accept a jpeg data URL", "data:image/jpeg;base64," + body, false},
		{"should accept a webp data URL", "data:image/webp;base64," + body, false},
		{"should reject short payloads", "data:image/png;base64,AAAA", true},
		{"should reject empty payloads", "", true},
		{"should reject gif data URLs", "data:image/gif;base64," + body, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePayload(tt.image)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestImageValidator_ValidateFile(t *testing.T) {
	validator := NewImageValidator(nil)

	assert.NoError(t, validator.ValidateFile("image/PNG", 1024))
	assert.NoError(t, validator.ValidateFile("image/jpg", 10*1024*1024))
	assert.Error(t, validator.ValidateFile("image/png", 10*1024*1024+1))
	assert.Error(t, validator.ValidateFile("application/pdf", 10))
}

func TestSplitDataURL(t *testing.T) {
	mime, data := SplitDataURL("data:image/png;base64,QUJD")
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, "QUJD", data)

	mime, data = SplitDataURL("QUJD")
	assert.Empty(t, mime)
	assert.Equal(t, "QUJD", data)
}
