package validation

import (
	"testing"

	"paper2plan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatValidator_ValidateMessages(t *testing.T) {
	validator := NewChatValidator(nil)

	t.Run("should require at least one message", func(t *testing.T) {
		assert.Error(t, validator.ValidateMessages(nil))
	})

	t.Run("should accept a normal transcript", func(t *testing.T) {
		err := validator.ValidateMessages([]domain.ChatMessage{
			domain.Greeting(),
			{ID: "1", Role: domain.RoleUser, Content: "Plan my week"},
		})
		assert.NoError(t, err)
	})

	t.Run("should reject unknown roles and empty content", func(t *testing.T) {
		err := validator.ValidateMessages([]domain.ChatMessage{
			{ID: "1", Role: "system", Content: ""},
		})
		require.Error(t, err)
		ve := err.(*ValidationError)
		assert.Len(t, ve.Errors, 2)
	})
}

func TestChatValidator_ValidateInput(t *testing.T) {
	validator := NewChatValidator(nil)
	assert.NoError(t, validator.ValidateInput("hi"))
	assert.Error(t, validator.ValidateInput("   "))
}
