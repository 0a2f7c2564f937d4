package validation

import (
	"fmt"

	"paper2plan/internal/domain"
)

// ChatValidator checks assistant transcripts
type ChatValidator struct {
	validator *Validator
}

// NewChatValidator creates a new chat validator
func NewChatValidator(v *Validator) *ChatValidator {
	if v == nil {
		v = NewValidator()
	}
	return &ChatValidator{validator: v}
}

// ValidateMessages requires at least one message, each with a known role and content
func (cv *ChatValidator) ValidateMessages(messages []domain.ChatMessage) error {
	validationError := NewValidationError()
	if len(messages) == 0 {
		validationError.AddRequiredError("messages")
		return validationError
	}

	for i, m := range messages {
		field := fmt.Sprintf("messages[%d]", i)
		if m.Role != domain.RoleUser && m.Role != domain.RoleAssistant {
			validationError.AddInvalidValueError(field+".role", m.Role, "must be user or assistant")
		}
		if !cv.validator.IsNonEmptyString(m.Content) {
			validationError.AddRequiredError(field + ".content")
		}
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateInput checks a single user turn
func (cv *ChatValidator) ValidateInput(content string) error {
	if !cv.validator.IsNonEmptyString(content) {
		validationError := NewValidationError()
		validationError.AddRequiredError("message")
		return validationError
	}
	return nil
}
