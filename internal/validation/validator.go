package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"paper2plan/internal/config"
	"paper2plan/internal/domain"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{config: nil} // use defaults
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if the trimmed rune count is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidDayOfWeek checks for 0 (Sunday) through 6 (Saturday)
func (v *Validator) IsValidDayOfWeek(d int) bool {
	return d >= 0 && d <= 6
}

// IsValidDate checks for a YYYY-MM-DD calendar date
func (v *Validator) IsValidDate(s string) bool {
	_, err := time.Parse(domain.DateLayout, s)
	return err == nil
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

func (v *Validator) taskTitleMax() int {
	if v.config != nil {
		return v.config.Validation.TaskTitleMaxLength
	}
	return 200
}

func (v *Validator) eventTitleMax() int {
	if v.config != nil {
		return v.config.Validation.EventTitleMaxLength
	}
	return 100
}

func (v *Validator) eventTimeMax() int {
	if v.config != nil {
		return v.config.Validation.EventTimeMaxLength
	}
	return 50
}

func (v *Validator) maxImageBytes() int64 {
	if v.config != nil {
		return v.config.Validation.MaxImageBytes
	}
	return 10 * 1024 * 1024
}
