package validation

import (
	"strings"
	"testing"

	"paper2plan/internal/config"
)

func TestValidator_IsNonEmptyString(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"Empty string", "", false},
		{"Whitespace only", "   ", false},
		{"Tab and newline", "\t\n", false},
		{"Valid string", "hello", true},
		{"String with leading/trailing spaces", "  hello  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validator.IsNonEmptyString(tt.input); got != tt.expected {
				t.Errorf("IsNonEmptyString(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidStringLength(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		input    string
		min, max int
		expected bool
	}{
		{"Within range", "hello", 1, 10, true},
		{"Too long", strings.Repeat("a", 11), 1, 10, false},
		{"Counts runes not bytes", strings.Repeat("é", 10), 1, 10, true},
		{"Ignores surrounding whitespace", "  abc  ", 1, 3, true},
		{"Empty allowed with zero min", "", 0, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validator.IsValidStringLength(tt.input, tt.min, tt.max); got != tt.expected {
				t.Errorf("IsValidStringLength(%q, %d, %d) = %v, expected %v", tt.input, tt.min, tt.max, got, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidDayOfWeek(t *testing.T) {
	validator := NewValidator()
	for d := 0; d <= 6; d++ {
		if !validator.IsValidDayOfWeek(d) {
			t.Errorf("IsValidDayOfWeek(%d) = false", d)
		}
	}
	if validator.IsValidDayOfWeek(-1) || validator.IsValidDayOfWeek(7) {
		t.Errorf("IsValidDayOfWeek should reject values outside 0..6")
	}
}

func TestValidator_IsValidDate(t *testing.T) {
	validator := NewValidator()
	if !validator.IsValidDate("2025-02-28") {
		t.Errorf("IsValidDate should accept YYYY-MM-DD")
	}
	for _, bad := range []string{"2025-02-30", "28/02/2025", "tomorrow"} {
		if validator.IsValidDate(bad) {
			t.Errorf("IsValidDate(%q) = true, expected false", bad)
		}
	}
}

func TestValidator_ConfiguredLimits(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.TaskTitleMaxLength = 5
	tv := NewTaskValidator(NewValidatorWithConfig(cfg))

	if err := tv.ValidateTitle("abcde"); err != nil {
		t.Errorf("ValidateTitle at the limit should pass: %v", err)
	}
	if err := tv.ValidateTitle("abcdef"); err == nil {
		t.Errorf("ValidateTitle over the configured limit should fail")
	}
}
