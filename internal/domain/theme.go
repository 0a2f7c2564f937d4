package domain

import "strings"

// Theme is the persisted UI colour scheme
type Theme string

const (
	ThemeLight    Theme = "light"
	ThemeDark     Theme = "dark"
	ThemeMidnight Theme = "midnight"
)

// ParseTheme accepts a case-insensitive theme name
func ParseTheme(s string) (Theme, bool) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark, ThemeMidnight:
		return t, true
	default:
		return "", false
	}
}
