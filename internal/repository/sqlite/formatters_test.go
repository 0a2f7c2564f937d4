package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{"Valid time", time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC), "2024-01-15T10:30:45Z"},
		{"Time with timezone is stored as UTC", time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("EST", -5*3600)), "2024-06-15T19:30:00Z"},
		{"Time with nanoseconds", time.Date(2024, 3, 10, 9, 15, 30, 123456789, time.UTC), "2024-03-10T09:15:30.123456789Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeForDB(tt.input))
		})
	}
}

func TestParseTimeFromDB(t *testing.T) {
	t.Run("should round trip formatted times", func(t *testing.T) {
		in := time.Date(2024, 3, 10, 9, 15, 30, 500, time.UTC)
		out, err := ParseTimeFromDB(FormatTimeForDB(in))
		require.NoError(t, err)
		assert.True(t, in.Equal(out))
	})

	t.Run("should reject non RFC3339 strings", func(t *testing.T) {
		_, err := ParseTimeFromDB("2024-03-10 09:15:30")
		assert.Error(t, err)
	})
}
