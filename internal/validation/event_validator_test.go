package validation

import (
	"strings"
	"testing"

	"paper2plan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventValidator_ValidateEvent(t *testing.T) {
	validator := NewEventValidator(nil)

	tests := []struct {
		name      string
		event     domain.CalendarEvent
		wantField string
	}{
		{
			name:  "should accept a recurring event",
			event: domain.CalendarEvent{Title: "Yoga", DayOfWeek: domain.IntPtr(2), Time: "07:00", Type: domain.EventTypePersonal},
		},
		{
			name:  "should accept a one-off event",
			event: domain.CalendarEvent{Title: "Dentist", Date: "2025-09-01"},
		},
		{
			name:      "should require a title",
			event:     domain.CalendarEvent{Title: "  "},
			wantField: "title",
		},
		{
			name:      "should cap the title at 100 characters",
			event:     domain.CalendarEvent{Title: strings.Repeat("t", 101)},
			wantField: "title",
		},
		{
			name:      "should cap the time label at 50 characters",
			event:     domain.CalendarEvent{Title: "x", Time: strings.Repeat("9", 51)},
			wantField: "time",
		},
		{
			name:      "should reject day of week 7",
			event:     domain.CalendarEvent{Title: "x", DayOfWeek: domain.IntPtr(7)},
			wantField: "dayOfWeek",
		},
		{
			name:      "should reject malformed dates",
			event:     domain.CalendarEvent{Title: "x", Date: "01/09/2025"},
			wantField: "date",
		},
		{
			name:      "should reject unknown types",
			event:     domain.CalendarEvent{Title: "x", Type: "holiday"},
			wantField: "type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateEvent(tt.event)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ve := err.(*ValidationError)
			assert.Contains(t, ve.Fields(), tt.wantField)
		})
	}
}
