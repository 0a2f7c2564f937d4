// Package export renders planner events for other calendar applications.
package export

import (
	"fmt"
	"io"
	"time"

	"paper2plan/internal/config"
	"paper2plan/internal/domain"

	ics "github.com/arran4/golang-ical"
)

const floatingLayout = "20060102T150405"

// ICSOptions controls iCalendar output
type ICSOptions struct {
	ProductID   string
	DefaultHour int
}

// OptionsFromConfig reads ICSOptions from application configuration
func OptionsFromConfig(cfg config.ExportConfig) ICSOptions {
	return ICSOptions{ProductID: cfg.ProductID, DefaultHour: cfg.DefaultHour}
}

// NextOccurrence returns the first date on or after ref that falls on dow.
// ref itself counts when it is already that weekday.
func NextOccurrence(dow int, ref time.Time) time.Time {
	offset := ((dow%7+7)%7 + 7 - int(ref.Weekday())) % 7
	y, m, d := ref.Date()
	return time.Date(y, m, d+offset, 0, 0, 0, 0, ref.Location())
}

// EventDate returns the calendar day an event is exported on: its own date
// for one-off events, the next occurrence from ref for weekly ones.
func EventDate(e domain.CalendarEvent, ref time.Time) (time.Time, bool) {
	if e.Date != "" {
		d, err := time.ParseInLocation(domain.DateLayout, e.Date, ref.Location())
		if err != nil {
			return time.Time{}, false
		}
		return d, true
	}
	if e.DayOfWeek != nil {
		return NextOccurrence(*e.DayOfWeek, ref), true
	}
	return time.Time{}, false
}

// BuildCalendar turns events into one VEVENT each. Start and end share a
// floating local time at the default hour. Events without a usable date
// are skipped.
func BuildCalendar(events []domain.CalendarEvent, ref time.Time, opts ICSOptions) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetProductId(opts.ProductID)

	for _, e := range events {
		day, ok := EventDate(e, ref)
		if !ok {
			continue
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), opts.DefaultHour, 0, 0, 0, day.Location()).Format(floatingLayout)

		vevent := cal.AddEvent(e.ID + "@paper2plan")
		vevent.SetDtStampTime(ref.UTC())
		vevent.SetSummary(e.Title)
		vevent.SetProperty(ics.ComponentPropertyDtStart, start)
		vevent.SetProperty(ics.ComponentPropertyDtEnd, start)
		vevent.SetDescription(fmt.Sprintf("%s event - %s", e.Type, e.Time))
	}
	return cal
}

// WriteICS writes the serialized calendar to w
func WriteICS(w io.Writer, events []domain.CalendarEvent, ref time.Time, opts ICSOptions) error {
	_, err := io.WriteString(w, BuildCalendar(events, ref, opts).Serialize())
	return err
}
