package domain

import (
	"strings"
	"time"
)

// DateLayout is the wire format of one-off event dates
const DateLayout = "2006-01-02"

// EventType classifies a calendar event
type EventType string

const (
	EventTypeWork     EventType = "work"
	EventTypePersonal EventType = "personal"
	EventTypeDeadline EventType = "deadline"
	EventTypeOther    EventType = "other"
)

// EventTypes lists every accepted event type
var EventTypes = []EventType{EventTypeWork, EventTypePersonal, EventTypeDeadline, EventTypeOther}

// ParseEventType accepts a case-insensitive event type name
func ParseEventType(s string) (EventType, bool) {
	candidate := EventType(strings.ToLower(strings.TrimSpace(s)))
	for _, et := range EventTypes {
		if et == candidate {
			return et, true
		}
	}
	return "", false
}

// CalendarEvent is either recurring weekly (DayOfWeek set) or a one-off
// on Date. A saved event always carries exactly one of the two.
type CalendarEvent struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	DayOfWeek  *int      `json:"dayOfWeek,omitempty"`
	Date       string    `json:"date,omitempty"`
	Time       string    `json:"time,omitempty"`
	Type       EventType `json:"type"`
	CalendarID string    `json:"calendarId"`
	IsMagic    bool      `json:"isMagic,omitempty"`
}

// IntPtr returns a pointer to a copy of v
func IntPtr(v int) *int {
	return &v
}

// IsRecurring reports whether the event repeats weekly
func (e CalendarEvent) IsRecurring() bool {
	return e.DayOfWeek != nil
}

// HasSingleAnchor reports whether exactly one of DayOfWeek and Date is set
func (e CalendarEvent) HasSingleAnchor() bool {
	return (e.DayOfWeek != nil) != (e.Date != "")
}

// Normalize applies the save rules for an explicit recurrence choice.
// Recurring drops Date and defaults DayOfWeek to Sunday; one-off drops
// DayOfWeek and defaults Date to today.
func (e CalendarEvent) Normalize(recurring bool, today time.Time) CalendarEvent {
	if recurring {
		e.Date = ""
		dow := 0
		if e.DayOfWeek != nil {
			dow = wrapWeekday(*e.DayOfWeek)
		}
		e.DayOfWeek = &dow
		return e
	}

	e.DayOfWeek = nil
	if e.Date == "" {
		e.Date = today.Format(DateLayout)
	}
	return e
}

// NormalizeInferred is Normalize for paths that do not state recurrence:
// a date makes the event one-off, otherwise it recurs.
func (e CalendarEvent) NormalizeInferred(today time.Time) CalendarEvent {
	return e.Normalize(e.Date == "", today)
}

// WithDefaultType fills an empty type
func (e CalendarEvent) WithDefaultType(t EventType) CalendarEvent {
	if e.Type == "" {
		e.Type = t
	}
	return e
}

// OccursOn reports whether the event falls on day.
func (e CalendarEvent) OccursOn(day time.Time) bool {
	if e.DayOfWeek != nil {
		return *e.DayOfWeek == int(day.Weekday())
	}
	return e.Date == day.Format(DateLayout)
}

// Weekday returns the weekday the event lands on. One-off events with an
// unparsable date report false.
func (e CalendarEvent) Weekday() (time.Weekday, bool) {
	if e.DayOfWeek != nil {
		return time.Weekday(*e.DayOfWeek), true
	}
	d, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return 0, false
	}
	return d.Weekday(), true
}

// CloneEvents returns a deep copy of events
func CloneEvents(events []CalendarEvent) []CalendarEvent {
	if events == nil {
		return nil
	}
	out := make([]CalendarEvent, len(events))
	for i, e := range events {
		if e.DayOfWeek != nil {
			e.DayOfWeek = IntPtr(*e.DayOfWeek)
		}
		out[i] = e
	}
	return out
}

func wrapWeekday(d int) int {
	return ((d % 7) + 7) % 7
}
