package domain

// Well-known calendar ids
const (
	PersonalCalendarID = "personal"
	TeamCalendarID     = "team"
	MagicCalendarID    = "magic"
)

// Calendar groups events under a colour and a visibility switch
type Calendar struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsVisible bool   `json:"isVisible"`
}

// MagicCalendar is the calendar AI-scheduled events are filed under
func MagicCalendar() Calendar {
	return Calendar{ID: MagicCalendarID, Name: "Magic ✨", Color: "rose", IsVisible: true}
}

// Calendars is an ordered calendar list; order matters for fallbacks.
type Calendars []Calendar

// Find returns the calendar with the given id
func (cs Calendars) Find(id string) (Calendar, bool) {
	for _, c := range cs {
		if c.ID == id {
			return c, true
		}
	}
	return Calendar{}, false
}

// Resolve returns the calendar an event is displayed under. Unknown ids
// fall back to the first calendar. False only when the list is empty.
func (cs Calendars) Resolve(id string) (Calendar, bool) {
	if c, ok := cs.Find(id); ok {
		return c, true
	}
	if len(cs) == 0 {
		return Calendar{}, false
	}
	return cs[0], true
}

// DefaultForNew picks the calendar for user-created events: the first
// visible one, else the first one.
func (cs Calendars) DefaultForNew() (Calendar, bool) {
	for _, c := range cs {
		if c.IsVisible {
			return c, true
		}
	}
	if len(cs) == 0 {
		return Calendar{}, false
	}
	return cs[0], true
}

// IsEventVisible reports whether the calendar of an event exists and is
// shown. Events on deleted calendars are hidden even though Resolve still
// gives them a calendar to be styled with.
func (cs Calendars) IsEventVisible(e CalendarEvent) bool {
	c, ok := cs.Find(e.CalendarID)
	return ok && c.IsVisible
}

// VisibleEvents filters events down to those on visible calendars
func (cs Calendars) VisibleEvents(events []CalendarEvent) []CalendarEvent {
	visible := make([]CalendarEvent, 0, len(events))
	for _, e := range events {
		if cs.IsEventVisible(e) {
			visible = append(visible, e)
		}
	}
	return visible
}

// EnsureMagic appends the magic calendar when missing
func (cs Calendars) EnsureMagic() (Calendars, bool) {
	if _, ok := cs.Find(MagicCalendarID); ok {
		return cs, false
	}
	return append(cs, MagicCalendar()), true
}
