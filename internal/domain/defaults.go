package domain

// DefaultTasks is the task list of a fresh install
func DefaultTasks() []Task {
	return []Task{
		{ID: "1", Title: "Review project requirements"},
		{ID: "2", Title: "Prepare presentation slides"},
		{ID: "3", Title: "Schedule team meeting"},
	}
}

// DefaultEvents is the event list of a fresh install
func DefaultEvents() []CalendarEvent {
	return []CalendarEvent{
		{ID: "1", Title: "Team Standup", DayOfWeek: IntPtr(1), Type: EventTypeWork, Time: "09:00", CalendarID: PersonalCalendarID},
		{ID: "2", Title: "Project Review", DayOfWeek: IntPtr(3), Type: EventTypeWork, Time: "14:00", CalendarID: TeamCalendarID},
		{ID: "3", Title: "Weekly Planning", DayOfWeek: IntPtr(5), Type: EventTypeOther, Time: "10:00", CalendarID: PersonalCalendarID},
	}
}

// DefaultCalendars is the calendar list of a fresh install
func DefaultCalendars() Calendars {
	return Calendars{
		{ID: PersonalCalendarID, Name: "Personal", Color: "indigo", IsVisible: true},
		{ID: TeamCalendarID, Name: "Team", Color: "teal", IsVisible: true},
		MagicCalendar(),
	}
}

// DefaultTheme is the theme of a fresh install
const DefaultTheme = ThemeLight
