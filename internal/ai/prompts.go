package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"paper2plan/internal/domain"
)

const extractionPrompt = `Analyze this handwritten note. It contains a list of tasks and a schedule.
Extract the "Tasks" into a list.
Extract "Events" or schedule items. If a day is mentioned (e.g., Sunday, Wednesday), map it to a dayOfWeek integer (0=Sunday, 1=Monday, ... 6=Saturday).
If a time is mentioned, include it.
Return a JSON object.`

// scheduleShape is appended for providers without enforced response schemas
const scheduleShape = `Respond with JSON only, no prose, in the shape:
{"newEvents":[{"title":"...","dayOfWeek":1,"time":"09:00","reasoning":"..."}]}`

// schedulePrompt asks for new slots for the pending task titles
func schedulePrompt(pending []string, existing []domain.CalendarEvent, currentDate string, withShape bool) string {
	type slot struct {
		Title string `json:"title"`
		Day   *int   `json:"day"`
		Time  string `json:"time"`
	}
	slots := make([]slot, len(existing))
	for i, e := range existing {
		slots[i] = slot{Title: e.Title, Day: e.DayOfWeek, Time: e.Time}
	}

	var b strings.Builder
	b.WriteString("I have a list of tasks and a current schedule of events.\n")
	b.WriteString("Please act as a productivity assistant and assign the uncompleted tasks to empty time slots in the schedule.\n\n")
	fmt.Fprintf(&b, "Current Date Context: %s\n\n", currentDate)
	fmt.Fprintf(&b, "Uncompleted Tasks:\n%s\n\n", mustJSON(pending))
	fmt.Fprintf(&b, "Current Schedule (Recurring Weekly Events):\n%s\n\n", mustJSON(slots))
	b.WriteString("Rules:\n")
	b.WriteString("1. Distribute tasks across the week (0=Sunday to 6=Saturday).\n")
	b.WriteString("2. Avoid conflicting with existing events.\n")
	b.WriteString("3. Assign reasonable times (e.g., 09:00, 14:00).\n")
	b.WriteString("4. Return a list of NEW events to add. Do not return existing events.\n")
	b.WriteString("5. Use \"dayOfWeek\" for the suggested day.\n")
	if withShape {
		b.WriteString("\n" + scheduleShape + "\n")
	}
	return b.String()
}

// chatContext is the system instruction for the assistant
func chatContext(tasks []domain.Task, events []domain.CalendarEvent, currentDate string, withTools bool) string {
	described := make([]string, len(events))
	for i, e := range events {
		when := e.Date
		if when == "" && e.DayOfWeek != nil {
			when = fmt.Sprintf("Day %d", *e.DayOfWeek)
		}
		described[i] = fmt.Sprintf("%s on %s at %s", e.Title, when, e.Time)
	}

	var b strings.Builder
	b.WriteString("You are a smart and helpful productivity assistant for the \"Paper2Plan\" app.\n")
	fmt.Fprintf(&b, "Current Date: %s\n\n", currentDate)
	b.WriteString("Your Capabilities:\n")
	b.WriteString("1. Answer questions about the user's schedule.\n")
	b.WriteString("2. Help breakdown tasks.\n")
	if withTools {
		b.WriteString("3. ADD EVENTS to the calendar using the \"addCalendarEvent\" tool.\n")
	}
	fmt.Fprintf(&b, "\nCurrent Tasks: %s\n", mustJSON(nonNil(domain.PendingTitles(tasks))))
	fmt.Fprintf(&b, "Current Events: %s\n", mustJSON(described))
	if withTools {
		b.WriteString("\nIf the user asks to schedule something, ALWAYS use the \"addCalendarEvent\" tool.\n")
	}
	return b.String()
}

func estimatePrompt(title string) string {
	return fmt.Sprintf(`Estimate how long this task typically takes. Return ONLY the time duration (e.g. "2 hours", "30 mins", "1-2 days"). Task: %q`, title)
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
