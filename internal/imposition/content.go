package imposition

import (
	"strings"

	"paper2plan/internal/domain"
)

const (
	monthCells     = 35
	checklistLines = 12
	habitRows      = 8
	priorityCount  = 3
)

var (
	dayNames   = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	habitDays  = []string{"M", "T", "W", "T", "F", "S", "S"}
	priorities = func() []int {
		n := make([]int, priorityCount)
		for i := range n {
			n[i] = i + 1
		}
		return n
	}()
)

// MonthCell is one square of the month-at-a-glance grid
type MonthCell struct {
	DayNum    int
	HasEvents bool
}

// EventLine is one event under a weekday column
type EventLine struct {
	Time  string
	Title string
}

// DayColumn lists a weekday's events
type DayColumn struct {
	Name   string
	Events []EventLine
}

// ChecklistLine is a task, or a blank line when Title is empty
type ChecklistLine struct {
	Title string
}

// PageContent is everything one page needs to render
type PageContent struct {
	Page        Page
	Number      int
	Position    Position
	Rotated     bool
	Month       string
	DayInitials []string
	Cells       []MonthCell
	Priorities  []int
	Days        []DayColumn
	HabitDays   []string
	HabitRows   []int
	Checklist   []ChecklistLine
}

// Sheet is one printable side
type Sheet struct {
	Side         Side
	Instructions string
	Pages        []PageContent
}

// Build fills the layout of a side with planner content. events should
// already be filtered to visible calendars.
func Build(side Side, month string, events []domain.CalendarEvent, tasks []domain.Task) (Sheet, error) {
	quadrants, err := Layout(side)
	if err != nil {
		return Sheet{}, err
	}

	byDay := eventsByWeekday(events)
	sheet := Sheet{Side: side, Instructions: side.Instructions()}
	for _, q := range quadrants {
		pc := PageContent{Page: q.Page, Number: int(q.Page), Position: q.Position, Rotated: q.Rotated, Month: month}

		switch q.Page {
		case PageMonth:
			pc.DayInitials = initials(dayNames)
			pc.Cells = MonthGrid(byDay)
		case PagePriorities:
			pc.Priorities = priorities
		case PageWeeks12, PageWeeks34:
			pc.Days = weekColumns(byDay)
		case PageHabits:
			pc.HabitDays = habitDays
			pc.HabitRows = make([]int, habitRows)
		case PageChecklist:
			pc.Checklist = Checklist(tasks)
		}
		sheet.Pages = append(sheet.Pages, pc)
	}
	return sheet, nil
}

// MonthGrid is a fixed five-week grid. Day numbers run 1..30 and wrap;
// each cell is marked when any event falls on its column's weekday.
func MonthGrid(byDay map[int][]domain.CalendarEvent) []MonthCell {
	cells := make([]MonthCell, monthCells)
	for i := range cells {
		cells[i] = MonthCell{DayNum: (i % 30) + 1, HasEvents: len(byDay[i%7]) > 0}
	}
	return cells
}

// Checklist takes the first twelve tasks and pads with blank lines
func Checklist(tasks []domain.Task) []ChecklistLine {
	lines := make([]ChecklistLine, 0, checklistLines)
	for i := 0; i < len(tasks) && i < checklistLines; i++ {
		lines = append(lines, ChecklistLine{Title: tasks[i].Title})
	}
	for len(lines) < checklistLines {
		lines = append(lines, ChecklistLine{})
	}
	return lines
}

func weekColumns(byDay map[int][]domain.CalendarEvent) []DayColumn {
	cols := make([]DayColumn, len(dayNames))
	for i, name := range dayNames {
		cols[i] = DayColumn{Name: name}
		for _, e := range byDay[i] {
			cols[i].Events = append(cols[i].Events, EventLine{Time: shortTime(e.Time), Title: e.Title})
		}
	}
	return cols
}

func eventsByWeekday(events []domain.CalendarEvent) map[int][]domain.CalendarEvent {
	byDay := make(map[int][]domain.CalendarEvent)
	for _, e := range events {
		if wd, ok := e.Weekday(); ok {
			byDay[int(wd)] = append(byDay[int(wd)], e)
		}
	}
	return byDay
}

// shortTime keeps the first word of a time label; "2 PM" prints as "2"
func shortTime(t string) string {
	if fields := strings.Fields(t); len(fields) > 0 {
		return fields[0]
	}
	return "•"
}

func initials(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n[:1]
	}
	return out
}
