package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"paper2plan/internal/api"
	"paper2plan/internal/domain"
	"paper2plan/internal/errors"
	"paper2plan/internal/services"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App represents the main CLI application. The planner is attached once
// configuration has been loaded, before any command runs.
type App struct {
	planner  *api.App
	out      io.Writer
	registry *CommandRegistry
}

// NewApp creates a new CLI application writing to out
func NewApp(planner *api.App, out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	app := &App{
		planner: planner,
		out:     out,
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Attach sets the planner the commands operate on
func (a *App) Attach(planner *api.App) {
	a.planner = planner
}

// Planner returns the attached planner
func (a *App) Planner() *api.App {
	return a.planner
}

// Registry returns the command handlers
func (a *App) Registry() *CommandRegistry {
	return a.registry
}

// Run executes the named command with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}
	return a.registry.Execute(ctx, args[0], args[1:])
}

// services returns the service container of the attached planner
func (a *App) services() (*services.ServiceContainer, error) {
	if a.planner == nil || a.planner.Services == nil {
		return nil, errors.NewUnavailableError("planner", "planner is not initialized")
	}
	return a.planner.Services, nil
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// resolveTask finds a task by its list number, exact id or unique id prefix
func resolveTask(tasks []domain.Task, ref string) (domain.Task, error) {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	i, err := resolveRef("task", ids, ref)
	if err != nil {
		return domain.Task{}, err
	}
	return tasks[i], nil
}

// resolveEvent finds an event by its list number, exact id or unique id prefix
func resolveEvent(events []domain.CalendarEvent, ref string) (domain.CalendarEvent, error) {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	i, err := resolveRef("event", ids, ref)
	if err != nil {
		return domain.CalendarEvent{}, err
	}
	return events[i], nil
}

func resolveRef(resource string, ids []string, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	for i, id := range ids {
		if id == ref {
			return i, nil
		}
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(ids) {
			return n - 1, nil
		}
		return 0, errors.NewNotFoundError(resource, ref)
	}

	match := -1
	for i, id := range ids {
		if ref != "" && strings.HasPrefix(id, ref) {
			if match >= 0 {
				return 0, errors.NewInvalidInputError(resource, ref, "matches more than one "+resource)
			}
			match = i
		}
	}
	if match < 0 {
		return 0, errors.NewNotFoundError(resource, ref)
	}
	return match, nil
}

// formatEvent renders one event line: when, time, title and calendar
func formatEvent(e domain.CalendarEvent, calendars domain.Calendars) string {
	when := e.Date
	if e.DayOfWeek != nil {
		when = "every " + time.Weekday(*e.DayOfWeek).String()[:3]
	}
	at := e.Time
	if at == "" {
		at = "TBD"
	}

	calendar := e.CalendarID
	if c, ok := calendars.Resolve(e.CalendarID); ok {
		calendar = c.Name
	}

	line := fmt.Sprintf("%-12s %-8s %s [%s, %s]", when, at, e.Title, e.Type, calendar)
	if e.IsMagic {
		line += " *"
	}
	return line
}

// formatTask renders one task line with its checkbox and tracked time
func formatTask(t domain.Task) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	line := fmt.Sprintf("%s %s (%s)", box, t.Title, domain.FormatElapsed(t.ActualTime))
	if t.IsTimerRunning {
		line += " running"
	}
	if t.EstimatedTime != "" {
		line += " est. " + t.EstimatedTime
	}
	return line
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
