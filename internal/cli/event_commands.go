package cli

import (
	"context"
	"strings"

	"paper2plan/internal/domain"
	"paper2plan/internal/errors"
	"paper2plan/internal/services"
)

// noDay marks an unset --day flag
const noDay = -1

// EventOptions are the flags shared by "event add" and "event edit"
type EventOptions struct {
	DayOfWeek  int
	Date       string
	Time       string
	Type       string
	CalendarID string
}

// apply copies the set options onto input. A day makes the event weekly,
// a date makes it one-off; with neither the current anchor is kept.
func (o EventOptions) apply(input *services.EventInput) {
	if o.DayOfWeek != noDay {
		input.Recurring = true
		input.DayOfWeek = domain.IntPtr(o.DayOfWeek)
		input.Date = ""
	}
	if o.Date != "" {
		input.Recurring = false
		input.Date = o.Date
		input.DayOfWeek = nil
	}
	if o.Time != "" {
		input.Time = o.Time
	}
	if o.Type != "" {
		input.Type = domain.EventType(strings.ToLower(o.Type))
	}
	if o.CalendarID != "" {
		input.CalendarID = o.CalendarID
	}
}

func (o EventOptions) validate() error {
	if o.DayOfWeek != noDay && o.Date != "" {
		return errors.NewInvalidInputError("event", o.Date, "use either --day or --date, not both")
	}
	if o.DayOfWeek != noDay && (o.DayOfWeek < 0 || o.DayOfWeek > 6) {
		return errors.NewInvalidInputError("day", o.DayOfWeek, "must be 0 (Sunday) to 6 (Saturday)")
	}
	if o.Type != "" {
		if _, ok := domain.ParseEventType(o.Type); !ok {
			return errors.NewInvalidInputError("type", o.Type, "must be work, personal, deadline or other")
		}
	}
	return nil
}

// EventAddCommand handles "event add"
type EventAddCommand struct {
	app          *App
	errorHandler *ErrorHandler
	Options      EventOptions
}

// NewEventAddCommand creates a new event add handler
func NewEventAddCommand(app *App) *EventAddCommand {
	return &EventAddCommand{app: app, errorHandler: NewErrorHandler(), Options: EventOptions{DayOfWeek: noDay}}
}

// Execute creates an event. Without --day or --date it lands on today.
func (c *EventAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "event add", "usage: p2p event add \"title\" [--day N | --date YYYY-MM-DD]")
	}
	if err := c.Options.validate(); err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	svc, err := c.app.services()
	if err != nil {
		return err
	}

	input := services.EventInput{Title: strings.Join(args, " ")}
	c.Options.apply(&input)

	event, err := svc.EventService.Save(ctx, input)
	if err != nil {
		return c.errorHandler.Handle("add event", err)
	}
	c.app.printf("Added event: %s\n", formatEvent(*event, svc.CalendarService.List()))
	return nil
}

// EventEditCommand handles "event edit"
type EventEditCommand struct {
	app          *App
	errorHandler *ErrorHandler
	Options      EventOptions
}

// NewEventEditCommand creates a new event edit handler
func NewEventEditCommand(app *App) *EventEditCommand {
	return &EventEditCommand{app: app, errorHandler: NewErrorHandler(), Options: EventOptions{DayOfWeek: noDay}}
}

// Execute updates an event; fields without a flag keep their value and
// a title argument replaces the title
func (c *EventEditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "event edit", "usage: p2p event edit <event> [\"new title\"] [flags]")
	}
	if err := c.Options.validate(); err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	svc, err := c.app.services()
	if err != nil {
		return err
	}
	existing, err := resolveEvent(svc.EventService.List(), args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	input := services.EventInput{
		ID:         existing.ID,
		Title:      existing.Title,
		Recurring:  existing.IsRecurring(),
		DayOfWeek:  existing.DayOfWeek,
		Date:       existing.Date,
		Time:       existing.Time,
		Type:       existing.Type,
		CalendarID: existing.CalendarID,
	}
	if len(args) > 1 {
		input.Title = strings.Join(args[1:], " ")
	}
	c.Options.apply(&input)

	event, err := svc.EventService.Save(ctx, input)
	if err != nil {
		return c.errorHandler.Handle("update event", err)
	}
	c.app.printf("Updated event: %s\n", formatEvent(*event, svc.CalendarService.List()))
	return nil
}

// EventListCommand handles "event list"
type EventListCommand struct {
	app *App

	// All includes events in hidden calendars
	All     bool
	ShowIDs bool
}

// NewEventListCommand creates a new event list handler
func NewEventListCommand(app *App) *EventListCommand {
	return &EventListCommand{app: app}
}

// Execute prints events numbered by their position in the full list, so
// the numbers stay valid for edit and delete when hidden events are skipped
func (c *EventListCommand) Execute(ctx context.Context, args []string) error {
	svc, err := c.app.services()
	if err != nil {
		return err
	}

	calendars := svc.CalendarService.List()
	printed := 0
	for i, e := range svc.EventService.List() {
		if !c.All && !calendars.IsEventVisible(e) {
			continue
		}
		line := formatEvent(e, calendars)
		if c.ShowIDs {
			line += "  " + e.ID
		}
		c.app.printf("%2d. %s\n", i+1, line)
		printed++
	}
	if printed == 0 {
		c.app.printf("No events found\n")
	}
	return nil
}

// EventDeleteCommand handles "event delete"
type EventDeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewEventDeleteCommand creates a new event delete handler
func NewEventDeleteCommand(app *App) *EventDeleteCommand {
	return &EventDeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute deletes an event
func (c *EventDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "event delete", "usage: p2p event delete <event>")
	}
	svc, err := c.app.services()
	if err != nil {
		return err
	}
	event, err := resolveEvent(svc.EventService.List(), args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if err := svc.EventService.Delete(ctx, event.ID); err != nil {
		return c.errorHandler.Handle("delete event", err)
	}
	c.app.printf("Deleted event: %s\n", event.Title)
	return nil
}

// EventDropCommand handles "event drop", the command line version of
// dragging a task onto a calendar cell
type EventDropCommand struct {
	app          *App
	errorHandler *ErrorHandler
	DayOfWeek    int
	Date         string
}

// NewEventDropCommand creates a new event drop handler
func NewEventDropCommand(app *App) *EventDropCommand {
	return &EventDropCommand{app: app, errorHandler: NewErrorHandler(), DayOfWeek: noDay}
}

// Execute schedules a task as a work event on the given day or date
func (c *EventDropCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "event drop", "usage: p2p event drop <task> --day N | --date YYYY-MM-DD")
	}
	if (c.DayOfWeek == noDay) == (c.Date == "") {
		return errors.NewInvalidInputError("target", c.Date, "give exactly one of --day or --date")
	}
	svc, err := c.app.services()
	if err != nil {
		return err
	}
	task, err := resolveTask(svc.TaskService.List(), args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	target := services.DropTarget{Date: c.Date}
	if c.DayOfWeek != noDay {
		target.DayOfWeek = domain.IntPtr(c.DayOfWeek)
	}

	event, err := svc.EventService.DropTask(ctx, task.ID, target)
	if err != nil {
		return c.errorHandler.Handle("schedule task", err)
	}
	c.app.printf("Scheduled: %s\n", formatEvent(*event, svc.CalendarService.List()))
	return nil
}
