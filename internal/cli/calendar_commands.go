package cli

import (
	"context"

	"paper2plan/internal/errors"
)

// CalendarListCommand handles "calendar list"
type CalendarListCommand struct {
	app *App
}

// NewCalendarListCommand creates a new calendar list handler
func NewCalendarListCommand(app *App) *CalendarListCommand {
	return &CalendarListCommand{app: app}
}

// Execute prints every calendar with its visibility
func (c *CalendarListCommand) Execute(ctx context.Context, args []string) error {
	svc, err := c.app.services()
	if err != nil {
		return err
	}

	for _, cal := range svc.CalendarService.List() {
		state := "shown"
		if !cal.IsVisible {
			state = "hidden"
		}
		c.app.printf("%-10s %-16s %-6s %s\n", cal.ID, cal.Name, cal.Color, state)
	}
	return nil
}

// CalendarToggleCommand handles "calendar toggle"
type CalendarToggleCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewCalendarToggleCommand creates a new calendar toggle handler
func NewCalendarToggleCommand(app *App) *CalendarToggleCommand {
	return &CalendarToggleCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute shows or hides a calendar
func (c *CalendarToggleCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "calendar toggle", "usage: p2p calendar toggle <calendar id>")
	}
	svc, err := c.app.services()
	if err != nil {
		return err
	}

	cal, err := svc.CalendarService.ToggleVisibility(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("toggle calendar", err)
	}
	if cal.IsVisible {
		c.app.printf("Showing calendar: %s\n", cal.Name)
	} else {
		c.app.printf("Hiding calendar: %s\n", cal.Name)
	}
	return nil
}

// ThemeCommand handles "theme"
type ThemeCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewThemeCommand creates a new theme handler
func NewThemeCommand(app *App) *ThemeCommand {
	return &ThemeCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute prints the theme, or stores a new one when a name is given
func (c *ThemeCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errors.NewInvalidInputError("command", "theme", "usage: p2p theme [light|dark|midnight]")
	}
	svc, err := c.app.services()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		c.app.printf("%s\n", svc.ThemeService.Get())
		return nil
	}

	theme, err := svc.ThemeService.Set(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("set theme", err)
	}
	c.app.printf("Theme set to %s\n", theme)
	return nil
}
