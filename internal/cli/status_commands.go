package cli

import (
	"context"
	"time"

	"paper2plan/internal/domain"
	"paper2plan/internal/errors"
)

// StatusCommand handles "status"
type StatusCommand struct {
	app *App
}

// NewStatusCommand creates a new status handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{app: app}
}

// Execute prints a one-screen summary of the planner
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	if c.app.planner == nil {
		return errors.NewUnavailableError("planner", "planner is not initialized")
	}

	overview := c.app.planner.Planner.GetOverview()
	stats := overview.Stats

	c.app.printf("Tasks:     %d open, %d done, %d running\n", stats.Total-stats.Completed, stats.Completed, stats.Running)
	c.app.printf("Tracked:   %s\n", stats.TrackedTime)
	c.app.printf("Events:    %d visible\n", len(overview.Events))

	hidden := 0
	for _, cal := range overview.Calendars {
		if !cal.IsVisible {
			hidden++
		}
	}
	c.app.printf("Calendars: %d (%d hidden)\n", len(overview.Calendars), hidden)
	c.app.printf("Theme:     %s\n", overview.Theme)

	provider := overview.Provider.Provider + " (" + overview.Provider.Model + ")"
	if !overview.Provider.Enabled {
		provider += " disabled"
	}
	c.app.printf("AI:        %s\n", provider)
	return nil
}

// WeekCommand handles "week"
type WeekCommand struct {
	app *App

	// Date picks the week; empty means this week
	Date string
}

// NewWeekCommand creates a new week handler
func NewWeekCommand(app *App) *WeekCommand {
	return &WeekCommand{app: app}
}

// Execute prints the Sunday-to-Saturday agenda of visible events
func (c *WeekCommand) Execute(ctx context.Context, args []string) error {
	if c.app.planner == nil {
		return errors.NewUnavailableError("planner", "planner is not initialized")
	}

	day := timeNow()
	if c.Date != "" {
		parsed, err := time.ParseInLocation(domain.DateLayout, c.Date, time.Local)
		if err != nil {
			return errors.NewInvalidInputError("date", c.Date, "expected YYYY-MM-DD")
		}
		day = parsed
	}

	for _, agenda := range c.app.planner.Planner.GetWeek(day) {
		marker := " "
		if agenda.IsToday {
			marker = ">"
		}
		c.app.printf("%s %s %s\n", marker, agenda.Weekday[:3], agenda.Date)
		for _, e := range agenda.Events {
			at := e.Time
			if at == "" {
				at = "TBD"
			}
			c.app.printf("    %-8s %s\n", at, e.Title)
		}
	}
	return nil
}

// ProviderCommand handles "provider"
type ProviderCommand struct {
	app *App
}

// NewProviderCommand creates a new provider handler
func NewProviderCommand(app *App) *ProviderCommand {
	return &ProviderCommand{app: app}
}

// Execute prints the active AI provider. Use --ai-provider and the
// related flags to pick another one for a single command.
func (c *ProviderCommand) Execute(ctx context.Context, args []string) error {
	svc, err := c.app.services()
	if err != nil {
		return err
	}

	info := svc.Gateway.ProviderInfo()
	c.app.printf("Provider: %s\n", info.Provider)
	c.app.printf("Model:    %s\n", info.Model)
	if info.Enabled {
		c.app.printf("Status:   enabled\n")
	} else {
		c.app.printf("Status:   disabled (set AI_API_KEY or pick a local provider)\n")
	}
	return nil
}
