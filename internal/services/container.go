package services

import (
	"context"
	"log/slog"

	"paper2plan/internal/ai"
	"paper2plan/internal/export"
	"paper2plan/internal/planner"
	"paper2plan/internal/validation"
)

// NewServiceContainer creates a new service container with all services wired up
func NewServiceContainer(store *planner.Store, gateway ai.Service, validator *validation.Validator, icsOptions export.ICSOptions, logger *slog.Logger) *ServiceContainer {
	calendarService := NewCalendarService(store)

	return &ServiceContainer{
		TaskService:     NewTaskService(store, gateway, validator),
		EventService:    NewEventService(store, validator),
		CalendarService: calendarService,
		ThemeService:    NewThemeService(store),
		ImportService:   NewImportService(store, gateway, validator),
		ScheduleService: NewScheduleService(store, gateway, calendarService),
		ChatService:     NewChatService(store, gateway, validator, logger),
		ExportService:   NewExportService(store, icsOptions),
		PrintService:    NewPrintService(store),
		Gateway:         gateway,
		store:           store,
	}
}

// Refresh picks up planner changes written by another process, such as a
// CLI command run while the server is up
func (c *ServiceContainer) Refresh(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	return c.store.Refresh(ctx)
}
