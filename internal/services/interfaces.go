package services

import (
	"context"
	"io"
	"time"

	"paper2plan/internal/ai"
	"paper2plan/internal/domain"
	"paper2plan/internal/gcal"
	"paper2plan/internal/imposition"
	"paper2plan/internal/planner"
)

// EventInput is a create-or-update request for an event. Recurring picks
// which of DayOfWeek and Date survives normalization.
type EventInput struct {
	ID         string           `json:"id,omitempty"`
	Title      string           `json:"title"`
	Recurring  bool             `json:"recurring"`
	DayOfWeek  *int             `json:"dayOfWeek,omitempty"`
	Date       string           `json:"date,omitempty"`
	Time       string           `json:"time,omitempty"`
	Type       domain.EventType `json:"type,omitempty"`
	CalendarID string           `json:"calendarId,omitempty"`
}

// DropTarget is the calendar cell a task was dragged onto
type DropTarget struct {
	DayOfWeek *int   `json:"dayOfWeek,omitempty"`
	Date      string `json:"date,omitempty"`
}

// ImportResult lists what an image import appended
type ImportResult struct {
	Tasks  []domain.Task          `json:"tasks"`
	Events []domain.CalendarEvent `json:"events"`
}

// ScheduleResult lists what a magic schedule appended
type ScheduleResult struct {
	Added   []domain.CalendarEvent `json:"added"`
	CanUndo bool                   `json:"canUndo"`
}

// ChatResult is the assistant's reply and the events its tool calls added.
// Failed is set when the reply carries an error instead of an answer.
type ChatResult struct {
	Reply      domain.ChatMessage     `json:"reply"`
	Added      []domain.CalendarEvent `json:"added"`
	Transcript []domain.ChatMessage   `json:"transcript"`
	Failed     bool                   `json:"failed,omitempty"`
}

// EventPusher sends events to an external calendar
type EventPusher interface {
	Push(ctx context.Context, events []domain.CalendarEvent, ref time.Time) (gcal.PushResult, error)
}

// TaskService handles the to-do list and its timers
type TaskService interface {
	List() []domain.Task
	Create(ctx context.Context, title string) (*domain.Task, error)
	// Rename deletes the task when title is blank and then returns nil
	Rename(ctx context.Context, id, title string) (*domain.Task, error)
	ToggleComplete(ctx context.Context, id string) (*domain.Task, error)
	ToggleTimer(ctx context.Context, id string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	Tick(ctx context.Context) (int, error)
	Estimate(ctx context.Context, id string) (*domain.Task, error)
}

// EventService handles calendar events
type EventService interface {
	List() []domain.CalendarEvent
	ListVisible() []domain.CalendarEvent
	Save(ctx context.Context, input EventInput) (*domain.CalendarEvent, error)
	Delete(ctx context.Context, id string) error
	DropTask(ctx context.Context, taskID string, target DropTarget) (*domain.CalendarEvent, error)
}

// CalendarService handles calendar visibility and lookup
type CalendarService interface {
	List() domain.Calendars
	ToggleVisibility(ctx context.Context, id string) (*domain.Calendar, error)
	EnsureMagic(ctx context.Context) (domain.Calendars, error)
	Resolve(id string) (domain.Calendar, bool)
}

// ThemeService reads and stores the colour scheme
type ThemeService interface {
	Get() domain.Theme
	Set(ctx context.Context, name string) (domain.Theme, error)
}

// ImportService turns note photos into tasks and events
type ImportService interface {
	Import(ctx context.Context, image string) (*ImportResult, error)
	ImportBytes(ctx context.Context, mimeType string, data []byte) (*ImportResult, error)
}

// ScheduleService runs the magic schedule and its undo
type ScheduleService interface {
	MagicSchedule(ctx context.Context) (*ScheduleResult, error)
	Undo(ctx context.Context) ([]domain.CalendarEvent, error)
	CanUndo() bool
}

// ChatService drives the assistant conversation
type ChatService interface {
	Transcript() []domain.ChatMessage
	Send(ctx context.Context, content string) (*ChatResult, error)
}

// ExportService writes events for other calendar applications
type ExportService interface {
	WriteICS(w io.Writer) (int, error)
	PushGoogle(ctx context.Context, pusher EventPusher) (gcal.PushResult, error)
}

// PrintService renders the printable booklet
type PrintService interface {
	Sheet(side imposition.Side) (imposition.Sheet, error)
	Render(w io.Writer, side imposition.Side) error
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskService     TaskService
	EventService    EventService
	CalendarService CalendarService
	ThemeService    ThemeService
	ImportService   ImportService
	ScheduleService ScheduleService
	ChatService     ChatService
	ExportService   ExportService
	PrintService    PrintService
	Gateway         ai.Service

	store *planner.Store
}
