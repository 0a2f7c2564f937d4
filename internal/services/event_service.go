package services

import (
	"context"
	"strings"

	"paper2plan/internal/domain"
	apperrors "paper2plan/internal/errors"
	"paper2plan/internal/logging"
	"paper2plan/internal/planner"
	"paper2plan/internal/validation"
)

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	store          *planner.Store
	validator      *validation.Validator
	eventValidator *validation.EventValidator
}

// NewEventService creates a new event service
func NewEventService(store *planner.Store, validator *validation.Validator) EventService {
	if validator == nil {
		validator = validation.NewValidator()
	}
	return &eventServiceImpl{
		store:          store,
		validator:      validator,
		eventValidator: validation.NewEventValidator(validator),
	}
}

func (s *eventServiceImpl) List() []domain.CalendarEvent {
	return s.store.Events()
}

func (s *eventServiceImpl) ListVisible() []domain.CalendarEvent {
	return s.store.Calendars().VisibleEvents(s.store.Events())
}

// Save creates the event when input.ID is empty and replaces it otherwise
func (s *eventServiceImpl) Save(ctx context.Context, input EventInput) (*domain.CalendarEvent, error) {
	event := domain.CalendarEvent{
		ID:         input.ID,
		Title:      strings.TrimSpace(input.Title),
		DayOfWeek:  input.DayOfWeek,
		Date:       input.Date,
		Time:       strings.TrimSpace(input.Time),
		Type:       input.Type,
		CalendarID: input.CalendarID,
	}
	if err := s.eventValidator.ValidateEvent(event); err != nil {
		return nil, validation.ToAppError(err)
	}

	if event.Type != "" {
		event.Type, _ = domain.ParseEventType(string(event.Type))
	}
	event = event.Normalize(input.Recurring, timeNow()).WithDefaultType(domain.EventTypeOther)

	if event.CalendarID == "" {
		if c, ok := s.store.Calendars().DefaultForNew(); ok {
			event.CalendarID = c.ID
		}
	}

	creating := event.ID == ""
	if creating {
		event.ID = "evt-" + newID()
	}

	_, err := s.store.MutateEvents(ctx, func(events []domain.CalendarEvent) ([]domain.CalendarEvent, error) {
		if creating {
			return append(events, event), nil
		}
		i := indexOfEvent(events, event.ID)
		if i < 0 {
			return nil, apperrors.NewNotFoundError("event", event.ID)
		}
		event.IsMagic = events[i].IsMagic
		events[i] = event
		return events, nil
	})
	if err != nil {
		return nil, err
	}

	logging.Debugf("saved event %s %q (recurring=%t)\n", event.ID, event.Title, event.IsRecurring())
	return &event, nil
}

func (s *eventServiceImpl) Delete(ctx context.Context, id string) error {
	_, err := s.store.MutateEvents(ctx, func(events []domain.CalendarEvent) ([]domain.CalendarEvent, error) {
		i := indexOfEvent(events, id)
		if i < 0 {
			return nil, apperrors.NewNotFoundError("event", id)
		}
		return append(events[:i], events[i+1:]...), nil
	})
	return err
}

// DropTask turns a task dragged onto a calendar cell into a work event
func (s *eventServiceImpl) DropTask(ctx context.Context, taskID string, target DropTarget) (*domain.CalendarEvent, error) {
	var task *domain.Task
	for _, t := range s.store.Tasks() {
		if t.ID == taskID {
			task = &t
			break
		}
	}
	if task == nil {
		return nil, apperrors.NewNotFoundError("task", taskID)
	}
	if target.Date != "" && !s.validator.IsValidDate(target.Date) {
		return nil, apperrors.NewInvalidInputError("date", target.Date, "expected YYYY-MM-DD")
	}
	if target.DayOfWeek != nil && !s.validator.IsValidDayOfWeek(*target.DayOfWeek) {
		return nil, apperrors.NewInvalidInputError("dayOfWeek", *target.DayOfWeek, "must be between 0 (Sunday) and 6 (Saturday)")
	}

	event := domain.CalendarEvent{
		ID:        "drop-" + newID(),
		Title:     task.Title,
		DayOfWeek: target.DayOfWeek,
		Date:      target.Date,
		Time:      "TBD",
		Type:      domain.EventTypeWork,
	}
	if c, ok := s.store.Calendars().DefaultForNew(); ok {
		event.CalendarID = c.ID
	}
	event = event.NormalizeInferred(timeNow())

	if _, err := s.store.MutateEvents(ctx, func(events []domain.CalendarEvent) ([]domain.CalendarEvent, error) {
		return append(events, event), nil
	}); err != nil {
		return nil, err
	}
	return &event, nil
}

func indexOfEvent(events []domain.CalendarEvent, id string) int {
	for i, e := range events {
		if e.ID == id {
			return i
		}
	}
	return -1
}
