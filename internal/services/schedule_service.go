package services

import (
	"context"

	"paper2plan/internal/ai"
	"paper2plan/internal/domain"
	apperrors "paper2plan/internal/errors"
	"paper2plan/internal/logging"
	"paper2plan/internal/planner"
)

// scheduleServiceImpl implements ScheduleService
type scheduleServiceImpl struct {
	store     *planner.Store
	gateway   ai.Service
	calendars CalendarService
}

// NewScheduleService creates a new schedule service
func NewScheduleService(store *planner.Store, gateway ai.Service, calendars CalendarService) ScheduleService {
	return &scheduleServiceImpl{store: store, gateway: gateway, calendars: calendars}
}

// MagicSchedule asks the AI to slot the uncompleted tasks into the week and
// appends the suggestions. The events as they were before the call can be
// restored with Undo, unless another event change happens first.
func (s *scheduleServiceImpl) MagicSchedule(ctx context.Context) (*ScheduleResult, error) {
	tasks := s.store.Tasks()
	if len(domain.PendingTitles(tasks)) == 0 {
		return nil, ErrNothingToSchedule
	}

	if _, err := s.calendars.EnsureMagic(ctx); err != nil {
		return nil, err
	}

	token := s.store.Snapshot()
	visible := s.store.Calendars().VisibleEvents(s.store.Events())

	suggested, err := s.gateway.SuggestSchedule(ctx, tasks, visible, currentDateLabel(timeNow()))
	if err != nil {
		s.store.DiscardSnapshot(token)
		return nil, err
	}
	if len(suggested) == 0 {
		s.store.DiscardSnapshot(token)
		return &ScheduleResult{Added: []domain.CalendarEvent{}}, nil
	}

	if _, err := s.store.CommitSnapshot(ctx, token, suggested); err != nil {
		s.store.DiscardSnapshot(token)
		return nil, err
	}

	logging.Debugf("magic schedule added %d events\n", len(suggested))
	return &ScheduleResult{Added: suggested, CanUndo: s.store.HasSnapshot()}, nil
}

// Undo restores the events saved before the last magic schedule
func (s *scheduleServiceImpl) Undo(ctx context.Context) ([]domain.CalendarEvent, error) {
	events, err := s.store.Revert(ctx)
	if apperrors.IsErrorType(err, apperrors.ErrorTypeConflict) {
		return nil, ErrNoUndo
	}
	return events, err
}

func (s *scheduleServiceImpl) CanUndo() bool {
	return s.store.HasSnapshot()
}
