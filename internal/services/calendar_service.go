package services

import (
	"context"

	"paper2plan/internal/domain"
	apperrors "paper2plan/internal/errors"
	"paper2plan/internal/planner"
)

// calendarServiceImpl implements CalendarService
type calendarServiceImpl struct {
	store *planner.Store
}

// NewCalendarService creates a new calendar service
func NewCalendarService(store *planner.Store) CalendarService {
	return &calendarServiceImpl{store: store}
}

func (s *calendarServiceImpl) List() domain.Calendars {
	return s.store.Calendars()
}

func (s *calendarServiceImpl) ToggleVisibility(ctx context.Context, id string) (*domain.Calendar, error) {
	var toggled domain.Calendar
	_, err := s.store.MutateCalendars(ctx, func(cs domain.Calendars) (domain.Calendars, error) {
		for i := range cs {
			if cs[i].ID == id {
				cs[i].IsVisible = !cs[i].IsVisible
				toggled = cs[i]
				return cs, nil
			}
		}
		return nil, apperrors.NewNotFoundError("calendar", id)
	})
	if err != nil {
		return nil, err
	}
	return &toggled, nil
}

// EnsureMagic adds the magic calendar if the user's list lacks it
func (s *calendarServiceImpl) EnsureMagic(ctx context.Context) (domain.Calendars, error) {
	return s.store.MutateCalendars(ctx, func(cs domain.Calendars) (domain.Calendars, error) {
		next, added := cs.EnsureMagic()
		if !added {
			return nil, planner.ErrUnchanged
		}
		return next, nil
	})
}

func (s *calendarServiceImpl) Resolve(id string) (domain.Calendar, bool) {
	return s.store.Calendars().Resolve(id)
}
