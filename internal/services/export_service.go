package services

import (
	"context"
	"io"

	"paper2plan/internal/export"
	"paper2plan/internal/gcal"
	"paper2plan/internal/logging"
	"paper2plan/internal/planner"
)

// exportServiceImpl implements ExportService
type exportServiceImpl struct {
	store   *planner.Store
	options export.ICSOptions
}

// NewExportService creates a new export service
func NewExportService(store *planner.Store, options export.ICSOptions) ExportService {
	return &exportServiceImpl{store: store, options: options}
}

// WriteICS writes the visible events as an iCalendar file and returns how
// many VEVENTs it contains
func (s *exportServiceImpl) WriteICS(w io.Writer) (int, error) {
	visible := s.store.Calendars().VisibleEvents(s.store.Events())
	cal := export.BuildCalendar(visible, timeNow(), s.options)
	if err := cal.SerializeTo(w); err != nil {
		return 0, err
	}

	count := len(cal.Events())
	logging.Debugf("exported %d of %d events\n", count, len(visible))
	return count, nil
}

// PushGoogle sends the visible events to a remote calendar
func (s *exportServiceImpl) PushGoogle(ctx context.Context, pusher EventPusher) (gcal.PushResult, error) {
	visible := s.store.Calendars().VisibleEvents(s.store.Events())
	return pusher.Push(ctx, visible, timeNow())
}
