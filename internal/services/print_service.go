package services

import (
	"io"

	"paper2plan/internal/imposition"
	"paper2plan/internal/planner"
)

type printServiceImpl struct {
	store *planner.Store
}

// NewPrintService creates a new print service
func NewPrintService(store *planner.Store) PrintService {
	return &printServiceImpl{store: store}
}

// Sheet lays out one side for the current month from the visible events and all tasks
func (s *printServiceImpl) Sheet(side imposition.Side) (imposition.Sheet, error) {
	visible := s.store.Calendars().VisibleEvents(s.store.Events())
	return imposition.Build(side, monthName(), visible, s.store.Tasks())
}

func (s *printServiceImpl) Render(w io.Writer, side imposition.Side) error {
	sheet, err := s.Sheet(side)
	if err != nil {
		return err
	}
	return imposition.Render(w, monthName(), sheet)
}

func monthName() string {
	return timeNow().Month().String()
}
