package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"paper2plan/internal/ai"
	"paper2plan/internal/domain"
	"paper2plan/internal/logging"
	"paper2plan/internal/planner"
	"paper2plan/internal/validation"
)

// importServiceImpl implements ImportService
type importServiceImpl struct {
	store          *planner.Store
	gateway        ai.Service
	imageValidator *validation.ImageValidator
}

// NewImportService creates a new import service
func NewImportService(store *planner.Store, gateway ai.Service, validator *validation.Validator) ImportService {
	return &importServiceImpl{
		store:          store,
		gateway:        gateway,
		imageValidator: validation.NewImageValidator(validator),
	}
}

// Import analyzes a photographed note and appends what it found. Imported
// events are filed under the personal calendar.
func (s *importServiceImpl) Import(ctx context.Context, image string) (*ImportResult, error) {
	if err := s.imageValidator.ValidatePayload(image); err != nil {
		return nil, validation.ToAppError(err)
	}

	extracted, err := s.gateway.AnalyzeImage(ctx, image)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	ms := now.UnixMilli()
	result := &ImportResult{Tasks: []domain.Task{}, Events: []domain.CalendarEvent{}}

	for i, title := range extracted.Tasks {
		if strings.TrimSpace(title) == "" {
			continue
		}
		result.Tasks = append(result.Tasks, domain.NewTask(fmt.Sprintf("new-%d-%d", ms, i), title))
	}
	for i, x := range extracted.Events {
		if strings.TrimSpace(x.Title) == "" {
			continue
		}
		e := domain.CalendarEvent{
			ID:         fmt.Sprintf("new-evt-%d-%d", ms, i),
			Title:      strings.TrimSpace(x.Title),
			DayOfWeek:  x.DayOfWeek,
			Time:       x.Time,
			Type:       domain.EventTypeOther,
			CalendarID: domain.PersonalCalendarID,
		}
		result.Events = append(result.Events, e.NormalizeInferred(now))
	}

	if len(result.Tasks) > 0 {
		if _, err := s.store.MutateTasks(ctx, func(tasks []domain.Task) ([]domain.Task, error) {
			return append(tasks, result.Tasks...), nil
		}); err != nil {
			return nil, err
		}
	}
	if len(result.Events) > 0 {
		if _, err := s.store.MutateEvents(ctx, func(events []domain.CalendarEvent) ([]domain.CalendarEvent, error) {
			return append(events, domain.CloneEvents(result.Events)...), nil
		}); err != nil {
			return nil, err
		}
	}

	logging.Debugf("imported %d tasks and %d events\n", len(result.Tasks), len(result.Events))
	return result, nil
}

// ImportBytes imports a raw image file
func (s *importServiceImpl) ImportBytes(ctx context.Context, mimeType string, data []byte) (*ImportResult, error) {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if err := s.imageValidator.ValidateFile(mimeType, int64(len(data))); err != nil {
		return nil, validation.ToAppError(err)
	}
	return s.Import(ctx, "data:"+mimeType+";base64,"+base64.StdEncoding.EncodeToString(data))
}
