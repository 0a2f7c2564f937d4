package services

import (
	"context"
	"strings"

	"paper2plan/internal/ai"
	"paper2plan/internal/domain"
	apperrors "paper2plan/internal/errors"
	"paper2plan/internal/logging"
	"paper2plan/internal/planner"
	"paper2plan/internal/validation"
)

// taskServiceImpl implements TaskService
type taskServiceImpl struct {
	store         *planner.Store
	gateway       ai.Service
	taskValidator *validation.TaskValidator
}

// NewTaskService creates a new task service
func NewTaskService(store *planner.Store, gateway ai.Service, validator *validation.Validator) TaskService {
	return &taskServiceImpl{
		store:         store,
		gateway:       gateway,
		taskValidator: validation.NewTaskValidator(validator),
	}
}

func (s *taskServiceImpl) List() []domain.Task {
	return s.store.Tasks()
}

func (s *taskServiceImpl) Create(ctx context.Context, title string) (*domain.Task, error) {
	cleanTitle, err := s.taskValidator.GetValidTitle(title)
	if err != nil {
		return nil, validation.ToAppError(err)
	}

	task := domain.NewTask("task-"+newID(), cleanTitle)
	if _, err := s.store.MutateTasks(ctx, func(tasks []domain.Task) ([]domain.Task, error) {
		return append(tasks, task), nil
	}); err != nil {
		return nil, err
	}

	logging.Debugf("created task %s %q\n", task.ID, task.Title)
	return &task, nil
}

func (s *taskServiceImpl) Rename(ctx context.Context, id, title string) (*domain.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, s.Delete(ctx, id)
	}

	cleanTitle, err := s.taskValidator.GetValidTitle(title)
	if err != nil {
		return nil, validation.ToAppError(err)
	}
	return s.update(ctx, id, func(t domain.Task) (domain.Task, error) {
		t.Title = cleanTitle
		return t, nil
	})
}

func (s *taskServiceImpl) ToggleComplete(ctx context.Context, id string) (*domain.Task, error) {
	return s.update(ctx, id, func(t domain.Task) (domain.Task, error) {
		t.Completed = !t.Completed
		return t, nil
	})
}

func (s *taskServiceImpl) ToggleTimer(ctx context.Context, id string) (*domain.Task, error) {
	now := timeNow()
	return s.update(ctx, id, func(t domain.Task) (domain.Task, error) {
		return t.ToggleTimer(now), nil
	})
}

func (s *taskServiceImpl) Delete(ctx context.Context, id string) error {
	_, err := s.store.MutateTasks(ctx, func(tasks []domain.Task) ([]domain.Task, error) {
		i := indexOfTask(tasks, id)
		if i < 0 {
			return nil, apperrors.NewNotFoundError("task", id)
		}
		return append(tasks[:i], tasks[i+1:]...), nil
	})
	return err
}

// Tick advances every running timer by one second and returns how many ran
func (s *taskServiceImpl) Tick(ctx context.Context) (int, error) {
	running := 0
	_, err := s.store.MutateTasks(ctx, func(tasks []domain.Task) ([]domain.Task, error) {
		for i := range tasks {
			if tasks[i].IsTimerRunning {
				tasks[i] = tasks[i].Tick()
				running++
			}
		}
		if running == 0 {
			return nil, planner.ErrUnchanged
		}
		return tasks, nil
	})
	if err != nil {
		return 0, err
	}
	return running, nil
}

// Estimate asks the AI for a duration and stores it on the task. The
// provider call happens outside the store lock.
func (s *taskServiceImpl) Estimate(ctx context.Context, id string) (*domain.Task, error) {
	var title string
	for _, t := range s.store.Tasks() {
		if t.ID == id {
			title = t.Title
		}
	}
	if title == "" {
		return nil, apperrors.NewNotFoundError("task", id)
	}

	estimate, err := s.gateway.EstimateDuration(ctx, title)
	if err != nil {
		return nil, err
	}

	return s.update(ctx, id, func(t domain.Task) (domain.Task, error) {
		t.EstimatedTime = estimate
		return t, nil
	})
}

func (s *taskServiceImpl) update(ctx context.Context, id string, fn func(domain.Task) (domain.Task, error)) (*domain.Task, error) {
	var updated domain.Task
	_, err := s.store.MutateTasks(ctx, func(tasks []domain.Task) ([]domain.Task, error) {
		i := indexOfTask(tasks, id)
		if i < 0 {
			return nil, apperrors.NewNotFoundError("task", id)
		}
		next, err := fn(tasks[i])
		if err != nil {
			return nil, err
		}
		tasks[i] = next
		updated = next
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func indexOfTask(tasks []domain.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
