package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"paper2plan/internal/domain"
	apperrors "paper2plan/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		title     string
		wantTitle string
		wantErr   bool
	}{
		{"should trim and create a task", "  Write report  ", "Write report", false},
		{"should accept 200 characters", strings.Repeat("a", 200), strings.Repeat("a", 200), false},
		{"should reject a blank title", "   ", "", true},
		{"should reject 201 characters", strings.Repeat("a", 201), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, store := setupContainer(t, &fakeGateway{})

			task, err := c.TaskService.Create(ctx, tt.title)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
				assert.Len(t, store.Tasks(), len(domain.DefaultTasks()))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "task-id1", task.ID)
			assert.Equal(t, tt.wantTitle, task.Title)
			assert.False(t, task.Completed)
			assert.Zero(t, task.ActualTime)

			tasks := store.Tasks()
			assert.Equal(t, *task, tasks[len(tasks)-1])
		})
	}
}

func TestTaskService_Rename(t *testing.T) {
	ctx := context.Background()

	t.Run("should update the title", func(t *testing.T) {
		c, _ := setupContainer(t, &fakeGateway{})

		task, err := c.TaskService.Rename(ctx, "1", " Read requirements ")
		require.NoError(t, err)
		assert.Equal(t, "Read requirements", task.Title)
	})

	t.Run("should delete the task when renamed to blank", func(t *testing.T) {
		c, store := setupContainer(t, &fakeGateway{})

		task, err := c.TaskService.Rename(ctx, "1", "  ")
		require.NoError(t, err)
		assert.Nil(t, task)
		for _, remaining := range store.Tasks() {
			assert.NotEqual(t, "1", remaining.ID)
		}
	})

	t.Run("should report unknown tasks", func(t *testing.T) {
		c, _ := setupContainer(t, &fakeGateway{})

		_, err := c.TaskService.Rename(ctx, "missing", "x")
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestTaskService_Toggles(t *testing.T) {
	ctx := context.Background()
	c, _ := setupContainer(t, &fakeGateway{})

	task, err := c.TaskService.ToggleComplete(ctx, "2")
	require.NoError(t, err)
	assert.True(t, task.Completed)

	task, err = c.TaskService.ToggleComplete(ctx, "2")
	require.NoError(t, err)
	assert.False(t, task.Completed)

	task, err = c.TaskService.ToggleTimer(ctx, "2")
	require.NoError(t, err)
	assert.True(t, task.IsTimerRunning)
	require.NotNil(t, task.LastStartTime)
	assert.Equal(t, fixedNow.UnixMilli(), *task.LastStartTime)

	task, err = c.TaskService.ToggleTimer(ctx, "2")
	require.NoError(t, err)
	assert.False(t, task.IsTimerRunning)
}

func TestTaskService_Tick(t *testing.T) {
	ctx := context.Background()

	t.Run("should add one second to running tasks only", func(t *testing.T) {
		c, store := setupContainer(t, &fakeGateway{})
		_, err := c.TaskService.ToggleTimer(ctx, "1")
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			n, err := c.TaskService.Tick(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		}

		for _, task := range store.Tasks() {
			if task.ID == "1" {
				assert.Equal(t, int64(3), task.ActualTime)
			} else {
				assert.Zero(t, task.ActualTime)
			}
		}
	})

	t.Run("should do nothing when no timer runs", func(t *testing.T) {
		c, store := setupContainer(t, &fakeGateway{})

		n, err := c.TaskService.Tick(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Equal(t, domain.DefaultTasks(), store.Tasks())
	})
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()
	c, store := setupContainer(t, &fakeGateway{})

	require.NoError(t, c.TaskService.Delete(ctx, "3"))
	assert.Len(t, store.Tasks(), 2)

	err := c.TaskService.Delete(ctx, "3")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestTaskService_Estimate(t *testing.T) {
	ctx := context.Background()

	t.Run("should store the estimate on the task", func(t *testing.T) {
		c, _ := setupContainer(t, &fakeGateway{estimate: "45 mins"})

		task, err := c.TaskService.Estimate(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "45 mins", task.EstimatedTime)
	})

	t.Run("should leave the task untouched when the provider fails", func(t *testing.T) {
		upstream := apperrors.NewUpstreamError("duration estimate", errors.New("boom"))
		c, store := setupContainer(t, &fakeGateway{err: upstream})

		_, err := c.TaskService.Estimate(ctx, "1")
		assert.ErrorIs(t, err, upstream)
		assert.Empty(t, store.Tasks()[0].EstimatedTime)
	})

	t.Run("should not call the provider for unknown tasks", func(t *testing.T) {
		gw := &fakeGateway{estimate: "1 hour"}
		c, _ := setupContainer(t, gw)

		_, err := c.TaskService.Estimate(ctx, "missing")
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
		assert.Zero(t, gw.calls)
	})
}
