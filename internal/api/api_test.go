package api

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"paper2plan/internal/ai"
	"paper2plan/internal/config"
	"paper2plan/internal/domain"
	"paper2plan/internal/repository/sqlite"
	"paper2plan/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) *App {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	cfg := config.NewConfig()
	cfg.AI.Provider = ai.ProviderNone
	app, err := New(context.Background(), cfg, Dependencies{Repository: repo})
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })
	return app
}

func TestNew(t *testing.T) {
	t.Run("should wire every service", func(t *testing.T) {
		app := setupTestApp(t)

		require.NotNil(t, app.Services)
		assert.NotNil(t, app.Services.TaskService)
		assert.NotNil(t, app.Services.ScheduleService)
		assert.NotNil(t, app.Planner)
		assert.False(t, app.Services.Gateway.ProviderInfo().Enabled)
	})

	t.Run("should open the configured database and persist across restarts", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Database.Dir = filepath.Join(t.TempDir(), "db")
		cfg.AI.Provider = ai.ProviderNone
		ctx := context.Background()

		app, err := New(ctx, cfg, Dependencies{})
		require.NoError(t, err)
		_, err = app.Services.TaskService.Create(ctx, "Persist me")
		require.NoError(t, err)
		require.NoError(t, app.Close())

		reopened, err := New(ctx, cfg, Dependencies{})
		require.NoError(t, err)
		defer reopened.Close()

		tasks := reopened.Services.TaskService.List()
		assert.Equal(t, "Persist me", tasks[len(tasks)-1].Title)
	})

	t.Run("should fail for unknown environments", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Application.Environment = "staging"

		_, err := New(context.Background(), cfg, Dependencies{})
		assert.Error(t, err)
	})
}

func TestPlannerAPI_GetOverview(t *testing.T) {
	ctx := context.Background()
	app := setupTestApp(t)

	_, err := app.Services.CalendarService.ToggleVisibility(ctx, domain.TeamCalendarID)
	require.NoError(t, err)
	_, err = app.Services.TaskService.ToggleComplete(ctx, "1")
	require.NoError(t, err)

	overview := app.Planner.GetOverview()
	assert.Len(t, overview.Tasks, 3)
	assert.Len(t, overview.Events, 2, "team events are hidden")
	assert.Len(t, overview.Calendars, 3)
	assert.Equal(t, domain.ThemeLight, overview.Theme)
	assert.Equal(t, ai.ProviderNone, overview.Provider.Provider)
	assert.False(t, overview.CanUndo)
	assert.Equal(t, 1, overview.Stats.Completed)
}

func TestPlannerAPI_GetWeek(t *testing.T) {
	ctx := context.Background()
	app := setupTestApp(t)

	orig := timeNow
	timeNow = func() time.Time { return time.Date(2025, time.June, 18, 12, 0, 0, 0, time.Local) }
	t.Cleanup(func() { timeNow = orig })

	_, err := app.Services.EventService.Save(ctx, eventOn("2025-06-20"))
	require.NoError(t, err)

	week := app.Planner.GetWeek(time.Date(2025, time.June, 18, 0, 0, 0, 0, time.Local))
	require.Len(t, week, 7)

	assert.Equal(t, "2025-06-15", week[0].Date)
	assert.Equal(t, "Sunday", week[0].Weekday)
	assert.True(t, week[3].IsToday)

	require.Len(t, week[1].Events, 1)
	assert.Equal(t, "Team Standup", week[1].Events[0].Title)

	var friday []string
	for _, e := range week[5].Events {
		friday = append(friday, e.Title)
	}
	assert.ElementsMatch(t, []string{"Weekly Planning", "Dentist"}, friday)
	assert.Empty(t, week[6].Events)
}

func TestPlannerAPI_GetTaskStatistics(t *testing.T) {
	ctx := context.Background()
	app := setupTestApp(t)

	_, err := app.Services.TaskService.ToggleTimer(ctx, "2")
	require.NoError(t, err)
	for i := 0; i < 75; i++ {
		_, err := app.Services.TaskService.Tick(ctx)
		require.NoError(t, err)
	}

	stats := app.Planner.GetTaskStatistics()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Running)
	assert.Equal(t, int64(75), stats.TrackedTotal)
	assert.Equal(t, "1:15", stats.TrackedTime)
}

func eventOn(date string) services.EventInput {
	return services.EventInput{Title: "Dentist", Date: date}
}
