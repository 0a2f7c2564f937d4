package cli

import (
	"context"
	"testing"

	"paper2plan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastEvent(app *App) domain.CalendarEvent {
	events := app.planner.Services.EventService.List()
	return events[len(events)-1]
}

func TestEventAddCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("should add a weekly event", func(t *testing.T) {
		app, out := setupTestApp(t, nil)
		cmd := NewEventAddCommand(app)
		cmd.Options.DayOfWeek = 2
		cmd.Options.Time = "18:00"
		cmd.Options.Type = "Personal"

		require.NoError(t, cmd.Execute(ctx, []string{"Gym"}))

		e := lastEvent(app)
		assert.Equal(t, "Gym", e.Title)
		require.NotNil(t, e.DayOfWeek)
		assert.Equal(t, 2, *e.DayOfWeek)
		assert.Empty(t, e.Date)
		assert.Equal(t, domain.EventTypePersonal, e.Type)
		assert.Equal(t, "Added event: every Tue    18:00    Gym [personal, Personal]\n", out.String())
	})

	t.Run("should add a one-off event with defaults", func(t *testing.T) {
		app, _ := setupTestApp(t, nil)
		cmd := NewEventAddCommand(app)
		cmd.Options.Date = "2025-06-20"

		require.NoError(t, cmd.Execute(ctx, []string{"Dentist"}))

		e := lastEvent(app)
		assert.Nil(t, e.DayOfWeek)
		assert.Equal(t, "2025-06-20", e.Date)
		assert.Equal(t, domain.EventTypeOther, e.Type)
		assert.Equal(t, domain.PersonalCalendarID, e.CalendarID)
	})

	t.Run("should reject both anchors", func(t *testing.T) {
		app, _ := setupTestApp(t, nil)
		cmd := NewEventAddCommand(app)
		cmd.Options.DayOfWeek = 1
		cmd.Options.Date = "2025-06-20"

		err := cmd.Execute(ctx, []string{"Both"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not both")
		assert.Len(t, app.planner.Services.EventService.List(), 3)
	})

	t.Run("should reject unknown types and days", func(t *testing.T) {
		app, _ := setupTestApp(t, nil)

		cmd := NewEventAddCommand(app)
		cmd.Options.Type = "holiday"
		assert.Error(t, cmd.Execute(ctx, []string{"Trip"}))

		cmd = NewEventAddCommand(app)
		cmd.Options.DayOfWeek = 7
		assert.Error(t, cmd.Execute(ctx, []string{"Trip"}))
	})

	t.Run("should reject malformed dates", func(t *testing.T) {
		app, _ := setupTestApp(t, nil)
		cmd := NewEventAddCommand(app)
		cmd.Options.Date = "20-06-2025"

		err := cmd.Execute(ctx, []string{"Trip"})
		require.Error(t, err)
		assert.True(t, NewErrorHandler().IsValidationError(err))
	})
}

func TestEventEditCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("should keep fields without flags", func(t *testing.T) {
		app, _ := setupTestApp(t, nil)
		cmd := NewEventEditCommand(app)
		cmd.Options.Time = "09:30"

		require.NoError(t, cmd.Execute(ctx, []string{"1"}))

		e := app.planner.Services.EventService.List()[0]
		assert.Equal(t, "Team Standup", e.Title)
		assert.Equal(t, "09:30", e.Time)
		require.NotNil(t, e.DayOfWeek)
		assert.Equal(t, 1, *e.DayOfWeek)
		assert.Equal(t, domain.PersonalCalendarID, e.CalendarID)
	})

	t.Run("should turn a weekly event into a one-off", func(t *testing.T) {
		app, out := setupTestApp(t, nil)
		cmd := NewEventEditCommand(app)
		cmd.Options.Date = "2025-07-01"

		require.NoError(t, cmd.Execute(ctx, []string{"2", "Final", "review"}))

		e := app.planner.Services.EventService.List()[1]
		assert.Equal(t, "Final review", e.Title)
		assert.Nil(t, e.DayOfWeek)
		assert.Equal(t, "2025-07-01", e.Date)
		assert.Contains(t, out.String(), "Updated event: 2025-07-01")
	})

	t.Run("should report unknown events", func(t *testing.T) {
		app, _ := setupTestApp(t, nil)

		err := NewEventEditCommand(app).Execute(ctx, []string{"evt-missing"})
		require.Error(t, err)
		assert.True(t, NewErrorHandler().IsNotFoundError(err))
	})
}

func TestEventListCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("should list visible events with stable numbers", func(t *testing.T) {
		app, out := setupTestApp(t, nil)
		_, err := app.planner.Services.CalendarService.ToggleVisibility(ctx, domain.TeamCalendarID)
		require.NoError(t, err)

		require.NoError(t, NewEventListCommand(app).Execute(ctx, nil))

		assert.Equal(t,
			" 1. every Mon    09:00    Team Standup [work, Personal]\n"+
				" 3. every Fri    10:00    Weekly Planning [other, Personal]\n",
			out.String())
	})

	t.Run("should include hidden calendars with --all", func(t *testing.T) {
		app, out := setupTestApp(t, nil)
		_, err := app.planner.Services.CalendarService.ToggleVisibility(ctx, domain.TeamCalendarID)
		require.NoError(t, err)

		cmd := NewEventListCommand(app)
		cmd.All = true
		require.NoError(t, cmd.Execute(ctx, nil))

		assert.Contains(t, out.String(), " 2. every Wed    14:00    Project Review [work, Team]\n")
	})

	t.Run("should say when nothing is visible", func(t *testing.T) {
		app, out := setupTestApp(t, nil)
		for _, id := range []string{domain.PersonalCalendarID, domain.TeamCalendarID} {
			_, err := app.planner.Services.CalendarService.ToggleVisibility(ctx, id)
			require.NoError(t, err)
		}

		require.NoError(t, NewEventListCommand(app).Execute(ctx, nil))
		assert.Equal(t, "No events found\n", out.String())
	})
}

func TestEventDeleteCommand_Execute(t *testing.T) {
	ctx := context.Background()
	app, out := setupTestApp(t, nil)

	require.NoError(t, NewEventDeleteCommand(app).Execute(ctx, []string{"3"}))

	assert.Len(t, app.planner.Services.EventService.List(), 2)
	assert.Equal(t, "Deleted event: Weekly Planning\n", out.String())
}

func TestEventDropCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("should schedule a task on a weekday", func(t *testing.T) {
		app, out := setupTestApp(t, nil)
		cmd := NewEventDropCommand(app)
		cmd.DayOfWeek = 4

		require.NoError(t, cmd.Execute(ctx, []string{"2"}))

		e := lastEvent(app)
		assert.Equal(t, "Prepare presentation slides", e.Title)
		assert.Equal(t, domain.EventTypeWork, e.Type)
		assert.Equal(t, "TBD", e.Time)
		require.NotNil(t, e.DayOfWeek)
		assert.Equal(t, 4, *e.DayOfWeek)
		assert.Contains(t, out.String(), "Scheduled: every Thu")
	})

	t.Run("should schedule a task on a date", func(t *testing.T) {
		app, _ := setupTestApp(t, nil)
		cmd := NewEventDropCommand(app)
		cmd.Date = "2025-06-21"

		require.NoError(t, cmd.Execute(ctx, []string{"1"}))

		e := lastEvent(app)
		assert.Nil(t, e.DayOfWeek)
		assert.Equal(t, "2025-06-21", e.Date)
	})

	t.Run("should need exactly one target", func(t *testing.T) {
		app, _ := setupTestApp(t, nil)

		err := NewEventDropCommand(app).Execute(ctx, []string{"1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one")
	})
}

func TestResolveRef(t *testing.T) {
	ids := []string{"task-ab12", "task-ab34", "task-cd56"}

	tests := []struct {
		name    string
		ref     string
		want    int
		wantErr bool
	}{
		{"should match exact ids", "task-cd56", 2, false},
		{"should match list numbers", "2", 1, false},
		{"should match unique prefixes", "task-c", 2, false},
		{"should reject ambiguous prefixes", "task-ab", 0, true},
		{"should reject out of range numbers", "4", 0, true},
		{"should reject unknown refs", "nope", 0, true},
		{"should reject empty refs", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveRef("task", ids, tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
