package services

import (
	"context"
	"testing"

	"paper2plan/internal/domain"
	apperrors "paper2plan/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarService(t *testing.T) {
	ctx := context.Background()

	t.Run("should toggle visibility", func(t *testing.T) {
		c, store := setupContainer(t, &fakeGateway{})

		cal, err := c.CalendarService.ToggleVisibility(ctx, domain.TeamCalendarID)
		require.NoError(t, err)
		assert.False(t, cal.IsVisible)

		stored, _ := store.Calendars().Find(domain.TeamCalendarID)
		assert.False(t, stored.IsVisible)

		_, err = c.CalendarService.ToggleVisibility(ctx, "work")
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("should add the magic calendar only once", func(t *testing.T) {
		c, store := setupContainer(t, &fakeGateway{})
		require.NoError(t, store.ReplaceCalendars(ctx, domain.DefaultCalendars()[:2]))

		cals, err := c.CalendarService.EnsureMagic(ctx)
		require.NoError(t, err)
		assert.Len(t, cals, 3)

		cals, err = c.CalendarService.EnsureMagic(ctx)
		require.NoError(t, err)
		assert.Len(t, cals, 3)
	})

	t.Run("should resolve unknown ids to the first calendar", func(t *testing.T) {
		c, _ := setupContainer(t, &fakeGateway{})

		cal, ok := c.CalendarService.Resolve("deleted")
		require.True(t, ok)
		assert.Equal(t, domain.PersonalCalendarID, cal.ID)
	})
}

func TestThemeService(t *testing.T) {
	ctx := context.Background()
	c, store := setupContainer(t, &fakeGateway{})

	assert.Equal(t, domain.ThemeLight, c.ThemeService.Get())

	theme, err := c.ThemeService.Set(ctx, "Midnight")
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeMidnight, theme)
	assert.Equal(t, domain.ThemeMidnight, store.Theme())

	_, err = c.ThemeService.Set(ctx, "sepia")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
}
