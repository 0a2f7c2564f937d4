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

var testImage = "data:image/png;base64," + strings.Repeat("A", 200)

func TestImportService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("should append extracted tasks and events", func(t *testing.T) {
		gw := &fakeGateway{extracted: domain.ExtractedData{
			Tasks: []string{"Buy milk", " ", "Call Sam"},
			Events: []domain.ExtractedEvent{
				{Title: "Yoga", DayOfWeek: domain.IntPtr(2), Time: "18:00"},
				{Title: "Book club"},
			},
		}}
		c, store := setupContainer(t, gw)

		result, err := c.ImportService.Import(ctx, testImage)
		require.NoError(t, err)

		ms := fixedNow.UnixMilli()
		require.Len(t, result.Tasks, 2)
		assert.Equal(t, domain.NewTask(fmtID("new-%d-0", ms), "Buy milk"), result.Tasks[0])
		assert.Equal(t, fmtID("new-%d-2", ms), result.Tasks[1].ID)

		require.Len(t, result.Events, 2)
		yoga := result.Events[0]
		assert.Equal(t, fmtID("new-evt-%d-0", ms), yoga.ID)
		assert.Equal(t, domain.IntPtr(2), yoga.DayOfWeek)
		assert.Equal(t, "18:00", yoga.Time)
		assert.Equal(t, domain.EventTypeOther, yoga.Type)
		assert.Equal(t, domain.PersonalCalendarID, yoga.CalendarID)

		assert.Equal(t, domain.IntPtr(0), result.Events[1].DayOfWeek, "no weekday recurs on Sunday")
		for _, e := range result.Events {
			assert.True(t, e.HasSingleAnchor())
		}

		assert.Len(t, store.Tasks(), 5)
		assert.Len(t, store.Events(), 5)
	})

	t.Run("should reject short payloads without calling the provider", func(t *testing.T) {
		gw := &fakeGateway{}
		c, _ := setupContainer(t, gw)

		_, err := c.ImportService.Import(ctx, "data:image/png;base64,AAAA")
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
		assert.Zero(t, gw.calls)
	})

	t.Run("should leave state alone when analysis fails", func(t *testing.T) {
		c, store := setupContainer(t, &fakeGateway{err: apperrors.NewUpstreamError("image analysis", errors.New("quota"))})

		_, err := c.ImportService.Import(ctx, testImage)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeUpstream))
		assert.Equal(t, domain.DefaultTasks(), store.Tasks())
	})
}

func TestImportService_ImportBytes(t *testing.T) {
	ctx := context.Background()

	t.Run("should accept a webp file", func(t *testing.T) {
		gw := &fakeGateway{extracted: domain.ExtractedData{Tasks: []string{"Plan trip"}}}
		c, _ := setupContainer(t, gw)

		result, err := c.ImportService.ImportBytes(ctx, "IMAGE/WEBP", make([]byte, 512))
		require.NoError(t, err)
		assert.Len(t, result.Tasks, 1)
	})

	t.Run("should reject gif files", func(t *testing.T) {
		gw := &fakeGateway{}
		c, _ := setupContainer(t, gw)

		_, err := c.ImportService.ImportBytes(ctx, "image/gif", make([]byte, 512))
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
		assert.Zero(t, gw.calls)
	})

	t.Run("should reject files over the size limit", func(t *testing.T) {
		c, _ := setupContainer(t, &fakeGateway{})

		_, err := c.ImportService.ImportBytes(ctx, "image/png", make([]byte, 10*1024*1024+1))
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
	})
}
