package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"paper2plan/internal/domain"
	"paper2plan/internal/gcal"
	"paper2plan/internal/imposition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePusher struct {
	events []domain.CalendarEvent
	ref    time.Time
}

func (p *fakePusher) Push(ctx context.Context, events []domain.CalendarEvent, ref time.Time) (gcal.PushResult, error) {
	p.events, p.ref = events, ref
	return gcal.PushResult{Created: len(events)}, nil
}

func TestExportService_WriteICS(t *testing.T) {
	ctx := context.Background()
	c, _ := setupContainer(t, &fakeGateway{})
	_, err := c.CalendarService.ToggleVisibility(ctx, domain.TeamCalendarID)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := c.ExportService.WriteICS(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "SUMMARY:Team Standup")
	assert.NotContains(t, out, "Project Review")
	// Monday after Wednesday 18 June 2025
	assert.Contains(t, out, "DTSTART:20250623T090000")
}

func TestExportService_SkipsEventsOnDeletedCalendars(t *testing.T) {
	ctx := context.Background()
	c, store := setupContainer(t, &fakeGateway{})
	_, err := store.MutateEvents(ctx, func(events []domain.CalendarEvent) ([]domain.CalendarEvent, error) {
		return append(events, domain.CalendarEvent{
			ID: "orphan", Title: "Orphan", DayOfWeek: domain.IntPtr(4), Type: domain.EventTypeOther, CalendarID: "deleted-cal",
		}), nil
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := c.ExportService.WriteICS(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, strings.Count(buf.String(), "BEGIN:VEVENT"))
	assert.NotContains(t, buf.String(), "SUMMARY:Orphan")

	_, found := findEvent(c.EventService.ListVisible(), "orphan")
	assert.False(t, found)
	_, found = findEvent(c.EventService.List(), "orphan")
	assert.True(t, found)
}

func TestExportService_PushGoogle(t *testing.T) {
	c, _ := setupContainer(t, &fakeGateway{})
	pusher := &fakePusher{}

	result, err := c.ExportService.PushGoogle(context.Background(), pusher)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, fixedNow, pusher.ref)
}

func TestPrintService(t *testing.T) {
	c, _ := setupContainer(t, &fakeGateway{})

	sheet, err := c.PrintService.Sheet(imposition.SideA)
	require.NoError(t, err)
	require.Len(t, sheet.Pages, 4)
	assert.Equal(t, "June", sheet.Pages[0].Month)

	var buf bytes.Buffer
	require.NoError(t, c.PrintService.Render(&buf, imposition.SideB))
	assert.Contains(t, buf.String(), "June")
	assert.Contains(t, buf.String(), "SIDE B")

	_, err = c.PrintService.Sheet(imposition.Side("C"))
	assert.Error(t, err)
}
