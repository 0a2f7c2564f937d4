package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"paper2plan/internal/ai"
	"paper2plan/internal/domain"
	"paper2plan/internal/export"
	"paper2plan/internal/planner"
	"paper2plan/internal/repository/sqlite"
	"paper2plan/internal/validation"

	"github.com/stretchr/testify/require"
)

// fixedNow is Wednesday 18 June 2025, 10:30 local time
var fixedNow = time.Date(2025, time.June, 18, 10, 30, 0, 0, time.Local)

type fakeGateway struct {
	extracted  domain.ExtractedData
	suggested  []domain.CalendarEvent
	reply      domain.ChatReply
	estimate   string
	err        error
	chatInputs [][]domain.ChatMessage
	scheduled  []domain.CalendarEvent
	dates      []string
	calls      int
}

func (f *fakeGateway) ProviderInfo() ai.ProviderInfo {
	return ai.ProviderInfo{Provider: ai.ProviderGemini, Model: "test", Enabled: true}
}

func (f *fakeGateway) SetProviderConfig(cfg ai.ProviderConfig) (ai.ProviderInfo, error) {
	return f.ProviderInfo(), nil
}

func (f *fakeGateway) AnalyzeImage(ctx context.Context, image string) (domain.ExtractedData, error) {
	f.calls++
	return f.extracted, f.err
}

func (f *fakeGateway) SuggestSchedule(ctx context.Context, tasks []domain.Task, existing []domain.CalendarEvent, currentDate string) ([]domain.CalendarEvent, error) {
	f.calls++
	f.scheduled = existing
	f.dates = append(f.dates, currentDate)
	return domain.CloneEvents(f.suggested), f.err
}

func (f *fakeGateway) Chat(ctx context.Context, messages []domain.ChatMessage, tasks []domain.Task, events []domain.CalendarEvent, currentDate string) (domain.ChatReply, error) {
	f.calls++
	f.chatInputs = append(f.chatInputs, messages)
	f.dates = append(f.dates, currentDate)
	return f.reply, f.err
}

func (f *fakeGateway) EstimateDuration(ctx context.Context, title string) (string, error) {
	f.calls++
	return f.estimate, f.err
}

func setupContainer(t *testing.T, gateway *fakeGateway) (*ServiceContainer, *planner.Store) {
	t.Helper()

	origNow, origID := timeNow, newID
	seq := 0
	timeNow = func() time.Time { return fixedNow }
	newID = func() string {
		seq++
		return fmt.Sprintf("id%d", seq)
	}
	t.Cleanup(func() { timeNow, newID = origNow, origID })

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	store, err := planner.Open(context.Background(), repo, nil)
	require.NoError(t, err)

	container := NewServiceContainer(store, gateway, validation.NewValidator(), export.ICSOptions{ProductID: "-//Paper2Plan//EN", DefaultHour: 9}, nil)
	return container, store
}

func findEvent(events []domain.CalendarEvent, id string) (domain.CalendarEvent, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return domain.CalendarEvent{}, false
}

func fmtID(format string, ms int64) string {
	return fmt.Sprintf(format, ms)
}
