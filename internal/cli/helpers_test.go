package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"paper2plan/internal/ai"
	"paper2plan/internal/api"
	"paper2plan/internal/config"
	"paper2plan/internal/domain"
	"paper2plan/internal/logging"
	"paper2plan/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

// fakeGateway answers every AI request with canned data
type fakeGateway struct {
	extracted domain.ExtractedData
	suggested []domain.CalendarEvent
	reply     domain.ChatReply
	estimate  string
	err       error
	disabled  bool
}

func (f *fakeGateway) ProviderInfo() ai.ProviderInfo {
	return ai.ProviderInfo{Provider: ai.ProviderOllama, Model: "llama3.2", Enabled: !f.disabled}
}

func (f *fakeGateway) SetProviderConfig(cfg ai.ProviderConfig) (ai.ProviderInfo, error) {
	return f.ProviderInfo(), nil
}

func (f *fakeGateway) AnalyzeImage(ctx context.Context, image string) (domain.ExtractedData, error) {
	return f.extracted, f.err
}

func (f *fakeGateway) SuggestSchedule(ctx context.Context, tasks []domain.Task, existing []domain.CalendarEvent, currentDate string) ([]domain.CalendarEvent, error) {
	return domain.CloneEvents(f.suggested), f.err
}

func (f *fakeGateway) Chat(ctx context.Context, messages []domain.ChatMessage, tasks []domain.Task, events []domain.CalendarEvent, currentDate string) (domain.ChatReply, error) {
	return f.reply, f.err
}

func (f *fakeGateway) EstimateDuration(ctx context.Context, title string) (string, error) {
	return f.estimate, f.err
}

// setupPlanner builds a planner over an in-memory database with the
// default tasks, events and calendars
func setupPlanner(t *testing.T, gateway *fakeGateway) *api.App {
	t.Helper()

	if gateway == nil {
		gateway = &fakeGateway{}
	}

	cfg := config.NewConfig()
	cfg.Application.Environment = config.EnvironmentTesting
	cfg.Google.CredentialsFile = "testdata/missing-credentials.json"

	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	planner, err := api.New(context.Background(), cfg, api.Dependencies{
		Repository: repo,
		Gateway:    gateway,
		Logger:     logging.Discard(),
	})
	require.NoError(t, err)
	return planner
}

// setupTestApp returns a CLI app and the buffer its output goes to
func setupTestApp(t *testing.T, gateway *fakeGateway) (*App, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	return NewApp(setupPlanner(t, gateway), out), out
}

// freezeTime pins the CLI clock, e.g. for the week view
func freezeTime(t *testing.T, now time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })
}
