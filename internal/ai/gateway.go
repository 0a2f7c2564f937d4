package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"paper2plan/internal/cache"
	"paper2plan/internal/config"
	"paper2plan/internal/domain"
	apperrors "paper2plan/internal/errors"
	"paper2plan/internal/logging"
	"paper2plan/internal/validation"

	"golang.org/x/sync/singleflight"
)

const (
	disabledMessage     = "AI features are disabled. Please configure your AI provider in Settings."
	geminiOnlyMessage   = "This feature requires Gemini AI provider. Advanced features like image analysis are only available with Gemini."
	defaultImageMIME    = "image/jpeg"
	defaultTimeout      = 60 * time.Second
	estimateServiceName = "duration estimate"
)

// timeNow is swapped in tests
var timeNow = time.Now

// Service is the AI gateway used by the planner
type Service interface {
	ProviderInfo() ProviderInfo
	SetProviderConfig(cfg ProviderConfig) (ProviderInfo, error)
	AnalyzeImage(ctx context.Context, image string) (domain.ExtractedData, error)
	SuggestSchedule(ctx context.Context, tasks []domain.Task, existing []domain.CalendarEvent, currentDate string) ([]domain.CalendarEvent, error)
	Chat(ctx context.Context, messages []domain.ChatMessage, tasks []domain.Task, events []domain.CalendarEvent, currentDate string) (domain.ChatReply, error)
	EstimateDuration(ctx context.Context, title string) (string, error)
}

// Options tune a Gateway; zero values select production defaults
type Options struct {
	Factory Factory
	Cache   cache.Store
	Timeout time.Duration
	Logger  *slog.Logger
}

// Gateway routes planner requests to the active provider. The provider
// configuration can be replaced at runtime.
type Gateway struct {
	mu      sync.Mutex
	cfg     ProviderConfig
	client  Client
	factory Factory
	cache   cache.Store
	group   singleflight.Group
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a gateway for the given provider configuration
func New(cfg ProviderConfig, opts Options) Service {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Factory == nil {
		opts.Factory = NewFactory(nil)
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewMemory(0)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	return &Gateway{
		cfg:     cfg.WithDefaults(),
		factory: opts.Factory,
		cache:   opts.Cache,
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}
}

// NewFromConfig creates a gateway from application configuration
func NewFromConfig(cfg config.AIConfig, store cache.Store, logger *slog.Logger) Service {
	return New(FromConfig(cfg), Options{
		Cache:   store,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})
}

// ProviderInfo describes the active provider
func (g *Gateway) ProviderInfo() ProviderInfo {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg.Info()
}

// SetProviderConfig replaces the active provider
func (g *Gateway) SetProviderConfig(cfg ProviderConfig) (ProviderInfo, error) {
	cfg = cfg.WithDefaults()
	if !config.IsKnownProvider(cfg.Provider) {
		return ProviderInfo{}, apperrors.NewInvalidInputError("provider", cfg.Provider,
			"must be one of gemini, openai, claude, ollama, lmstudio, none")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.cfg = cfg
	g.client = nil

	g.logger.Info("AI provider configured", "provider", cfg.Provider, "model", cfg.Model, "enabled", cfg.Enabled())
	return cfg.Info(), nil
}

// AnalyzeImage extracts tasks and events from a photographed note
func (g *Gateway) AnalyzeImage(ctx context.Context, image string) (domain.ExtractedData, error) {
	client, err := g.activeClient(ctx)
	if err != nil {
		return domain.ExtractedData{}, err
	}
	if !client.Capabilities().Vision {
		return domain.ExtractedData{}, apperrors.NewUnavailableError("image analysis", geminiOnlyMessage)
	}

	mimeType, encoded := validation.SplitDataURL(image)
	if mimeType == "" {
		mimeType = defaultImageMIME
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return domain.ExtractedData{}, apperrors.NewInvalidInputError("image", nil, "image is not valid base64")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := client.Generate(ctx, GenerateRequest{
		Prompt: extractionPrompt,
		Image:  &Image{MIMEType: mimeType, Data: data},
		Format: FormatExtraction,
	})
	if err != nil {
		return domain.ExtractedData{}, g.upstream("image analysis", err)
	}
	if strings.TrimSpace(text) == "" {
		return domain.ExtractedData{}, g.upstream("image analysis", fmt.Errorf("no response from model"))
	}

	extracted, err := parseExtracted(text)
	if err != nil {
		return domain.ExtractedData{}, g.upstream("image analysis", err)
	}
	if extracted.Tasks == nil {
		extracted.Tasks = []string{}
	}
	if extracted.Events == nil {
		extracted.Events = []domain.ExtractedEvent{}
	}
	return extracted, nil
}

// SuggestSchedule asks the model to slot the uncompleted tasks around the
// existing events. The returned events are new and filed under the magic
// calendar.
func (g *Gateway) SuggestSchedule(ctx context.Context, tasks []domain.Task, existing []domain.CalendarEvent, currentDate string) ([]domain.CalendarEvent, error) {
	client, err := g.activeClient(ctx)
	if err != nil {
		return nil, err
	}

	pending := domain.PendingTitles(tasks)
	if len(pending) == 0 {
		return []domain.CalendarEvent{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	schema := client.Capabilities().Schema
	text, err := client.Generate(ctx, GenerateRequest{
		Prompt: schedulePrompt(pending, existing, currentDate, !schema),
		Format: FormatSchedule,
	})
	if err != nil {
		return nil, g.upstream("schedule suggestion", err)
	}

	suggestions, err := parseSuggestions(text)
	if err != nil {
		return nil, g.upstream("schedule suggestion", err)
	}

	now := timeNow()
	events := make([]domain.CalendarEvent, 0, len(suggestions))
	for i, s := range suggestions {
		e := domain.CalendarEvent{
			ID:         fmt.Sprintf("magic-%d-%d", now.UnixMilli(), i),
			Title:      s.Title,
			DayOfWeek:  domain.IntPtr(s.DayOfWeek),
			Time:       s.Time,
			Type:       domain.EventTypeWork,
			CalendarID: domain.MagicCalendarID,
			IsMagic:    true,
		}
		events = append(events, e.Normalize(true, now))
	}

	logging.Debugf("schedule suggestion returned %d events for %d pending tasks\n", len(events), len(pending))
	return events, nil
}

// Chat sends the transcript with planner context. Only providers with
// function calling get the addCalendarEvent tool.
func (g *Gateway) Chat(ctx context.Context, messages []domain.ChatMessage, tasks []domain.Task, events []domain.CalendarEvent, currentDate string) (domain.ChatReply, error) {
	if len(messages) == 0 {
		return domain.ChatReply{}, apperrors.NewInvalidInputError("messages", nil, "at least one message is required")
	}

	client, err := g.activeClient(ctx)
	if err != nil {
		return domain.ChatReply{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	tools := client.Capabilities().Tools
	reply, err := client.Chat(ctx, ChatRequest{
		System:   chatContext(tasks, events, currentDate, tools),
		Messages: messages,
		Tools:    tools,
	})
	if err != nil {
		return domain.ChatReply{}, g.upstream("chat", err)
	}
	return reply, nil
}

// EstimateDuration returns a short duration label such as "30 mins".
// Answers are cached by normalized title and concurrent requests for the
// same title share one provider call.
func (g *Gateway) EstimateDuration(ctx context.Context, title string) (string, error) {
	client, err := g.activeClient(ctx)
	if err != nil {
		return "", err
	}

	key := cache.Key(title)
	if cached, ok, err := g.cache.Get(ctx, key); err != nil {
		g.logger.Warn("estimate cache read failed", "error", err)
	} else if ok {
		logging.Debugf("estimate cache hit for %q\n", key)
		return cached, nil
	}

	// the call is shared, so a caller going away must not cancel it for
	// the others; each caller stops waiting on its own context instead
	flight := g.group.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
		defer cancel()

		text, err := client.Generate(callCtx, GenerateRequest{Prompt: estimatePrompt(title)})
		if err != nil {
			return nil, err
		}
		estimate := strings.Trim(strings.TrimSpace(text), `"`)
		if estimate == "" {
			return nil, fmt.Errorf("empty estimate")
		}

		if err := g.cache.Set(callCtx, key, estimate); err != nil {
			g.logger.Warn("estimate cache write failed", "error", err)
		}
		return estimate, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return "", g.upstream(estimateServiceName, res.Err)
		}
		if res.Shared {
			logging.Debugf("estimate for %q shared with a concurrent request\n", key)
		}
		return res.Val.(string), nil
	}
}

// activeClient returns the client for the current configuration, building it on first use
func (g *Gateway) activeClient(ctx context.Context) (Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.cfg.Enabled() {
		return nil, apperrors.NewUnavailableError("ai", disabledMessage)
	}
	if g.client == nil {
		client, err := g.factory(ctx, g.cfg)
		if err != nil {
			return nil, apperrors.NewUnavailableError("ai", err.Error())
		}
		g.client = client
	}
	return g.client, nil
}

func (g *Gateway) upstream(operation string, err error) error {
	g.logger.Error("AI request failed", "operation", operation, "error", err)
	return apperrors.NewUpstreamError(operation, err)
}
