package ai

import (
	"context"
	"fmt"
	"net/http"

	"paper2plan/internal/domain"
)

// Format asks the provider for a particular response shape
type Format int

const (
	// FormatText is free text
	FormatText Format = iota
	// FormatExtraction is a JSON ExtractedData object
	FormatExtraction
	// FormatSchedule is a JSON object with a newEvents array
	FormatSchedule
)

// Image is an inline image attached to a prompt
type Image struct {
	MIMEType string
	Data     []byte
}

// GenerateRequest is a single-shot prompt
type GenerateRequest struct {
	System string
	Prompt string
	Image  *Image
	Format Format
}

// ChatRequest is a multi-turn conversation
type ChatRequest struct {
	System   string
	Messages []domain.ChatMessage
	Tools    bool
}

// Capabilities lists what a provider can do beyond plain text
type Capabilities struct {
	Vision bool // inline images
	Schema bool // enforced JSON response schema
	Tools  bool // function calling
}

// Client is one provider backend
type Client interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	Chat(ctx context.Context, req ChatRequest) (domain.ChatReply, error)
	Capabilities() Capabilities
}

// Factory builds a Client for a provider configuration
type Factory func(ctx context.Context, cfg ProviderConfig) (Client, error)

// NewFactory returns the Factory used in production; httpClient is shared
// by every provider.
func NewFactory(httpClient *http.Client) Factory {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return func(ctx context.Context, cfg ProviderConfig) (Client, error) {
		switch cfg.Provider {
		case ProviderGemini:
			return newGeminiClient(ctx, cfg, httpClient)
		case ProviderOpenAI:
			baseURL := cfg.BaseURL
			if baseURL == "" {
				baseURL = openAIBaseURL
			}
			return newOpenAIClient(httpClient, baseURL, cfg.APIKey, cfg.Model), nil
		case ProviderLMStudio:
			return newOpenAIClient(httpClient, cfg.BaseURL, "", cfg.Model), nil
		case ProviderClaude:
			baseURL := cfg.BaseURL
			if baseURL == "" {
				baseURL = claudeBaseURL
			}
			return newClaudeClient(httpClient, baseURL, cfg.APIKey, cfg.Model), nil
		case ProviderOllama:
			return newOllamaClient(httpClient, cfg.BaseURL, cfg.Model), nil
		default:
			return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
		}
	}
}
