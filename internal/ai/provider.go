// Package ai talks to the configured language model provider on behalf of
// the planner: note photo extraction, magic scheduling, chat and duration
// estimates.
package ai

import (
	"strings"

	"paper2plan/internal/config"
)

// Provider names
const (
	ProviderGemini   = "gemini"
	ProviderOpenAI   = "openai"
	ProviderClaude   = "claude"
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
	ProviderNone     = "none"
)

// DefaultModels maps each provider to the model used when none is configured
var DefaultModels = map[string]string{
	ProviderGemini:   "gemini-2.5-flash",
	ProviderOpenAI:   "gpt-4-turbo-preview",
	ProviderClaude:   "claude-3-5-sonnet-20241022",
	ProviderOllama:   "llama3.2",
	ProviderLMStudio: "local-model",
	ProviderNone:     "",
}

// DefaultBaseURLs holds the endpoints of the local providers
var DefaultBaseURLs = map[string]string{
	ProviderOllama:   "http://localhost:11434",
	ProviderLMStudio: "http://localhost:1234",
}

// ProviderConfig selects and authenticates a provider
type ProviderConfig struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey,omitempty"`
	BaseURL  string `json:"baseUrl,omitempty"`
	Model    string `json:"model,omitempty"`
}

// ProviderInfo is the public view of the active provider; it never carries the key
type ProviderInfo struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Enabled  bool   `json:"enabled"`
}

// FromConfig builds the start-up provider selection from application config
func FromConfig(cfg config.AIConfig) ProviderConfig {
	return ProviderConfig{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Model:    cfg.Model,
	}.WithDefaults()
}

// WithDefaults lowercases the provider name and fills an empty model and
// base URL from the provider defaults.
func (c ProviderConfig) WithDefaults() ProviderConfig {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = ProviderGemini
	}
	if c.Model == "" {
		c.Model = DefaultModels[c.Provider]
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURLs[c.Provider]
	}
	return c
}

// IsLocal reports whether the provider runs without an API key
func (c ProviderConfig) IsLocal() bool {
	return c.Provider == ProviderOllama || c.Provider == ProviderLMStudio
}

// Enabled reports whether AI calls can be made with this configuration
func (c ProviderConfig) Enabled() bool {
	return c.Provider != ProviderNone && (c.APIKey != "" || c.IsLocal())
}

// Info returns the public view of the configuration
func (c ProviderConfig) Info() ProviderInfo {
	return ProviderInfo{Provider: c.Provider, Model: c.Model, Enabled: c.Enabled()}
}
