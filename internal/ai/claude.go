package ai

import (
	"context"
	"net/http"
	"strings"

	"paper2plan/internal/domain"
)

const (
	claudeBaseURL    = "https://api.anthropic.com"
	claudeAPIVersion = "2023-06-01"
	claudeMaxTokens  = 4096
)

type claudeClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
}

type claudeRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system,omitempty"`
	Messages  []wireMessage `json:"messages"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func newClaudeClient(httpClient *http.Client, baseURL, apiKey, model string) *claudeClient {
	return &claudeClient{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

func (c *claudeClient) Capabilities() Capabilities {
	return Capabilities{}
}

func (c *claudeClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	return c.send(ctx, req.System, []domain.ChatMessage{{Role: domain.RoleUser, Content: req.Prompt}})
}

func (c *claudeClient) Chat(ctx context.Context, req ChatRequest) (domain.ChatReply, error) {
	text, err := c.send(ctx, req.System, req.Messages)
	if err != nil {
		return domain.ChatReply{}, err
	}
	return domain.ChatReply{Text: text}, nil
}

// send puts the system prompt in its own field; the messages API rejects a system role
func (c *claudeClient) send(ctx context.Context, system string, messages []domain.ChatMessage) (string, error) {
	body := claudeRequest{
		Model:     c.model,
		MaxTokens: claudeMaxTokens,
		System:    system,
		Messages:  toWireMessages("", messages),
	}
	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": claudeAPIVersion,
	}

	var resp claudeResponse
	if err := postJSON(ctx, c.http, c.baseURL+"/v1/messages", headers, body, &resp); err != nil {
		return "", err
	}
	for _, block := range resp.Content {
		if block.Type == "" || block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", nil
}
