package ai

import (
	"context"
	"net/http"
	"strings"

	"paper2plan/internal/domain"
)

type ollamaClient struct {
	http    *http.Client
	baseURL string
	model   string
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Format string `json:"format,omitempty"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type ollamaChatResponse struct {
	Message wireMessage `json:"message"`
}

func newOllamaClient(httpClient *http.Client, baseURL, model string) *ollamaClient {
	return &ollamaClient{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
	}
}

func (c *ollamaClient) Capabilities() Capabilities {
	return Capabilities{}
}

func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	body := ollamaGenerateRequest{
		Model:  c.model,
		Prompt: req.Prompt,
		System: req.System,
	}
	if req.Format != FormatText {
		body.Format = "json"
	}

	var resp ollamaGenerateResponse
	if err := postJSON(ctx, c.http, c.baseURL+"/api/generate", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

func (c *ollamaClient) Chat(ctx context.Context, req ChatRequest) (domain.ChatReply, error) {
	body := ollamaChatRequest{
		Model:    c.model,
		Messages: toWireMessages(req.System, req.Messages),
	}

	var resp ollamaChatResponse
	if err := postJSON(ctx, c.http, c.baseURL+"/api/chat", nil, body, &resp); err != nil {
		return domain.ChatReply{}, err
	}
	return domain.ChatReply{Text: resp.Message.Content}, nil
}
