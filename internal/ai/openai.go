package ai

import (
	"context"
	"net/http"
	"strings"

	"paper2plan/internal/domain"
)

const openAIBaseURL = "https://api.openai.com"

// openAIClient speaks the chat completions API, which LM Studio also serves
type openAIClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
}

type openAIRequest struct {
	Model          string            `json:"model"`
	Messages       []wireMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message wireMessage `json:"message"`
	} `json:"choices"`
}

func newOpenAIClient(httpClient *http.Client, baseURL, apiKey, model string) *openAIClient {
	return &openAIClient{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

func (c *openAIClient) Capabilities() Capabilities {
	return Capabilities{}
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	body := openAIRequest{
		Model:    c.model,
		Messages: toWireMessages(req.System, []domain.ChatMessage{{Role: domain.RoleUser, Content: req.Prompt}}),
	}
	// LM Studio models do not all support JSON mode
	if req.Format != FormatText && c.apiKey != "" {
		body.ResponseFormat = map[string]string{"type": "json_object"}
	}
	return c.complete(ctx, body)
}

func (c *openAIClient) Chat(ctx context.Context, req ChatRequest) (domain.ChatReply, error) {
	text, err := c.complete(ctx, openAIRequest{
		Model:    c.model,
		Messages: toWireMessages(req.System, req.Messages),
	})
	if err != nil {
		return domain.ChatReply{}, err
	}
	return domain.ChatReply{Text: text}, nil
}

func (c *openAIClient) complete(ctx context.Context, body openAIRequest) (string, error) {
	headers := map[string]string{}
	if c.apiKey != "" {
		headers["Authorization"] = "Bearer " + c.apiKey
	}

	var resp openAIResponse
	if err := postJSON(ctx, c.http, c.baseURL+"/v1/chat/completions", headers, body, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
