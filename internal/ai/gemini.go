package ai

import (
	"context"
	"net/http"

	"paper2plan/internal/domain"

	"google.golang.org/genai"
)

// geminiClient is the only backend with vision, response schemas and tools
type geminiClient struct {
	client *genai.Client
	model  string
}

func newGeminiClient(ctx context.Context, cfg ProviderConfig, httpClient *http.Client) (*geminiClient, error) {
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &geminiClient{client: client, model: cfg.Model}, nil
}

func (c *geminiClient) Capabilities() Capabilities {
	return Capabilities{Vision: true, Schema: true, Tools: true}
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	var parts []*genai.Part
	if req.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType))
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt))

	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if schema := responseSchema(req.Format); schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = schema
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, config)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (c *geminiClient) Chat(ctx context.Context, req ChatRequest) (domain.ChatReply, error) {
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Tools {
		config.Tools = []*genai.Tool{{FunctionDeclarations: []*genai.FunctionDeclaration{addCalendarEventDeclaration()}}}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return domain.ChatReply{}, err
	}

	reply := domain.ChatReply{Text: resp.Text()}
	for _, fc := range resp.FunctionCalls() {
		reply.ToolCalls = append(reply.ToolCalls, domain.ToolCall{Name: fc.Name, Args: fc.Args})
	}
	return reply, nil
}

func responseSchema(format Format) *genai.Schema {
	switch format {
	case FormatExtraction:
		return &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"tasks": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"events": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"title":      {Type: genai.TypeString},
							"dayOfWeek":  {Type: genai.TypeInteger, Description: "0 for Sunday, 1 for Monday, etc."},
							"time":       {Type: genai.TypeString},
							"recurrence": {Type: genai.TypeString},
						},
					},
				},
			},
		}
	case FormatSchedule:
		return &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"newEvents": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"title":     {Type: genai.TypeString},
							"dayOfWeek": {Type: genai.TypeInteger},
							"time":      {Type: genai.TypeString},
							"reasoning": {Type: genai.TypeString, Description: "Why this slot was chosen"},
						},
						Required: []string{"title", "dayOfWeek", "time"},
					},
				},
			},
		}
	default:
		return nil
	}
}

func addCalendarEventDeclaration() *genai.FunctionDeclaration {
	types := make([]string, len(domain.EventTypes))
	for i, t := range domain.EventTypes {
		types[i] = string(t)
	}

	return &genai.FunctionDeclaration{
		Name:        domain.AddCalendarEventTool,
		Description: "Adds a new event to the user's calendar. Use this when the user explicitly asks to schedule something or add an event.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title": {Type: genai.TypeString, Description: "The name of the event"},
				"dayOfWeek": {Type: genai.TypeInteger,
					Description: "0=Sunday, 1=Monday, ..., 6=Saturday. Use this for recurring events or if a specific date isn't year-bound."},
				"date": {Type: genai.TypeString,
					Description: "Specific date in YYYY-MM-DD format. Use this if a specific date is mentioned (e.g. 'November 24th')."},
				"time": {Type: genai.TypeString,
					Description: "Time string (e.g. '14:00', '2 PM'). Defaults to 'All Day' if not specified."},
				"type": {Type: genai.TypeString, Enum: types, Description: "Category of the event"},
			},
			Required: []string{"title"},
		},
	}
}
