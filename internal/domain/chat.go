package domain

// Chat roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the assistant transcript
type ChatMessage struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Greeting opens every new transcript
func Greeting() ChatMessage {
	return ChatMessage{
		ID:      "0",
		Role:    RoleAssistant,
		Content: "Hi! I can help you plan your tasks, estimate time, or add events to your calendar.",
	}
}

// ToolCall is a structured action requested by the model
type ToolCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// ChatReply is the model's answer to a chat turn
type ChatReply struct {
	Text      string     `json:"text"`
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
}

// AddCalendarEventTool is the only tool the assistant may call
const AddCalendarEventTool = "addCalendarEvent"
