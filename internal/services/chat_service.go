package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"paper2plan/internal/ai"
	"paper2plan/internal/domain"
	apperrors "paper2plan/internal/errors"
	"paper2plan/internal/logging"
	"paper2plan/internal/planner"
	"paper2plan/internal/validation"
)

const (
	chatFallbackReply = "I processed your request."
	chatDefaultTime   = "All Day"
)

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	store         *planner.Store
	gateway       ai.Service
	chatValidator *validation.ChatValidator
	logger        *slog.Logger
}

// NewChatService creates a new chat service
func NewChatService(store *planner.Store, gateway ai.Service, validator *validation.Validator, logger *slog.Logger) ChatService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &chatServiceImpl{
		store:         store,
		gateway:       gateway,
		chatValidator: validation.NewChatValidator(validator),
		logger:        logger,
	}
}

func (s *chatServiceImpl) Transcript() []domain.ChatMessage {
	return s.store.Chat()
}

// Send appends the user's message, asks the assistant and applies any
// addCalendarEvent calls it makes. Provider failures do not return an
// error; they become the assistant's reply.
func (s *chatServiceImpl) Send(ctx context.Context, content string) (*ChatResult, error) {
	if err := s.chatValidator.ValidateInput(content); err != nil {
		return nil, validation.ToAppError(err)
	}

	history := s.store.AppendChat(domain.ChatMessage{ID: newID(), Role: domain.RoleUser, Content: content})
	events := s.store.Events()
	reply, err := s.gateway.Chat(ctx, history, s.store.Tasks(), events, currentDateLabel(timeNow()))
	if err != nil {
		s.logger.Warn("assistant request failed", "error", err)
		msg := domain.ChatMessage{ID: newID(), Role: domain.RoleAssistant, Content: apperrors.GetUserMessage(err)}
		return &ChatResult{
			Reply:      msg,
			Added:      []domain.CalendarEvent{},
			Transcript: s.store.AppendChat(msg),
			Failed:     true,
		}, nil
	}

	added := toolCallEvents(reply.ToolCalls)
	if len(added) > 0 {
		if _, err := s.store.MutateEvents(ctx, func(events []domain.CalendarEvent) ([]domain.CalendarEvent, error) {
			return append(events, domain.CloneEvents(added)...), nil
		}); err != nil {
			return nil, err
		}
	}

	msg := domain.ChatMessage{
		ID:      newID(),
		Role:    domain.RoleAssistant,
		Content: composeReply(strings.TrimSpace(reply.Text), len(added)),
	}
	return &ChatResult{Reply: msg, Added: added, Transcript: s.store.AppendChat(msg)}, nil
}

// composeReply builds the assistant text shown after tool calls were applied
func composeReply(text string, added int) string {
	switch {
	case added > 0 && text == "":
		return fmt.Sprintf("I've added %d event%s to your calendar.", added, plural(added))
	case added > 0:
		return fmt.Sprintf("%s\n\n(Added %d event%s to calendar)", text, added, plural(added))
	case text == "":
		return chatFallbackReply
	default:
		return text
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// toolCallEvents converts addCalendarEvent calls to personal events.
// Calls without a title are ignored.
func toolCallEvents(calls []domain.ToolCall) []domain.CalendarEvent {
	now := timeNow()
	events := []domain.CalendarEvent{}
	for _, call := range calls {
		if call.Name != domain.AddCalendarEventTool || call.Args == nil {
			continue
		}
		title := strings.TrimSpace(stringArg(call.Args, "title"))
		if title == "" {
			continue
		}

		e := domain.CalendarEvent{
			ID:         "ai-evt-" + newID(),
			Title:      title,
			Date:       stringArg(call.Args, "date"),
			Time:       stringArg(call.Args, "time"),
			Type:       domain.EventTypeWork,
			CalendarID: domain.PersonalCalendarID,
		}
		if e.Time == "" {
			e.Time = chatDefaultTime
		}
		if t, ok := domain.ParseEventType(stringArg(call.Args, "type")); ok {
			e.Type = t
		}
		if dow, ok := intArg(call.Args, "dayOfWeek"); ok {
			e.DayOfWeek = &dow
		}
		if e.Date != "" && !validation.NewValidator().IsValidDate(e.Date) {
			e.Date = ""
		}
		events = append(events, e.NormalizeInferred(now))
	}
	return events
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func intArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case float32:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	default:
		return 0, false
	}
}
