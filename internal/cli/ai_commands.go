package cli

import (
	"context"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"paper2plan/internal/domain"
	"paper2plan/internal/errors"
)

// ImportCommand handles "import"
type ImportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewImportCommand creates a new import handler
func NewImportCommand(app *App) *ImportCommand {
	return &ImportCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute reads a photo of handwritten notes and appends what the AI finds
func (c *ImportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "import", "usage: p2p import <image file>")
	}
	svc, err := c.app.services()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return c.errorHandler.Handle("read image", err)
	}

	result, err := svc.ImportService.ImportBytes(ctx, imageType(args[0], data), data)
	if err != nil {
		return c.errorHandler.Handle("import notes", err)
	}

	c.app.printf("Imported %s and %s\n", plural(len(result.Tasks), "task"), plural(len(result.Events), "event"))
	for _, t := range result.Tasks {
		c.app.printf("  task:  %s\n", t.Title)
	}
	calendars := svc.CalendarService.List()
	for _, e := range result.Events {
		c.app.printf("  event: %s\n", formatEvent(e, calendars))
	}
	return nil
}

// imageType sniffs the content and falls back to the file extension
func imageType(path string, data []byte) string {
	if sniffed := http.DetectContentType(data); strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return strings.SplitN(byExt, ";", 2)[0]
	}
	return "application/octet-stream"
}

// MagicCommand handles "magic"
type MagicCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewMagicCommand creates a new magic schedule handler
func NewMagicCommand(app *App) *MagicCommand {
	return &MagicCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute asks the AI to place every open task into the week
func (c *MagicCommand) Execute(ctx context.Context, args []string) error {
	svc, err := c.app.services()
	if err != nil {
		return err
	}

	result, err := svc.ScheduleService.MagicSchedule(ctx)
	if err != nil {
		return c.errorHandler.Handle("schedule tasks", err)
	}

	c.app.printf("Scheduled %s\n", plural(len(result.Added), "event"))
	calendars := svc.CalendarService.List()
	for _, e := range result.Added {
		c.app.printf("  %s\n", formatEvent(e, calendars))
	}
	return nil
}

// ChatCommand handles "chat"
type ChatCommand struct {
	app          *App
	errorHandler *ErrorHandler

	// History prints the whole transcript instead of the reply only
	History bool
}

// NewChatCommand creates a new chat handler
func NewChatCommand(app *App) *ChatCommand {
	return &ChatCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute sends one message to the assistant. Without a message it
// prints the transcript.
func (c *ChatCommand) Execute(ctx context.Context, args []string) error {
	svc, err := c.app.services()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		c.printTranscript(svc.ChatService.Transcript())
		return nil
	}

	result, err := svc.ChatService.Send(ctx, strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle("send message", err)
	}

	if c.History {
		c.printTranscript(result.Transcript)
	} else {
		c.app.printf("%s\n", result.Reply.Content)
	}

	calendars := svc.CalendarService.List()
	for _, e := range result.Added {
		c.app.printf("  added: %s\n", formatEvent(e, calendars))
	}
	return nil
}

func (c *ChatCommand) printTranscript(transcript []domain.ChatMessage) {
	for _, m := range transcript {
		c.app.printf("%s: %s\n", m.Role, m.Content)
	}
}
