package cli

import (
	"context"
	"sort"
	"strings"

	"paper2plan/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands. Subcommands are
// registered under their full path, e.g. "task add".
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	registry.Register("task add", NewTaskAddCommand(app))
	registry.Register("task list", NewTaskListCommand(app))
	registry.Register("task rename", NewTaskRenameCommand(app))
	registry.Register("task done", NewTaskDoneCommand(app))
	registry.Register("task timer", NewTaskTimerCommand(app))
	registry.Register("task delete", NewTaskDeleteCommand(app))
	registry.Register("task estimate", NewTaskEstimateCommand(app))

	registry.Register("event add", NewEventAddCommand(app))
	registry.Register("event edit", NewEventEditCommand(app))
	registry.Register("event list", NewEventListCommand(app))
	registry.Register("event delete", NewEventDeleteCommand(app))
	registry.Register("event drop", NewEventDropCommand(app))

	registry.Register("calendar list", NewCalendarListCommand(app))
	registry.Register("calendar toggle", NewCalendarToggleCommand(app))
	registry.Register("theme", NewThemeCommand(app))

	registry.Register("import", NewImportCommand(app))
	registry.Register("magic", NewMagicCommand(app))
	registry.Register("chat", NewChatCommand(app))

	registry.Register("export ics", NewExportICSCommand(app))
	registry.Register("export google", NewExportGoogleCommand(app))
	registry.Register("print", NewPrintCommand(app))

	registry.Register("provider", NewProviderCommand(app))
	registry.Register("status", NewStatusCommand(app))
	registry.Register("week", NewWeekCommand(app))
	registry.Register("serve", NewServeCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Lookup returns the command registered under name
func (r *CommandRegistry) Lookup(name string) (Command, bool) {
	command, ok := r.commands[name]
	return command, ok
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return "usage: p2p <command> [args]\ncommands:\n  " + strings.Join(names, "\n  ")
}

// handler returns the registered command with its concrete type so the
// cobra layer can bind flags to it
func handler[T Command](r *CommandRegistry, name string) T {
	command, ok := r.commands[name]
	if !ok {
		panic("cli: no command registered as " + name)
	}
	return command.(T)
}
