package cli

import (
	"context"
	"strings"

	"paper2plan/internal/domain"
	"paper2plan/internal/errors"
)

// TaskAddCommand handles "task add"
type TaskAddCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskAddCommand creates a new task add handler
func NewTaskAddCommand(app *App) *TaskAddCommand {
	return &TaskAddCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute adds a task titled with the joined arguments
func (c *TaskAddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "task add", "usage: p2p task add \"your task\"")
	}
	svc, err := c.app.services()
	if err != nil {
		return err
	}

	task, err := svc.TaskService.Create(ctx, strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}
	c.app.printf("Added task: %s\n", task.Title)
	return nil
}

// TaskListCommand handles "task list"
type TaskListCommand struct {
	app *App

	// ShowIDs prints the stored id next to each task
	ShowIDs bool
}

// NewTaskListCommand creates a new task list handler
func NewTaskListCommand(app *App) *TaskListCommand {
	return &TaskListCommand{app: app}
}

// Execute prints the numbered task list
func (c *TaskListCommand) Execute(ctx context.Context, args []string) error {
	svc, err := c.app.services()
	if err != nil {
		return err
	}

	tasks := svc.TaskService.List()
	if len(tasks) == 0 {
		c.app.printf("No tasks found\n")
		return nil
	}
	for i, t := range tasks {
		line := formatTask(t)
		if c.ShowIDs {
			line += "  " + t.ID
		}
		c.app.printf("%2d. %s\n", i+1, line)
	}
	return nil
}

// TaskRenameCommand handles "task rename"
type TaskRenameCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskRenameCommand creates a new task rename handler
func NewTaskRenameCommand(app *App) *TaskRenameCommand {
	return &TaskRenameCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute renames a task. A blank title deletes it, like clearing it in the list.
func (c *TaskRenameCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "task rename", "usage: p2p task rename <task> \"new title\"")
	}
	svc, err := c.app.services()
	if err != nil {
		return err
	}
	task, err := resolveTask(svc.TaskService.List(), args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	renamed, err := svc.TaskService.Rename(ctx, task.ID, strings.Join(args[1:], " "))
	if err != nil {
		return c.errorHandler.Handle("rename task", err)
	}
	if renamed == nil {
		c.app.printf("Deleted task: %s\n", task.Title)
		return nil
	}
	c.app.printf("Renamed task: %s -> %s\n", task.Title, renamed.Title)
	return nil
}

// TaskDoneCommand handles "task done"
type TaskDoneCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskDoneCommand creates a new task done handler
func NewTaskDoneCommand(app *App) *TaskDoneCommand {
	return &TaskDoneCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute toggles the completed flag
func (c *TaskDoneCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "task done", "usage: p2p task done <task>")
	}
	svc, err := c.app.services()
	if err != nil {
		return err
	}
	task, err := resolveTask(svc.TaskService.List(), args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	updated, err := svc.TaskService.ToggleComplete(ctx, task.ID)
	if err != nil {
		return c.errorHandler.Handle("complete task", err)
	}
	if updated.Completed {
		c.app.printf("Completed task: %s\n", updated.Title)
	} else {
		c.app.printf("Reopened task: %s\n", updated.Title)
	}
	return nil
}

// TaskTimerCommand handles "task timer"
type TaskTimerCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskTimerCommand creates a new task timer handler
func NewTaskTimerCommand(app *App) *TaskTimerCommand {
	return &TaskTimerCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute starts or pauses the task timer. Seconds accrue while "p2p serve" runs.
func (c *TaskTimerCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "task timer", "usage: p2p task timer <task>")
	}
	svc, err := c.app.services()
	if err != nil {
		return err
	}
	task, err := resolveTask(svc.TaskService.List(), args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	updated, err := svc.TaskService.ToggleTimer(ctx, task.ID)
	if err != nil {
		return c.errorHandler.Handle("toggle timer", err)
	}
	if updated.IsTimerRunning {
		c.app.printf("Timer started: %s\n", updated.Title)
	} else {
		c.app.printf("Timer paused: %s (%s)\n", updated.Title, domain.FormatElapsed(updated.ActualTime))
	}
	return nil
}

// TaskDeleteCommand handles "task delete"
type TaskDeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskDeleteCommand creates a new task delete handler
func NewTaskDeleteCommand(app *App) *TaskDeleteCommand {
	return &TaskDeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute deletes a task
func (c *TaskDeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "task delete", "usage: p2p task delete <task>")
	}
	svc, err := c.app.services()
	if err != nil {
		return err
	}
	task, err := resolveTask(svc.TaskService.List(), args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	if err := svc.TaskService.Delete(ctx, task.ID); err != nil {
		return c.errorHandler.Handle("delete task", err)
	}
	c.app.printf("Deleted task: %s\n", task.Title)
	return nil
}

// TaskEstimateCommand handles "task estimate"
type TaskEstimateCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewTaskEstimateCommand creates a new task estimate handler
func NewTaskEstimateCommand(app *App) *TaskEstimateCommand {
	return &TaskEstimateCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute asks the AI provider for a duration estimate and stores it on the task
func (c *TaskEstimateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "task estimate", "usage: p2p task estimate <task>")
	}
	svc, err := c.app.services()
	if err != nil {
		return err
	}
	task, err := resolveTask(svc.TaskService.List(), args[0])
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	updated, err := svc.TaskService.Estimate(ctx, task.ID)
	if err != nil {
		return c.errorHandler.Handle("estimate task", err)
	}
	c.app.printf("Estimated %s: %s\n", updated.Title, updated.EstimatedTime)
	return nil
}
