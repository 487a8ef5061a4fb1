package cli

import (
	"context"
	"io"

	"todo/internal/services"
)

// ListCommand handles the list and search commands
type ListCommand struct {
	tasks         services.TaskService
	out           io.Writer
	defaultFormat string
}

// ListOptions holds the list and search flags
type ListOptions struct {
	Query          string
	IncompleteOnly bool
	Format         string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		tasks:         app.tasks,
		out:           app.streams.Out,
		defaultFormat: app.config.Commands.ListDefaultFormat,
	}
}

// Execute prints the matching tasks, incomplete ones first. An empty query
// lists every task.
func (c *ListCommand) Execute(ctx context.Context, opts ListOptions) error {
	format := opts.Format
	if format == "" {
		format = c.defaultFormat
	}

	tasks, err := c.tasks.ListTasksForDisplay(ctx, opts.Query, opts.IncompleteOnly)
	if err != nil {
		return err
	}

	return writeTasks(c.out, format, tasks, timeNow())
}
