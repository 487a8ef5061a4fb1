package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"todo/internal/services"
)

// AddCommand handles the add command
type AddCommand struct {
	tasks services.TaskService
	out   io.Writer
}

// AddOptions holds the add command flags. A nil Comment means no comment.
type AddOptions struct {
	Comment *string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{tasks: app.tasks, out: app.streams.Out}
}

// Execute creates a task titled by the joined arguments
func (c *AddCommand) Execute(ctx context.Context, args []string, opts AddOptions) error {
	task, err := c.tasks.CreateTask(ctx, strings.Join(args, " "), opts.Comment)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Added %s: %s\n", task.ShortID(), task.Title)
	return nil
}
