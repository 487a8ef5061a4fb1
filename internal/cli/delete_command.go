package cli

import (
	"context"
	"fmt"
	"io"

	"todo/internal/services"
)

// DeleteCommand handles the rm command
type DeleteCommand struct {
	tasks services.TaskService
	out   io.Writer
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{tasks: app.tasks, out: app.streams.Out}
}

// Execute removes a task permanently
func (c *DeleteCommand) Execute(ctx context.Context, ref string) error {
	resolved, err := resolveRef(ctx, c.tasks, ref)
	if err != nil {
		return err
	}

	deleted, err := c.tasks.DeleteTask(ctx, resolved.ID)
	if err != nil {
		return err
	}

	switch {
	case !deleted:
		fmt.Fprintf(c.out, "Task %s was already deleted\n", resolved.ShortID())
	case resolved.Task != nil:
		fmt.Fprintf(c.out, "Deleted %s: %s\n", resolved.ShortID(), resolved.Task.Title)
	default:
		fmt.Fprintf(c.out, "Deleted %s\n", resolved.ShortID())
	}
	return nil
}
