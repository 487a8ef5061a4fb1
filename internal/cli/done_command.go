package cli

import (
	"context"
	"fmt"
	"io"

	"todo/internal/services"
)

// DoneCommand handles the done command
type DoneCommand struct {
	tasks services.TaskService
	out   io.Writer
}

// NewDoneCommand creates a new done command handler
func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{tasks: app.tasks, out: app.streams.Out}
}

// Execute flips the completion status of a task
func (c *DoneCommand) Execute(ctx context.Context, ref string) error {
	resolved, err := resolveRef(ctx, c.tasks, ref)
	if err != nil {
		return err
	}

	toggled, err := c.tasks.ToggleTaskStatus(ctx, resolved.ID)
	if err != nil {
		return err
	}

	if toggled.IsCompleted {
		fmt.Fprintf(c.out, "Completed %s: %s\n", toggled.ShortID(), toggled.Title)
	} else {
		fmt.Fprintf(c.out, "Reopened %s: %s\n", toggled.ShortID(), toggled.Title)
	}
	return nil
}
