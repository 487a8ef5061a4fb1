package cli

import (
	"context"
	"io"

	"todo/internal/services"
)

// ShowCommand handles the show command
type ShowCommand struct {
	tasks services.TaskService
	out   io.Writer
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{tasks: app.tasks, out: app.streams.Out}
}

// Execute prints the details of one task
func (c *ShowCommand) Execute(ctx context.Context, ref string) error {
	resolved, err := resolveRef(ctx, c.tasks, ref)
	if err != nil {
		return err
	}

	// Read it back so the output reflects the store, not the listing
	task, err := c.tasks.FetchTask(ctx, resolved.ID)
	if err != nil {
		return err
	}

	return writeTaskDetail(c.out, task, timeNow())
}
