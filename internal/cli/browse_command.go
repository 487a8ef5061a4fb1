package cli

import (
	"context"

	"todo/internal/services"
	"todo/internal/ui"
)

// BrowseCommand handles the interactive browse command
type BrowseCommand struct {
	tasks   services.TaskService
	streams IOStreams
}

// NewBrowseCommand creates a new browse command handler
func NewBrowseCommand(app *App) *BrowseCommand {
	return &BrowseCommand{tasks: app.tasks, streams: app.streams}
}

// Execute runs the browser until the user quits
func (c *BrowseCommand) Execute(ctx context.Context, opts ListOptions) error {
	return ui.RunBrowser(ctx, c.tasks, ui.Options{
		Query:          opts.Query,
		IncompleteOnly: opts.IncompleteOnly,
		Input:          c.streams.In,
		Output:         c.streams.Out,
	})
}
