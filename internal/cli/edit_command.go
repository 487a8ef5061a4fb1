package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"todo/internal/domain"
	"todo/internal/services"
)

// EditCommand handles the edit command
type EditCommand struct {
	tasks services.TaskService
	out   io.Writer
}

// EditOptions holds the edit command flags. Nil fields keep the current value.
type EditOptions struct {
	Title        *string
	Comment      *string
	ClearComment bool
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{tasks: app.tasks, out: app.streams.Out}
}

// Execute changes the title and comment of a task. The completion status is
// left alone; see DoneCommand.
func (c *EditCommand) Execute(ctx context.Context, ref string, opts EditOptions) error {
	task, err := resolveTask(ctx, c.tasks, ref)
	if err != nil {
		return err
	}

	title := task.Title
	if opts.Title != nil {
		title = *opts.Title
	}

	comment := task.Comment
	switch {
	case opts.ClearComment:
		comment = nil
	case opts.Comment != nil:
		comment = opts.Comment
	}

	if !contentChanged(task, title, comment) {
		fmt.Fprintln(c.out, "No changes to save.")
		return nil
	}

	updated, err := c.tasks.UpdateTask(ctx, task.ID, title, comment)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Updated %s: %s\n", updated.ShortID(), updated.Title)
	return nil
}

// contentChanged compares the way the service stores content: trimmed title,
// empty comment as none.
func contentChanged(task *domain.Task, title string, comment *string) bool {
	if strings.TrimSpace(title) != task.Title {
		return true
	}
	newComment := ""
	if comment != nil {
		newComment = *comment
	}
	return newComment != task.CommentText()
}
