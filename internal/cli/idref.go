package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"todo/internal/domain"
	"todo/internal/errors"
	"todo/internal/services"
)

// taskRef is a task id given on the command line. Task is set when the id had
// to be looked up in the task list.
type taskRef struct {
	ID   uuid.UUID
	Task *domain.Task
}

// ShortID returns the id as listings show it.
func (r taskRef) ShortID() string {
	return r.ID.String()[:domain.ShortIDLength]
}

// resolveRef turns ref into a task id. A full UUID is taken as is, without
// touching the store, so the operation that follows reports its own failure.
// Anything else must be the start of exactly one id; listings show the first
// eight characters, which is usually enough.
func resolveRef(ctx context.Context, tasks services.TaskService, ref string) (taskRef, error) {
	needle := strings.ToLower(strings.TrimSpace(ref))
	if needle == "" {
		return taskRef{}, errors.NewInvalidInputError("id", ref, "id cannot be empty")
	}

	if id, err := uuid.Parse(needle); err == nil {
		return taskRef{ID: id}, nil
	}

	all, err := tasks.ListTasks(ctx, false)
	if err != nil {
		return taskRef{}, err
	}

	var matches []*domain.Task
	for _, task := range all {
		if strings.HasPrefix(task.ID.String(), needle) {
			matches = append(matches, task)
		}
	}

	switch len(matches) {
	case 0:
		return taskRef{}, errors.NewInvalidInputError("id", ref, "no task matches this id")
	case 1:
		return taskRef{ID: matches[0].ID, Task: matches[0]}, nil
	default:
		return taskRef{}, errors.NewInvalidInputError("id", ref,
			fmt.Sprintf("%d tasks match this id, give more characters", len(matches)))
	}
}

// resolveTask resolves ref and returns the task it names. A full UUID is read
// with FetchTask.
func resolveTask(ctx context.Context, tasks services.TaskService, ref string) (*domain.Task, error) {
	resolved, err := resolveRef(ctx, tasks, ref)
	if err != nil {
		return nil, err
	}
	if resolved.Task != nil {
		return resolved.Task, nil
	}
	return tasks.FetchTask(ctx, resolved.ID)
}
