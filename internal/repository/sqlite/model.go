package sqlite

import (
	"time"

	"github.com/google/uuid"
)

// Task is a row of the tasks table as seen by callers of the store.
type Task struct {
	ID          uuid.UUID
	Title       string
	Comment     *string // nil when the task has no comment
	IsCompleted bool
	DateCreated time.Time
}
