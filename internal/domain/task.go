package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShortIDLength is the number of id characters shown in listings.
const ShortIDLength = 8

// Task represents a to-do item in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID          uuid.UUID
	Title       string
	Comment     *string
	IsCompleted bool
	DateCreated time.Time
}

// HasComment reports whether the task carries a non-empty comment.
func (t Task) HasComment() bool {
	return t.Comment != nil && *t.Comment != ""
}

// CommentText returns the comment, or an empty string when there is none.
func (t Task) CommentText() string {
	if t.Comment == nil {
		return ""
	}
	return *t.Comment
}

// ShortID returns the leading characters of the id for display purposes.
func (t Task) ShortID() string {
	return t.ID.String()[:ShortIDLength]
}

// Status returns "done" for completed tasks and "open" otherwise.
func (t Task) Status() string {
	if t.IsCompleted {
		return "done"
	}
	return "open"
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
