package errors

import (
	"fmt"

	"todo/internal/limits"
)

var userMessages = map[Kind]string{
	KindCreateFailed:          "Can't create new task, try again",
	KindUpdateFailed:          "Can't update task",
	KindDeleteFailed:          "Couldn't remove task from storage",
	KindFetchAllFailed:        "Can't fetch tasks from storage",
	KindFetchIncompleteFailed: "Can't fetch incomplete tasks from storage",
	KindFetchByIDFailed:       "Couldn't fetch task from storage",
	KindSearchFailed:          "Can't search tasks in storage",
	KindEmptyTitle:            "Task title is empty",
	KindTitleTooLong:          fmt.Sprintf("Task title should be at most %d characters", limits.MaxTitleLength),
	KindCommentTooLong:        fmt.Sprintf("Task comment should be at most %d characters", limits.MaxCommentLength),
	KindUnknown:               "Some unknown error occurred, please try again",
}

// UserMessage returns the static sentence shown to the user for kind.
func UserMessage(kind Kind) string {
	if msg, ok := userMessages[kind]; ok {
		return msg
	}
	return userMessages[KindUnknown]
}
