package services

import (
	"context"

	"github.com/google/uuid"

	"todo/internal/domain"
)

// TaskValidator checks task content before it reaches the store. A nil
// comment means the task has none.
type TaskValidator interface {
	ValidateTask(title string, comment *string) error
}

// TaskService handles the task lifecycle. Every error it returns is an
// *errors.AppError carrying one of the domain kinds; storage details are
// logged and never returned.
type TaskService interface {
	// Task mutations
	CreateTask(ctx context.Context, title string, comment *string) (*domain.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, title string, comment *string) (*domain.Task, error)
	ToggleTaskStatus(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) (bool, error)

	// Task queries
	FetchTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListTasks(ctx context.Context, includeOnlyIncomplete bool) ([]*domain.Task, error)
	SearchTasks(ctx context.Context, query string, includeOnlyIncomplete bool) ([]*domain.Task, error)

	// ListTasksForDisplay searches (or lists, for a blank query) and orders
	// incomplete tasks ahead of completed ones.
	ListTasksForDisplay(ctx context.Context, query string, includeOnlyIncomplete bool) ([]*domain.Task, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskService TaskService
}
