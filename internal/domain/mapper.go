package domain

import (
	"todo/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(domainTask *Task) *sqlite.Task {
	if domainTask == nil {
		return nil
	}
	return &sqlite.Task{
		ID:          domainTask.ID,
		Title:       domainTask.Title,
		Comment:     copyString(domainTask.Comment),
		IsCompleted: domainTask.IsCompleted,
		DateCreated: domainTask.DateCreated,
	}
}

// FromDatabase converts a database Task to a domain Task.
// A nil database task maps to nil.
func (m *TaskMapper) FromDatabase(dbTask *sqlite.Task) *Task {
	if dbTask == nil {
		return nil
	}
	return &Task{
		ID:          dbTask.ID,
		Title:       dbTask.Title,
		Comment:     copyString(dbTask.Comment),
		IsCompleted: dbTask.IsCompleted,
		DateCreated: dbTask.DateCreated,
	}
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
// The result is never nil.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []*Task {
	domainTasks := make([]*Task, len(dbTasks))
	for i, task := range dbTasks {
		domainTasks[i] = m.FromDatabase(task)
	}
	return domainTasks
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task *TaskMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task: NewTaskMapper(),
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
