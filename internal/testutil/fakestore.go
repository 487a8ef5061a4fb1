// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"todo/internal/domain"
	"todo/internal/errors"
	"todo/internal/repository/sqlite"
)

// Operation names used for call counting.
const (
	OpCreate          = "Create"
	OpFetchByID       = "FetchByID"
	OpUpdate          = "Update"
	OpToggleStatus    = "ToggleStatus"
	OpDelete          = "Delete"
	OpFetchAll        = "FetchAll"
	OpFetchIncomplete = "FetchIncomplete"
	OpSearch          = "Search"
)

// FakeStore is an in-memory implementation of sqlite.Repository for testing.
// Tasks are kept in creation order. Every operation is counted, and any
// operation can be made to fail by setting the matching error field.
type FakeStore struct {
	mu     sync.Mutex
	tasks  []*sqlite.Task
	calls  map[string]int
	closed bool

	// Now supplies creation times; defaults to time.Now.
	Now func() time.Time

	// Error injection for testing
	CreateErr          error
	FetchByIDErr       error
	UpdateErr          error
	ToggleStatusErr    error
	DeleteErr          error
	FetchAllErr        error
	FetchIncompleteErr error
	SearchErr          error
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		calls: make(map[string]int),
		Now:   time.Now,
	}
}

// Seed adds tasks directly, bypassing call counting. Tasks without an id or
// creation date get one.
func (f *FakeStore) Seed(tasks ...*domain.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()

	mapper := domain.NewTaskMapper()
	for _, task := range tasks {
		row := mapper.ToDatabase(task)
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		if row.DateCreated.IsZero() {
			row.DateCreated = f.Now().UTC()
		}
		f.tasks = append(f.tasks, row)
	}
}

// Calls returns how many times op was invoked.
func (f *FakeStore) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// TotalCalls returns the number of store operations invoked so far.
func (f *FakeStore) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// ResetCalls clears the call counters.
func (f *FakeStore) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = make(map[string]int)
}

// Len returns the number of stored tasks.
func (f *FakeStore) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

// Closed reports whether Close was called.
func (f *FakeStore) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Create implements sqlite.Repository.
func (f *FakeStore) Create(ctx context.Context, title string, comment *string, isCompleted bool) (*sqlite.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[OpCreate]++

	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	task := &sqlite.Task{
		ID:          uuid.New(),
		Title:       title,
		Comment:     copyString(comment),
		IsCompleted: isCompleted,
		DateCreated: f.Now().UTC(),
	}
	f.tasks = append(f.tasks, task)
	return cloneTask(task), nil
}

// FetchByID implements sqlite.Repository.
func (f *FakeStore) FetchByID(ctx context.Context, id uuid.UUID) (*sqlite.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[OpFetchByID]++

	if f.FetchByIDErr != nil {
		return nil, f.FetchByIDErr
	}

	i := f.indexOf(id)
	if i < 0 {
		return nil, notFound(id)
	}
	return cloneTask(f.tasks[i]), nil
}

// Update implements sqlite.Repository.
func (f *FakeStore) Update(ctx context.Context, id uuid.UUID, title string, comment *string, isCompleted *bool) (*sqlite.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[OpUpdate]++

	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}

	i := f.indexOf(id)
	if i < 0 {
		return nil, notFound(id)
	}

	task := f.tasks[i]
	task.Title = title
	task.Comment = copyString(comment)
	if isCompleted != nil {
		task.IsCompleted = *isCompleted
	}
	return cloneTask(task), nil
}

// ToggleStatus implements sqlite.Repository.
func (f *FakeStore) ToggleStatus(ctx context.Context, id uuid.UUID) (*sqlite.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[OpToggleStatus]++

	if f.ToggleStatusErr != nil {
		return nil, f.ToggleStatusErr
	}

	i := f.indexOf(id)
	if i < 0 {
		return nil, notFound(id)
	}

	f.tasks[i].IsCompleted = !f.tasks[i].IsCompleted
	return cloneTask(f.tasks[i]), nil
}

// Delete implements sqlite.Repository.
func (f *FakeStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[OpDelete]++

	if f.DeleteErr != nil {
		return false, f.DeleteErr
	}

	i := f.indexOf(id)
	if i < 0 {
		return false, notFound(id)
	}

	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return true, nil
}

// FetchAll implements sqlite.Repository.
func (f *FakeStore) FetchAll(ctx context.Context) ([]*sqlite.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[OpFetchAll]++

	if f.FetchAllErr != nil {
		return nil, f.FetchAllErr
	}
	return f.filter(func(*sqlite.Task) bool { return true }), nil
}

// FetchIncomplete implements sqlite.Repository.
func (f *FakeStore) FetchIncomplete(ctx context.Context) ([]*sqlite.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[OpFetchIncomplete]++

	if f.FetchIncompleteErr != nil {
		return nil, f.FetchIncompleteErr
	}
	return f.filter(func(task *sqlite.Task) bool { return !task.IsCompleted }), nil
}

// Search implements sqlite.Repository with the same folding rules as the
// SQLite store.
func (f *FakeStore) Search(ctx context.Context, titleSubstring string, incompleteOnly bool) ([]*sqlite.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[OpSearch]++

	if f.SearchErr != nil {
		return nil, f.SearchErr
	}

	needle := sqlite.SearchKey(titleSubstring)
	return f.filter(func(task *sqlite.Task) bool {
		if incompleteOnly && task.IsCompleted {
			return false
		}
		return strings.Contains(sqlite.SearchKey(task.Title), needle)
	}), nil
}

// Close implements sqlite.Repository.
func (f *FakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *FakeStore) indexOf(id uuid.UUID) int {
	for i, task := range f.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeStore) filter(keep func(*sqlite.Task) bool) []*sqlite.Task {
	result := make([]*sqlite.Task, 0, len(f.tasks))
	for _, task := range f.tasks {
		if keep(task) {
			result = append(result, cloneTask(task))
		}
	}
	return result
}

func notFound(id uuid.UUID) error {
	return errors.NewNotFoundError("task", id.String())
}

func cloneTask(task *sqlite.Task) *sqlite.Task {
	clone := *task
	clone.Comment = copyString(task.Comment)
	return &clone
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

var _ sqlite.Repository = (*FakeStore)(nil)
