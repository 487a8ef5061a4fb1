package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// timeoutRepository bounds every store call with a deadline.
type timeoutRepository struct {
	Repository
	timeout time.Duration
}

// WithQueryTimeout wraps repo so each call runs under its own deadline of
// timeout. A non-positive timeout returns repo unchanged.
func WithQueryTimeout(repo Repository, timeout time.Duration) Repository {
	if timeout <= 0 {
		return repo
	}
	return &timeoutRepository{Repository: repo, timeout: timeout}
}

func (r *timeoutRepository) Create(ctx context.Context, title string, comment *string, isCompleted bool) (*Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.Repository.Create(ctx, title, comment, isCompleted)
}

func (r *timeoutRepository) FetchByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.Repository.FetchByID(ctx, id)
}

func (r *timeoutRepository) FetchAll(ctx context.Context) ([]*Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.Repository.FetchAll(ctx)
}

func (r *timeoutRepository) FetchIncomplete(ctx context.Context) ([]*Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.Repository.FetchIncomplete(ctx)
}

func (r *timeoutRepository) Search(ctx context.Context, titleSubstring string, incompleteOnly bool) ([]*Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.Repository.Search(ctx, titleSubstring, incompleteOnly)
}

func (r *timeoutRepository) Update(ctx context.Context, id uuid.UUID, title string, comment *string, isCompleted *bool) (*Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.Repository.Update(ctx, id, title, comment, isCompleted)
}

func (r *timeoutRepository) ToggleStatus(ctx context.Context, id uuid.UUID) (*Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.Repository.ToggleStatus(ctx, id)
}

func (r *timeoutRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.Repository.Delete(ctx, id)
}
