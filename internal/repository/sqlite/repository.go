package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"todo/internal/errors"
	"todo/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

const entityTask = "task"

// Repository defines the task store used by the task service. Every call is
// atomic with respect to the one record it touches. Missing ids are reported
// as not found errors; everything else is a database error.
type Repository interface {
	// Create operations
	Create(ctx context.Context, title string, comment *string, isCompleted bool) (*Task, error)

	// Read operations
	FetchByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FetchAll(ctx context.Context) ([]*Task, error)
	FetchIncomplete(ctx context.Context) ([]*Task, error)
	Search(ctx context.Context, titleSubstring string, incompleteOnly bool) ([]*Task, error)

	// Update operations
	// A nil isCompleted leaves the status unchanged.
	Update(ctx context.Context, id uuid.UUID, title string, comment *string, isCompleted *bool) (*Task, error)
	ToggleStatus(ctx context.Context, id uuid.UUID) (*Task, error)

	// Delete operations
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// New creates a new SQLite repository instance. dbPath may be ":memory:".
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// A single connection keeps in-memory databases alive and serializes writes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("configure database", err)
	}

	if err := migrations.RunMigrations(db.DB); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Create inserts a new task with a fresh id and creation time.
func (r *SQLiteRepository) Create(ctx context.Context, title string, comment *string, isCompleted bool) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Comment:     StringPtrFromDB(NullableString(comment)),
		IsCompleted: isCompleted,
		DateCreated: r.now().UTC(),
	}

	query := `
	INSERT INTO tasks (id, title, comment, is_completed, date_created, search_key)
	VALUES (?, ?, ?, ?, ?, ?)`

	err := Execute(ctx, r.db, "insert task", query,
		task.ID.String(),
		task.Title,
		NullableString(task.Comment),
		BoolToDB(task.IsCompleted),
		FormatTimeForDB(task.DateCreated),
		SearchKey(task.Title),
	)
	if err != nil {
		return nil, err
	}

	return task, nil
}

// FetchByID retrieves a task by ID
func (r *SQLiteRepository) FetchByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	return r.fetchByID(ctx, r.db, id)
}

func (r *SQLiteRepository) fetchByID(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, q, query, ScanTask, entityTask, id.String(), id.String())
}

// FetchAll retrieves all tasks in creation order
func (r *SQLiteRepository) FetchAll(ctx context.Context) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY seq ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// FetchIncomplete retrieves the tasks that are not completed, in creation order
func (r *SQLiteRepository) FetchIncomplete(ctx context.Context) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE is_completed = 0 ORDER BY seq ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// Search returns the tasks whose title contains titleSubstring, ignoring case
// and diacritics. The substring is matched literally; an empty substring
// matches every task.
func (r *SQLiteRepository) Search(ctx context.Context, titleSubstring string, incompleteOnly bool) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE instr(search_key, ?) > 0`
	if incompleteOnly {
		query += ` AND is_completed = 0`
	}
	query += ` ORDER BY seq ASC`

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", SearchKey(titleSubstring))
}

// Update replaces the title and comment of a task and, when isCompleted is
// not nil, its status. The updated task is read back in the same transaction.
func (r *SQLiteRepository) Update(ctx context.Context, id uuid.UUID, title string, comment *string, isCompleted *bool) (*Task, error) {
	var updated *Task
	err := r.withTx(ctx, "update task", func(tx *sqlx.Tx) error {
		query := `
		UPDATE tasks
		SET title = ?, comment = ?, search_key = ?, is_completed = COALESCE(?, is_completed)
		WHERE id = ?`

		err := ExecuteWithRowsAffected(ctx, tx, query, entityTask, id.String(),
			title,
			NullableString(comment),
			SearchKey(title),
			BoolPtrToDB(isCompleted),
			id.String(),
		)
		if err != nil {
			return err
		}

		updated, err = r.fetchByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ToggleStatus flips the completion flag of a task and returns the result.
func (r *SQLiteRepository) ToggleStatus(ctx context.Context, id uuid.UUID) (*Task, error) {
	var toggled *Task
	err := r.withTx(ctx, "toggle task", func(tx *sqlx.Tx) error {
		query := `UPDATE tasks SET is_completed = 1 - is_completed WHERE id = ?`
		if err := ExecuteWithRowsAffected(ctx, tx, query, entityTask, id.String(), id.String()); err != nil {
			return err
		}

		var err error
		toggled, err = r.fetchByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

// Delete removes a task permanently
func (r *SQLiteRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `DELETE FROM tasks WHERE id = ?`
	if err := ExecuteWithRowsAffected(ctx, r.db, query, entityTask, id.String(), id.String()); err != nil {
		return false, err
	}
	return true, nil
}

// withTx runs fn inside a transaction, rolling back when fn fails.
func (r *SQLiteRepository) withTx(ctx context.Context, operation string, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin "+operation, err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit "+operation, err)
	}
	return nil
}
