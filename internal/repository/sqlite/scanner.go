package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// taskColumns is the select list matching taskRow.
const taskColumns = `id, title, comment, is_completed, date_created`

// taskRow is the raw shape of a tasks row as scanned by sqlx.
type taskRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Comment     sql.NullString `db:"comment"`
	IsCompleted bool           `db:"is_completed"`
	DateCreated string         `db:"date_created"`
}

// ScanTask converts a scanned row into a Task.
func ScanTask(row *taskRow) (*Task, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("parse task id %q: %w", row.ID, err)
	}

	created, err := ParseTimeFromDB(row.DateCreated)
	if err != nil {
		return nil, fmt.Errorf("parse date_created for task %s: %w", row.ID, err)
	}

	return &Task{
		ID:          id,
		Title:       row.Title,
		Comment:     StringPtrFromDB(row.Comment),
		IsCompleted: row.IsCompleted,
		DateCreated: created,
	}, nil
}

// ScanTasks converts scanned rows into Tasks. The result is never nil.
func ScanTasks(rows []taskRow) ([]*Task, error) {
	tasks := make([]*Task, 0, len(rows))
	for i := range rows {
		task, err := ScanTask(&rows[i])
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
