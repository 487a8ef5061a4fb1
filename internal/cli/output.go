package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"todo/internal/domain"
	"todo/internal/errors"
)

// Output formats for task listings
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

const maxTableComment = 40

// taskJSON is the machine-readable form of a task.
type taskJSON struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Comment   *string   `json:"comment"`
	Completed bool      `json:"completed"`
	Created   time.Time `json:"created"`
}

// writeTasks renders tasks in the requested format.
func writeTasks(w io.Writer, format string, tasks []*domain.Task, now time.Time) error {
	switch format {
	case FormatTable:
		return writeTable(w, tasks, now)
	case FormatJSON:
		return writeJSON(w, tasks)
	case FormatCSV:
		return writeCSV(w, tasks)
	default:
		return errors.NewInvalidInputError("format", format, "must be one of: table, json, csv")
	}
}

func writeTable(w io.Writer, tasks []*domain.Task, now time.Time) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tTITLE\tCOMMENT\tCREATED")
	for _, task := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			task.ShortID(),
			checkbox(task),
			oneLine(task.Title),
			truncate(oneLine(task.CommentText()), maxTableComment),
			humanize.RelTime(task.DateCreated, now, "ago", "from now"),
		)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, tasks []*domain.Task) error {
	out := make([]taskJSON, len(tasks))
	for i, task := range tasks {
		out[i] = taskJSON{
			ID:        task.ID.String(),
			Title:     task.Title,
			Comment:   task.Comment,
			Completed: task.IsCompleted,
			Created:   task.DateCreated.UTC(),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeCSV(w io.Writer, tasks []*domain.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "title", "comment", "completed", "created"}); err != nil {
		return err
	}
	for _, task := range tasks {
		record := []string{
			task.ID.String(),
			task.Title,
			task.CommentText(),
			strconv.FormatBool(task.IsCompleted),
			task.DateCreated.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeTaskDetail prints every field of one task.
func writeTaskDetail(w io.Writer, task *domain.Task, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", task.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", task.Title)
	fmt.Fprintf(tw, "Status:\t%s\n", task.Status())
	if task.HasComment() {
		fmt.Fprintf(tw, "Comment:\t%s\n", task.CommentText())
	}
	fmt.Fprintf(tw, "Created:\t%s (%s)\n",
		task.DateCreated.Local().Format("2006-01-02 15:04:05"),
		humanize.RelTime(task.DateCreated, now, "ago", "from now"),
	)
	return tw.Flush()
}

func checkbox(task *domain.Task) string {
	if task.IsCompleted {
		return "[x]"
	}
	return "[ ]"
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
