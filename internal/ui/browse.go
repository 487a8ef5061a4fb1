// Package ui provides the interactive task browser.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"todo/internal/domain"
	"todo/internal/errors"
	"todo/internal/services"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	commentStyle = lipgloss.NewStyle().Faint(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
	searchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	emptyStyle   = lipgloss.NewStyle().Italic(true)
)

const maxCommentLen = 60

// Options configures the initial browser state.
type Options struct {
	Query          string
	IncompleteOnly bool
	Input          io.Reader
	Output         io.Writer
}

// RunBrowser starts the browser on a terminal and blocks until the user quits.
func RunBrowser(ctx context.Context, tasks services.TaskService, opts Options) error {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if !IsTTY(opts.Output) {
		return fmt.Errorf("browse requires a terminal")
	}

	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(opts.Output),
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}

	model := NewModel(ctx, tasks, opts)
	_, err := tea.NewProgram(model, programOpts...).Run()
	return err
}

// Model is the bubbletea model behind the browser.
type Model struct {
	ctx   context.Context
	tasks services.TaskService
	now   func() time.Time

	items          []*domain.Task
	cursor         int
	query          string
	previousQuery  string
	searching      bool
	incompleteOnly bool
	loaded         bool

	// generation tags loads so that stale results are dropped.
	generation int

	status string
	err    error
}

type tasksLoadedMsg struct {
	generation int
	tasks      []*domain.Task
}

type taskToggledMsg struct {
	task *domain.Task
}

type taskDeletedMsg struct {
	task    *domain.Task
	deleted bool
}

type errMsg struct {
	err error
}

// NewModel creates a browser model. Nothing is loaded until Init runs.
func NewModel(ctx context.Context, tasks services.TaskService, opts Options) *Model {
	return &Model{
		ctx:            ctx,
		tasks:          tasks,
		now:            time.Now,
		query:          opts.Query,
		incompleteOnly: opts.IncompleteOnly,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m, m.updateSearch(msg)
		}
		return m, m.updateList(msg)

	case tasksLoadedMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.items = msg.tasks
		m.loaded = true
		m.clampCursor()

	case taskToggledMsg:
		if msg.task.IsCompleted {
			m.status = "Completed: " + msg.task.Title
		} else {
			m.status = "Reopened: " + msg.task.Title
		}
		return m, m.load()

	case taskDeletedMsg:
		if msg.deleted {
			m.status = "Deleted: " + msg.task.Title
		} else {
			m.status = "Already deleted: " + msg.task.Title
		}
		return m, m.load()

	case errMsg:
		m.err = msg.err
		m.status = ""
	}

	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ", "x":
		if task := m.Selected(); task != nil {
			m.err = nil
			return m.toggle(task.ID)
		}
	case "d":
		if task := m.Selected(); task != nil {
			m.err = nil
			return m.remove(task)
		}
	case "f":
		m.incompleteOnly = !m.incompleteOnly
		m.cursor = 0
		return m.load()
	case "/":
		m.searching = true
		m.previousQuery = m.query
	case "r":
		m.err = nil
		return m.load()
	}
	return nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEnter:
		m.searching = false
		return nil
	case tea.KeyEsc:
		m.searching = false
		m.query = m.previousQuery
	case tea.KeyBackspace:
		if m.query == "" {
			return nil
		}
		runes := []rune(m.query)
		m.query = string(runes[:len(runes)-1])
	case tea.KeySpace:
		m.query += " "
	case tea.KeyRunes:
		m.query += string(msg.Runes)
	default:
		return nil
	}
	m.cursor = 0
	return m.load()
}

// load fetches the tasks for the current query and filter in display order.
func (m *Model) load() tea.Cmd {
	m.generation++
	generation := m.generation
	query := m.query
	incompleteOnly := m.incompleteOnly

	return func() tea.Msg {
		tasks, err := m.tasks.ListTasksForDisplay(m.ctx, query, incompleteOnly)
		if err != nil {
			return errMsg{err: err}
		}
		return tasksLoadedMsg{generation: generation, tasks: tasks}
	}
}

func (m *Model) toggle(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		task, err := m.tasks.ToggleTaskStatus(m.ctx, id)
		if err != nil {
			return errMsg{err: err}
		}
		return taskToggledMsg{task: task}
	}
}

func (m *Model) remove(task *domain.Task) tea.Cmd {
	return func() tea.Msg {
		deleted, err := m.tasks.DeleteTask(m.ctx, task.ID)
		if err != nil {
			return errMsg{err: err}
		}
		return taskDeletedMsg{task: task, deleted: deleted}
	}
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the task under the cursor, or nil for an empty list.
func (m *Model) Selected() *domain.Task {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return m.items[m.cursor]
}

// Items returns the tasks currently shown.
func (m *Model) Items() []*domain.Task {
	return m.items
}

// Query returns the current search text.
func (m *Model) Query() string {
	return m.query
}

// IncompleteOnly reports whether completed tasks are hidden.
func (m *Model) IncompleteOnly() bool {
	return m.incompleteOnly
}

func (m *Model) View() string {
	var b strings.Builder
	m.writeHeader(&b)

	if !m.loaded && m.err == nil {
		b.WriteString("Loading...\n\n")
		writeHelp(&b)
		return b.String()
	}

	m.writeTasks(&b)
	m.writeStatus(&b)
	writeHelp(&b)
	return b.String()
}

func (m *Model) writeHeader(b *strings.Builder) {
	title := "Tasks"
	if m.incompleteOnly {
		title += " (incomplete only)"
	}
	b.WriteString(titleStyle.Render(title) + "\n")

	switch {
	case m.searching:
		b.WriteString(searchStyle.Render("Search: "+m.query+"_") + "\n")
	case m.query != "":
		b.WriteString(searchStyle.Render("Search: "+m.query) + "\n")
	}
	b.WriteString("\n")
}

func (m *Model) writeTasks(b *strings.Builder) {
	if len(m.items) == 0 {
		b.WriteString(emptyStyle.Render("  No tasks found.") + "\n\n")
		return
	}

	now := m.now()
	for i, task := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		check := "[ ]"
		title := task.Title
		if task.IsCompleted {
			check = "[x]"
			title = doneStyle.Render(title)
		}

		age := humanize.RelTime(task.DateCreated, now, "ago", "from now")
		fmt.Fprintf(b, "%s%s %s  %s\n", cursor, check, title, commentStyle.Render(age))

		if task.HasComment() {
			b.WriteString("      " + commentStyle.Render(truncate(task.CommentText(), maxCommentLen)) + "\n")
		}
	}
	b.WriteString("\n")
}

func (m *Model) writeStatus(b *strings.Builder) {
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+errors.GetUserMessage(m.err)) + "\n\n")
		return
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n\n")
	}
}

func writeHelp(b *strings.Builder) {
	b.WriteString(helpStyle.Render("↑/↓ move • space toggle • d delete • f incomplete only • / search • r refresh • q quit"))
	b.WriteString("\n")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
