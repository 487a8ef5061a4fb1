package ui

import (
	"bytes"
	"context"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"todo/internal/domain"
	"todo/internal/services"
	"todo/internal/testutil"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func strPtr(s string) *string {
	return &s
}

func setupModel(t *testing.T, opts Options, seed ...*domain.Task) (*Model, *testutil.FakeStore) {
	t.Helper()

	store := testutil.NewFakeStore()
	store.Seed(seed...)

	model := NewModel(context.Background(), services.NewTaskService(store, zap.NewNop()), opts)
	drain(t, model, model.Init())
	return model, store
}

// drain runs cmd and feeds its messages back into the model until no
// command is left. Quit is reported instead of being fed back.
func drain(t *testing.T, m *Model, cmd tea.Cmd) (quit bool) {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 10, "command chain did not settle")
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
		_, cmd = m.Update(msg)
	}
	return false
}

func press(t *testing.T, m *Model, msg tea.KeyMsg) bool {
	t.Helper()
	_, cmd := m.Update(msg)
	return drain(t, m, cmd)
}

func titlesOf(tasks []*domain.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func mixedTasks() []*domain.Task {
	return []*domain.Task{
		{Title: "Pay rent", IsCompleted: true},
		{Title: "Buy milk", Comment: strPtr("2 litres")},
		{Title: "Book dentist"},
	}
}

func TestModel_InitLoadsDisplayOrder(t *testing.T) {
	model, _ := setupModel(t, Options{}, mixedTasks()...)

	assert.Equal(t, []string{"Buy milk", "Book dentist", "Pay rent"}, titlesOf(model.Items()))
	assert.Equal(t, "Buy milk", model.Selected().Title)
}

func TestModel_CursorMovement(t *testing.T) {
	model, _ := setupModel(t, Options{}, mixedTasks()...)

	press(t, model, keyType(tea.KeyUp))
	assert.Equal(t, "Buy milk", model.Selected().Title, "cursor stays at the top")

	press(t, model, keyType(tea.KeyDown))
	press(t, model, keyRunes("j"))
	assert.Equal(t, "Pay rent", model.Selected().Title)

	press(t, model, keyType(tea.KeyDown))
	assert.Equal(t, "Pay rent", model.Selected().Title, "cursor stays at the bottom")

	press(t, model, keyRunes("k"))
	assert.Equal(t, "Book dentist", model.Selected().Title)
}

func TestModel_ToggleReorders(t *testing.T) {
	model, store := setupModel(t, Options{}, mixedTasks()...)

	press(t, model, keyType(tea.KeySpace))

	assert.Equal(t, 1, store.Calls(testutil.OpToggleStatus))
	assert.Equal(t, []string{"Book dentist", "Pay rent", "Buy milk"}, titlesOf(model.Items()))
	assert.Contains(t, model.View(), "Completed: Buy milk")

	press(t, model, keyRunes("j"))
	press(t, model, keyRunes("j"))
	press(t, model, keyRunes("x"))
	assert.Contains(t, model.View(), "Reopened: Buy milk")
	assert.Equal(t, []string{"Buy milk", "Book dentist", "Pay rent"}, titlesOf(model.Items()))
}

func TestModel_FilterIncomplete(t *testing.T) {
	model, _ := setupModel(t, Options{}, mixedTasks()...)

	press(t, model, keyRunes("f"))
	assert.True(t, model.IncompleteOnly())
	assert.Equal(t, []string{"Buy milk", "Book dentist"}, titlesOf(model.Items()))
	assert.Contains(t, model.View(), "incomplete only")

	press(t, model, keyRunes("f"))
	assert.Len(t, model.Items(), 3)
}

func TestModel_Search(t *testing.T) {
	model, _ := setupModel(t, Options{}, mixedTasks()...)

	press(t, model, keyRunes("/"))
	for _, r := range "bu" {
		press(t, model, keyRunes(string(r)))
	}
	assert.Equal(t, "bu", model.Query())
	assert.Equal(t, []string{"Buy milk"}, titlesOf(model.Items()))

	// Keys are text while searching
	press(t, model, keyRunes("q"))
	assert.Equal(t, "buq", model.Query())
	assert.Empty(t, model.Items())
	assert.Contains(t, model.View(), "No tasks found.")

	press(t, model, keyType(tea.KeyBackspace))
	press(t, model, keyType(tea.KeyEnter))
	assert.Equal(t, "bu", model.Query())
	assert.Equal(t, []string{"Buy milk"}, titlesOf(model.Items()))

	// Back in list mode q quits
	assert.True(t, press(t, model, keyRunes("q")))
}

func TestModel_SearchEscapeRestoresQuery(t *testing.T) {
	model, _ := setupModel(t, Options{Query: "pay"}, mixedTasks()...)
	assert.Equal(t, []string{"Pay rent"}, titlesOf(model.Items()))

	press(t, model, keyRunes("/"))
	press(t, model, keyType(tea.KeySpace))
	press(t, model, keyRunes("x"))
	assert.Equal(t, "pay x", model.Query())

	press(t, model, keyType(tea.KeyEsc))
	assert.Equal(t, "pay", model.Query())
	assert.Equal(t, []string{"Pay rent"}, titlesOf(model.Items()))
}

func TestModel_Delete(t *testing.T) {
	model, store := setupModel(t, Options{}, mixedTasks()...)

	press(t, model, keyRunes("d"))

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, []string{"Book dentist", "Pay rent"}, titlesOf(model.Items()))
	assert.Contains(t, model.View(), "Deleted: Buy milk")
}

func TestModel_DeleteLastRowMovesCursor(t *testing.T) {
	model, _ := setupModel(t, Options{}, mixedTasks()...)

	press(t, model, keyRunes("j"))
	press(t, model, keyRunes("j"))
	press(t, model, keyRunes("d"))

	assert.Equal(t, "Book dentist", model.Selected().Title)
}

func TestModel_EmptyListIgnoresActions(t *testing.T) {
	model, store := setupModel(t, Options{})

	assert.Nil(t, model.Selected())
	press(t, model, keyType(tea.KeySpace))
	press(t, model, keyRunes("d"))

	assert.Zero(t, store.Calls(testutil.OpToggleStatus))
	assert.Zero(t, store.Calls(testutil.OpDelete))
}

func TestModel_StoreErrorShown(t *testing.T) {
	model, store := setupModel(t, Options{}, mixedTasks()...)
	store.ToggleStatusErr = assert.AnError

	press(t, model, keyType(tea.KeySpace))
	assert.Contains(t, model.View(), "Error: Can't update task")

	// Refresh clears the error
	store.ToggleStatusErr = nil
	press(t, model, keyRunes("r"))
	assert.NotContains(t, model.View(), "Error:")
}

func TestModel_LoadErrorShown(t *testing.T) {
	store := testutil.NewFakeStore()
	store.FetchAllErr = assert.AnError

	model := NewModel(context.Background(), services.NewTaskService(store, nil), Options{})
	drain(t, model, model.Init())

	assert.Contains(t, model.View(), "Error: Can't fetch tasks from storage")
}

func TestModel_StaleLoadIgnored(t *testing.T) {
	model, _ := setupModel(t, Options{}, mixedTasks()...)

	_, _ = model.Update(tasksLoadedMsg{generation: model.generation - 1, tasks: nil})
	assert.Len(t, model.Items(), 3)
}

func TestModel_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{keyRunes("q"), keyType(tea.KeyCtrlC), keyType(tea.KeyEsc)} {
		model, _ := setupModel(t, Options{})
		assert.True(t, press(t, model, key), "key %q should quit", key.String())
	}
}

func TestModel_View(t *testing.T) {
	model, _ := setupModel(t, Options{}, mixedTasks()...)
	view := model.View()

	assert.Contains(t, view, "Tasks")
	assert.Contains(t, view, "[ ] Buy milk")
	assert.Contains(t, view, "2 litres")
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "Pay rent")
	assert.Contains(t, view, "q quit")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "ééé…", truncate("éééééé", 4))
}

func TestRunBrowser_RequiresTerminal(t *testing.T) {
	store := testutil.NewFakeStore()
	err := RunBrowser(context.Background(), services.NewTaskService(store, nil), Options{Output: &bytes.Buffer{}})

	assert.Error(t, err)
	assert.Zero(t, store.TotalCalls())
}

func TestIsTTY(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTTY(f), "a regular file is not a terminal")
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
