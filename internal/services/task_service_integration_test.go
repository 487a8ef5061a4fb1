package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"todo/internal/errors"
	"todo/internal/repository/sqlite"
	"todo/internal/testutil"
)

// storeFactories runs the end-to-end scenarios against both stores.
var storeFactories = []struct {
	name string
	new  func(t *testing.T) sqlite.Repository
}{
	{
		name: "sqlite",
		new: func(t *testing.T) sqlite.Repository {
			repo, err := sqlite.New(":memory:")
			require.NoError(t, err)
			t.Cleanup(func() { repo.Close() })
			return repo
		},
	},
	{
		name: "fake",
		new: func(t *testing.T) sqlite.Repository {
			return testutil.NewFakeStore()
		},
	},
}

func setupTaskService(t *testing.T, newStore func(t *testing.T) sqlite.Repository) TaskService {
	return NewTaskService(newStore(t), zap.NewNop())
}

func TestScenario_CreateThenList(t *testing.T) {
	for _, factory := range storeFactories {
		t.Run(factory.name, func(t *testing.T) {
			service := setupTaskService(t, factory.new)
			ctx := context.Background()

			created, err := service.CreateTask(ctx, "Buy milk", nil)
			require.NoError(t, err)
			assert.False(t, created.IsCompleted)
			assert.NotEmpty(t, created.ID.String())

			tasks, err := service.ListTasks(ctx, false)
			require.NoError(t, err)
			require.Len(t, tasks, 1)
			assert.Equal(t, created.ID, tasks[0].ID)
		})
	}
}

func TestScenario_EmptyTitleCreatesNothing(t *testing.T) {
	for _, factory := range storeFactories {
		t.Run(factory.name, func(t *testing.T) {
			service := setupTaskService(t, factory.new)
			ctx := context.Background()

			before, err := service.ListTasks(ctx, false)
			require.NoError(t, err)

			_, err = service.CreateTask(ctx, "", strPtr("note"))
			assert.Equal(t, errors.KindEmptyTitle, errors.KindOf(err))

			after, err := service.ListTasks(ctx, false)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestScenario_ToggleHidesFromIncomplete(t *testing.T) {
	for _, factory := range storeFactories {
		t.Run(factory.name, func(t *testing.T) {
			service := setupTaskService(t, factory.new)
			ctx := context.Background()

			report, err := service.CreateTask(ctx, "Report", nil)
			require.NoError(t, err)

			toggled, err := service.ToggleTaskStatus(ctx, report.ID)
			require.NoError(t, err)
			assert.Equal(t, report.ID, toggled.ID)
			assert.True(t, toggled.IsCompleted)

			incomplete, err := service.ListTasks(ctx, true)
			require.NoError(t, err)
			for _, task := range incomplete {
				assert.NotEqual(t, report.ID, task.ID)
			}
		})
	}
}

func TestScenario_SearchIncompleteOnly(t *testing.T) {
	for _, factory := range storeFactories {
		t.Run(factory.name, func(t *testing.T) {
			service := setupTaskService(t, factory.new)
			ctx := context.Background()

			_, err := service.CreateTask(ctx, "Alpha", nil)
			require.NoError(t, err)
			beta, err := service.CreateTask(ctx, "Alpha Beta", nil)
			require.NoError(t, err)
			_, err = service.ToggleTaskStatus(ctx, beta.ID)
			require.NoError(t, err)

			result, err := service.SearchTasks(ctx, "Alpha", true)
			require.NoError(t, err)
			assert.Equal(t, []string{"Alpha"}, titles(result))
		})
	}
}

func TestScenario_DeleteThenFetch(t *testing.T) {
	for _, factory := range storeFactories {
		t.Run(factory.name, func(t *testing.T) {
			service := setupTaskService(t, factory.new)
			ctx := context.Background()

			task, err := service.CreateTask(ctx, "Temporary", nil)
			require.NoError(t, err)

			deleted, err := service.DeleteTask(ctx, task.ID)
			require.NoError(t, err)
			assert.True(t, deleted)

			fetched, err := service.FetchTask(ctx, task.ID)
			assert.Nil(t, fetched)
			assert.Equal(t, errors.KindFetchByIDFailed, errors.KindOf(err))
		})
	}
}

func TestScenario_UpdateKeepsStatus(t *testing.T) {
	for _, factory := range storeFactories {
		t.Run(factory.name, func(t *testing.T) {
			service := setupTaskService(t, factory.new)
			ctx := context.Background()

			task, err := service.CreateTask(ctx, "Draft", strPtr("v1"))
			require.NoError(t, err)
			_, err = service.ToggleTaskStatus(ctx, task.ID)
			require.NoError(t, err)

			updated, err := service.UpdateTask(ctx, task.ID, "Final", strPtr("v2"))
			require.NoError(t, err)
			assert.True(t, updated.IsCompleted)
			assert.Equal(t, "v2", updated.CommentText())
			assert.True(t, task.DateCreated.Equal(updated.DateCreated))
		})
	}
}
