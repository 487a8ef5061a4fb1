package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/domain"
	apperrors "todo/internal/errors"
)

func TestFakeStore_CRUD(t *testing.T) {
	store := NewFakeStore()
	ctx := context.Background()

	created, err := store.Create(ctx, "Buy milk", nil, false)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	fetched, err := store.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", fetched.Title)

	done := true
	updated, err := store.Update(ctx, created.ID, "Buy oat milk", nil, &done)
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)

	toggled, err := store.ToggleStatus(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsCompleted)

	deleted, err := store.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = store.FetchByID(ctx, created.ID)
	assert.True(t, apperrors.IsNotFound(err))

	assert.Equal(t, 1, store.Calls(OpCreate))
	assert.Equal(t, 2, store.Calls(OpFetchByID))
	assert.Equal(t, 6, store.TotalCalls())
}

func TestFakeStore_ReturnsCopies(t *testing.T) {
	store := NewFakeStore()
	ctx := context.Background()

	created, err := store.Create(ctx, "Original", nil, false)
	require.NoError(t, err)
	created.Title = "Mutated"

	fetched, err := store.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", fetched.Title)
}

func TestFakeStore_ErrorInjection(t *testing.T) {
	store := NewFakeStore()
	boom := errors.New("boom")
	store.CreateErr = boom
	store.SearchErr = boom

	_, err := store.Create(context.Background(), "x", nil, false)
	assert.Equal(t, boom, err)

	_, err = store.Search(context.Background(), "x", false)
	assert.Equal(t, boom, err)

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 1, store.Calls(OpCreate))
}

func TestFakeStore_SearchAndFilters(t *testing.T) {
	store := NewFakeStore()
	store.Seed(
		&domain.Task{Title: "Alpha"},
		&domain.Task{Title: "Alpha Beta", IsCompleted: true},
		&domain.Task{Title: "Café"},
	)
	ctx := context.Background()

	incomplete, err := store.FetchIncomplete(ctx)
	require.NoError(t, err)
	assert.Len(t, incomplete, 2)

	matches, err := store.Search(ctx, "ALPHA", true)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Alpha", matches[0].Title)

	cafe, err := store.Search(ctx, "cafe", false)
	require.NoError(t, err)
	assert.Len(t, cafe, 1)

	assert.Equal(t, 0, store.Calls(OpCreate), "seeding is not counted")
}

func TestFakeStore_ResetCallsAndClose(t *testing.T) {
	store := NewFakeStore()
	_, _ = store.FetchAll(context.Background())
	store.ResetCalls()

	assert.Equal(t, 0, store.TotalCalls())
	require.NoError(t, store.Close())
	assert.True(t, store.Closed())
}
