package buffer

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "buffer.db"), "buffer")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEnqueueAndGetBatch(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Item{
		UserID:    "u-1",
		Entity:    EntityRoutine,
		Operation: OperationUpdate,
		Data:      json.RawMessage(`{"id":"r-1"}`),
	}))

	size, err := store.Size()
	require.NoError(t, err)
	require.Equal(t, 1, size)

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, EntityRoutine, items[0].Entity)
	require.NotEmpty(t, items[0].ID)
	require.Equal(t, 3, items[0].Priority)
	require.False(t, items[0].Timestamp.IsZero())
}

func TestPriorityOrdering(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Item{
		ID: "low", Entity: EntityTransaction, Operation: OperationCreate,
		Data: json.RawMessage(`{}`), Priority: 5,
	}))
	require.NoError(t, store.Enqueue(Item{
		ID: "high", Entity: EntityTransaction, Operation: OperationCreate,
		Data: json.RawMessage(`{}`), Priority: 1,
	}))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "high", items[0].ID)
	require.Equal(t, "low", items[1].ID)
}

func TestRemoveAndRequeue(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Item{
		ID: "item-1", Entity: EntityRoutine, Operation: OperationUpdate,
		Data: json.RawMessage(`{}`),
	}))

	items, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	item.Retries++
	require.NoError(t, store.Remove(item))
	require.NoError(t, store.Requeue(item))

	items, err = store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "item-1", items[0].ID)
	require.Equal(t, 1, items[0].Retries)
}

func TestRemoveByID(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Item{
		ID: "item-1", Entity: EntityRoutine, Operation: OperationDelete,
		Data: json.RawMessage(`{}`),
	}))

	// Remove without the internal key falls back to ID lookup.
	require.NoError(t, store.Remove(Item{ID: "item-1"}))

	size, err := store.Size()
	require.NoError(t, err)
	require.Zero(t, size)
}

func TestCleanup(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Item{
		ID: "old", Entity: EntityRoutine, Operation: OperationUpdate,
		Data: json.RawMessage(`{}`), Timestamp: time.Now().Add(-48 * time.Hour),
	}))
	require.NoError(t, store.Enqueue(Item{
		ID: "fresh", Entity: EntityRoutine, Operation: OperationUpdate,
		Data: json.RawMessage(`{}`),
	}))

	require.NoError(t, store.Cleanup(time.Now().Add(-24*time.Hour)))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "fresh", items[0].ID)
}
