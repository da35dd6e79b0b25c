package outbox

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "outbox.db"), "reminders")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEnqueueAndBatchInDeliveryOrder(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	// Enqueued out of order; batches come back in delivery order.
	require.NoError(t, store.Enqueue(Reminder{ID: "late", UserID: "u1", ScheduledFor: base.Add(2 * time.Hour)}))
	require.NoError(t, store.Enqueue(Reminder{ID: "early", UserID: "u1", ScheduledFor: base}))
	require.NoError(t, store.Enqueue(Reminder{ID: "middle", UserID: "u1", ScheduledFor: base.Add(time.Hour)}))

	batch, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, batch, 3)
	assert.Equal(t, "early", batch[0].ID)
	assert.Equal(t, "middle", batch[1].ID)
	assert.Equal(t, "late", batch[2].ID)
}

func TestGetBatchRespectsLimit(t *testing.T) {
	store := openTestStore(t)
	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Enqueue(Reminder{UserID: "u1", ScheduledFor: base.Add(time.Duration(i) * time.Minute)}))
	}

	batch, err := store.GetBatch(2)
	require.NoError(t, err)
	assert.Len(t, batch, 2)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 5, size, "GetBatch must not consume")
}

func TestRemove(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Enqueue(Reminder{ID: "r1", UserID: "u1", ScheduledFor: time.Now()}))

	batch, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, batch, 1)

	require.NoError(t, store.Remove(batch[0]))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestRequeueKeepsReminder(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Enqueue(Reminder{ID: "r1", UserID: "u1", ScheduledFor: time.Now(), Retries: 0}))

	batch, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, batch, 1)

	failed := batch[0]
	require.NoError(t, store.Remove(failed))
	failed.Retries++
	require.NoError(t, store.Requeue(failed))

	batch, err = store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "r1", batch[0].ID)
	assert.Equal(t, 1, batch[0].Retries)
}

func TestCleanupDropsStaleReminders(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()
	require.NoError(t, store.Enqueue(Reminder{ID: "stale", UserID: "u1", ScheduledFor: now.Add(-48 * time.Hour)}))
	require.NoError(t, store.Enqueue(Reminder{ID: "fresh", UserID: "u1", ScheduledFor: now.Add(time.Hour)}))

	require.NoError(t, store.Cleanup(now.Add(-24*time.Hour)))

	batch, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "fresh", batch[0].ID)
}

func TestEnqueueAssignsID(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Enqueue(Reminder{UserID: "u1", ScheduledFor: time.Now()}))

	batch, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.NotEmpty(t, batch[0].ID)
}
