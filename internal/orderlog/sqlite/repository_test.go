package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/orderlog"
)

func openMemory(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepository_AppendAndHistory(t *testing.T) {
	ctx := context.Background()
	repo := openMemory(t)

	at := time.Date(2026, 5, 4, 12, 30, 0, 123, time.UTC)
	require.NoError(t, repo.Append(ctx, &orderlog.Event{OrderID: 1001, Status: "Pending", Note: "checkout", RecordedAt: at}))
	require.NoError(t, repo.Append(ctx, &orderlog.Event{OrderID: 1002, Status: "Pending", RecordedAt: at}))
	require.NoError(t, repo.Append(ctx, &orderlog.Event{OrderID: 1001, Status: "Confirmed", PreviousStatus: "Pending", TraceID: "abc", SpanID: "def", RecordedAt: at}))

	history, err := repo.History(ctx, 1001)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, "Pending", history[0].Status)
	assert.Equal(t, "checkout", history[0].Note)
	assert.True(t, history[0].RecordedAt.Equal(at))
	assert.Equal(t, "Confirmed", history[1].Status)
	assert.Equal(t, "Pending", history[1].PreviousStatus)
	assert.Equal(t, "abc", history[1].TraceID)
}

func TestRepository_HistoryUnknownOrder(t *testing.T) {
	repo := openMemory(t)

	history, err := repo.History(context.Background(), 4242)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRepository_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.db")
	ctx := context.Background()

	repo, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, orderlog.NewEvent(ctx, 1001, "Pending", "", "checkout")))
	require.NoError(t, repo.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	history, err := reopened.History(ctx, 1001)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
