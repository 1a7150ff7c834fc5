package history

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/talentscout/core"
	badgerstore "github.com/poiesic/talentscout/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	mu      sync.Mutex
	entries []*core.HistoryEntry
}

func (o *countingObserver) Observe(entry *core.HistoryEntry) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries = append(o.entries, entry)
}

func (o *countingObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.entries)
}

func TestRecorderPersistsDetached(t *testing.T) {
	contentRepo, _, historyRepo, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		contentRepo.Close()
		backend.Close()
	}()

	recorder, err := NewRecorder(historyRepo)
	require.NoError(t, err)
	defer recorder.Release()

	// A cancelled request context must not cancel the write.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recorder.Record(ctx, &core.HistoryEntry{
		UserId:      "alice",
		Query:       "sunset portraits",
		ContentType: core.ContentTypeAll,
	})
	recorder.Flush()

	entries, err := historyRepo.ListEntries(context.Background(), "alice", 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sunset portraits", entries[0].Query)
	assert.NotEmpty(t, entries[0].Id)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestRecorderNotifiesObserver(t *testing.T) {
	contentRepo, _, historyRepo, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		contentRepo.Close()
		backend.Close()
	}()

	observer := &countingObserver{}
	recorder, err := NewRecorder(historyRepo, WithObserver(observer), WithPoolSize(2))
	require.NoError(t, err)
	defer recorder.Release()

	for range 5 {
		recorder.Record(context.Background(), &core.HistoryEntry{
			UserId:      "alice",
			Query:       "drone footage",
			ContentType: core.ContentTypeVideos,
		})
	}
	recorder.Flush()

	assert.Equal(t, 5, observer.count())
}

func TestRecorderSwallowsWriteFailures(t *testing.T) {
	recorder, err := NewRecorder(&failingRepository{}, WithRetry(2, time.Millisecond))
	require.NoError(t, err)
	defer recorder.Release()

	// Must not panic or block; the failure is logged only.
	recorder.Record(context.Background(), &core.HistoryEntry{
		UserId:      "alice",
		Query:       "sunset portraits",
		ContentType: core.ContentTypeAll,
	})
	recorder.Flush()
}

func TestRetryWithBackoff(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		attempts := 0
		err := retryWithBackoff(context.Background(), func() error {
			attempts++
			if attempts < 3 {
				return errors.New("transient")
			}
			return nil
		}, 5, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		wantErr := errors.New("persistent")
		err := retryWithBackoff(context.Background(), func() error { return wantErr }, 3, time.Millisecond)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("rejects non-positive attempts", func(t *testing.T) {
		err := retryWithBackoff(context.Background(), func() error { return nil }, 0, time.Millisecond)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})
}

// failingRepository fails every write.
type failingRepository struct{}

func (f *failingRepository) AddEntry(_ context.Context, _ *core.HistoryEntry) (*core.HistoryEntry, error) {
	return nil, errors.New("disk full")
}

func (f *failingRepository) ListEntries(_ context.Context, _ string, _, _ int) ([]*core.HistoryEntry, error) {
	return nil, nil
}

func (f *failingRepository) DeleteEntry(_ context.Context, _, _ string) error { return nil }

func (f *failingRepository) ClearEntries(_ context.Context, _ string) error { return nil }

func (f *failingRepository) WalkEntries(_ context.Context, _ func(entry *core.HistoryEntry) error) error {
	return nil
}

func (f *failingRepository) Close() error { return nil }
