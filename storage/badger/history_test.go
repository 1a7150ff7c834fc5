package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/talentscout/core"
	"github.com/poiesic/talentscout/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistoryFixture(t *testing.T) (storage.HistoryRepository, func()) {
	t.Helper()
	contentRepo, _, historyRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	return historyRepo, func() {
		contentRepo.Close()
		backend.Close()
	}
}

func addEntryAt(t *testing.T, repo storage.HistoryRepository, userId, query string, at time.Time) *core.HistoryEntry {
	t.Helper()
	entry, err := repo.AddEntry(context.Background(), &core.HistoryEntry{
		UserId:      userId,
		Query:       query,
		ContentType: core.ContentTypeAll,
		CreatedAt:   at,
	})
	require.NoError(t, err)
	return entry
}

func TestHistoryListNewestFirst(t *testing.T) {
	repo, cleanup := newHistoryFixture(t)
	defer cleanup()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	addEntryAt(t, repo, "alice", "sunset portraits", base)
	addEntryAt(t, repo, "alice", "food photography", base.Add(time.Minute))
	addEntryAt(t, repo, "alice", "drone footage", base.Add(2*time.Minute))

	entries, err := repo.ListEntries(context.Background(), "alice", 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "drone footage", entries[0].Query)
	assert.Equal(t, "food photography", entries[1].Query)
	assert.Equal(t, "sunset portraits", entries[2].Query)

	// Second page of size 2 holds only the oldest entry.
	page2, err := repo.ListEntries(context.Background(), "alice", 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "sunset portraits", page2[0].Query)

	// Pages past the end come back empty, not erroring.
	page3, err := repo.ListEntries(context.Background(), "alice", 3, 2)
	require.NoError(t, err)
	assert.Empty(t, page3)
}

func TestHistoryUserIsolation(t *testing.T) {
	repo, cleanup := newHistoryFixture(t)
	defer cleanup()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	aliceEntry := addEntryAt(t, repo, "alice", "sunset portraits", base)
	addEntryAt(t, repo, "bob", "wedding videography", base.Add(time.Second))

	ctx := context.Background()

	// Bob never sees Alice's entries.
	bobEntries, err := repo.ListEntries(ctx, "bob", 1, 10)
	require.NoError(t, err)
	require.Len(t, bobEntries, 1)
	assert.Equal(t, "bob", bobEntries[0].UserId)

	// Bob cannot delete Alice's entry, and it survives the attempt.
	err = repo.DeleteEntry(ctx, "bob", aliceEntry.Id)
	assert.ErrorIs(t, err, storage.ErrPermissionDenied)

	aliceEntries, err := repo.ListEntries(ctx, "alice", 1, 10)
	require.NoError(t, err)
	assert.Len(t, aliceEntries, 1)

	// Unknown entry IDs are not-found, not permission errors.
	err = repo.DeleteEntry(ctx, "bob", "no-such-entry")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestHistoryUserIdNotKeyPrefix(t *testing.T) {
	repo, cleanup := newHistoryFixture(t)
	defer cleanup()

	// "a" is a byte-prefix of "a:b"; a raw user ID in the index key would
	// make user "a"'s scan pick up user "a:b"'s entries.
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	addEntryAt(t, repo, "a", "food photography", base)
	other := addEntryAt(t, repo, "a:b", "wedding videography", base.Add(time.Second))

	ctx := context.Background()

	entries, err := repo.ListEntries(ctx, "a", 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "food photography", entries[0].Query)

	// Clearing "a" must not touch "a:b"'s history.
	require.NoError(t, repo.ClearEntries(ctx, "a"))

	entries, err = repo.ListEntries(ctx, "a:b", 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, other.Id, entries[0].Id)
}

func TestHistoryDeleteAndClear(t *testing.T) {
	repo, cleanup := newHistoryFixture(t)
	defer cleanup()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	first := addEntryAt(t, repo, "alice", "sunset portraits", base)
	addEntryAt(t, repo, "alice", "food photography", base.Add(time.Minute))
	bobEntry := addEntryAt(t, repo, "bob", "wedding videography", base.Add(2*time.Minute))

	ctx := context.Background()

	require.NoError(t, repo.DeleteEntry(ctx, "alice", first.Id))
	entries, err := repo.ListEntries(ctx, "alice", 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "food photography", entries[0].Query)

	// Deleting twice reports not-found.
	err = repo.DeleteEntry(ctx, "alice", first.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, repo.ClearEntries(ctx, "alice"))
	entries, err = repo.ListEntries(ctx, "alice", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Clearing Alice leaves Bob untouched.
	bobEntries, err := repo.ListEntries(ctx, "bob", 1, 10)
	require.NoError(t, err)
	require.Len(t, bobEntries, 1)
	assert.Equal(t, bobEntry.Id, bobEntries[0].Id)
}

func TestHistoryWalkOldestFirst(t *testing.T) {
	repo, cleanup := newHistoryFixture(t)
	defer cleanup()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	addEntryAt(t, repo, "bob", "wedding videography", base.Add(time.Minute))
	addEntryAt(t, repo, "alice", "sunset portraits", base)
	addEntryAt(t, repo, "alice", "drone footage", base.Add(2*time.Minute))

	var queries []string
	err := repo.WalkEntries(context.Background(), func(entry *core.HistoryEntry) error {
		queries = append(queries, entry.Query)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"sunset portraits", "wedding videography", "drone footage"}, queries)
}
