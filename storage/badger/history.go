package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/poiesic/talentscout/core"
	"github.com/poiesic/talentscout/storage"
)

// HistoryRepository implements storage.HistoryRepository for BadgerDB.
//
// Each entry is stored three times: the primary record keyed by entry ID,
// a per-user index keyed by inverted timestamp (newest first), and a global
// chronological index (oldest first) used for cluster rebuilds.
type HistoryRepository struct {
	backend *Backend
}

var _ storage.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(backend *Backend) *HistoryRepository {
	return &HistoryRepository{backend: backend}
}

// Close implements storage.HistoryRepository. The backend is shared and
// closed separately.
func (r *HistoryRepository) Close() error {
	return nil
}

// AddEntry appends a history entry, assigning Id and CreatedAt when unset.
func (r *HistoryRepository) AddEntry(ctx context.Context, entry *core.HistoryEntry) (*core.HistoryEntry, error) {
	if entry.Id == "" {
		entry.Id = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := core.ValidateHistoryEntry(entry); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		value := storage.MarshalHistoryEntry(entry)
		if err := tx.Set(makeHistoryKey(entry.Id), value); err != nil {
			return err
		}
		if err := tx.Set(makeHistoryUserKey(entry.UserId, entry.CreatedAt, entry.Id), []byte(entry.Id)); err != nil {
			return err
		}
		if err := tx.Set(makeHistoryTimeKey(entry.CreatedAt, entry.Id), []byte(entry.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntries returns a page of the user's history, newest first.
func (r *HistoryRepository) ListEntries(ctx context.Context, userId string, page, limit int) ([]*core.HistoryEntry, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = core.DefaultLimit
	}
	skip := (page - 1) * limit

	var entries []*core.HistoryEntry

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeHistoryUserPrefix(userId)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		position := 0
		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := checkContext(ctx); err != nil {
				return err
			}
			if position < skip {
				position++
				continue
			}
			if len(entries) >= limit {
				break
			}

			var entryId string
			if err := iter.Item().Value(func(val []byte) error {
				entryId = string(val)
				return nil
			}); err != nil {
				return err
			}

			entry, err := r.readEntry(tx, entryId)
			if err != nil {
				return err
			}
			if entry != nil && entry.UserId == userId {
				entries = append(entries, entry)
			}
			position++
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteEntry removes a single entry scoped to the requesting user.
// Returns ErrNotFound when the entry doesn't exist and ErrPermissionDenied
// when it belongs to another user.
func (r *HistoryRepository) DeleteEntry(ctx context.Context, userId, entryId string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		entry, err := r.readEntry(tx, entryId)
		if err != nil {
			return err
		}
		if entry == nil {
			return storage.ErrNotFound
		}
		if entry.UserId != userId {
			return storage.ErrPermissionDenied
		}

		if err := r.deleteEntryKeys(tx, entry); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ClearEntries removes all of the user's history entries.
func (r *HistoryRepository) ClearEntries(ctx context.Context, userId string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		// Collect first: deleting while iterating invalidates the iterator.
		var entries []*core.HistoryEntry

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeHistoryUserPrefix(userId)
		iter := tx.NewIterator(opts)

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entryId string
			if err := iter.Item().Value(func(val []byte) error {
				entryId = string(val)
				return nil
			}); err != nil {
				iter.Close()
				return err
			}
			entry, err := r.readEntry(tx, entryId)
			if err != nil {
				iter.Close()
				return err
			}
			if entry != nil && entry.UserId == userId {
				entries = append(entries, entry)
			}
		}
		iter.Close()

		for _, entry := range entries {
			if err := checkContext(ctx); err != nil {
				return err
			}
			if err := r.deleteEntryKeys(tx, entry); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// WalkEntries visits every stored entry across all users, oldest first.
func (r *HistoryRepository) WalkEntries(ctx context.Context, fn func(entry *core.HistoryEntry) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(historyTimePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := checkContext(ctx); err != nil {
				return err
			}

			var entryId string
			if err := iter.Item().Value(func(val []byte) error {
				entryId = string(val)
				return nil
			}); err != nil {
				return err
			}

			entry, err := r.readEntry(tx, entryId)
			if err != nil {
				return err
			}
			if entry == nil {
				continue
			}
			if err := fn(entry); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// readEntry loads one entry by ID, returning nil when absent.
func (r *HistoryRepository) readEntry(tx *badger.Txn, entryId string) (*core.HistoryEntry, error) {
	item, err := tx.Get(makeHistoryKey(entryId))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry *core.HistoryEntry
	err = item.Value(func(val []byte) error {
		entry, err = storage.UnmarshalHistoryEntry(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// deleteEntryKeys removes the primary record and both indexes.
func (r *HistoryRepository) deleteEntryKeys(tx *badger.Txn, entry *core.HistoryEntry) error {
	if err := tx.Delete(makeHistoryKey(entry.Id)); err != nil {
		return err
	}
	if err := tx.Delete(makeHistoryUserKey(entry.UserId, entry.CreatedAt, entry.Id)); err != nil {
		return err
	}
	return tx.Delete(makeHistoryTimeKey(entry.CreatedAt, entry.Id))
}
