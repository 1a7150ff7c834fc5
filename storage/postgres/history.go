package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/poiesic/talentscout/core"
	"github.com/poiesic/talentscout/storage"
)

// HistoryRepository implements storage.HistoryRepository on PostgreSQL.
type HistoryRepository struct {
	store *Store
}

var _ storage.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(store *Store) *HistoryRepository {
	return &HistoryRepository{store: store}
}

// Close implements storage.HistoryRepository. The pool is shared and closed
// by the Store.
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

	_, err := r.store.pool.Exec(ctx, `
		INSERT INTO history_entries (id, user_id, query, content_type, results_count, embed_vector, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::vector, $7)`,
		entry.Id, entry.UserId, entry.Query, string(entry.ContentType),
		entry.ResultsCount, formatVector(entry.Vector), entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
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

	rows, err := r.store.pool.Query(ctx, `
		SELECT id, user_id, query, content_type, results_count, embed_vector::text, created_at
		FROM history_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC
		LIMIT $2 OFFSET $3`,
		userId, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// DeleteEntry removes a single entry scoped to the requesting user.
// Returns ErrNotFound when the entry doesn't exist and ErrPermissionDenied
// when it belongs to another user.
func (r *HistoryRepository) DeleteEntry(ctx context.Context, userId, entryId string) error {
	var owner string
	err := r.store.pool.QueryRow(ctx,
		`SELECT user_id FROM history_entries WHERE id = $1`, entryId).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}
	if owner != userId {
		return storage.ErrPermissionDenied
	}

	_, err = r.store.pool.Exec(ctx, `DELETE FROM history_entries WHERE id = $1`, entryId)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}
	return nil
}

// ClearEntries removes all of the user's history entries.
func (r *HistoryRepository) ClearEntries(ctx context.Context, userId string) error {
	_, err := r.store.pool.Exec(ctx, `DELETE FROM history_entries WHERE user_id = $1`, userId)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}
	return nil
}

// WalkEntries visits every stored entry across all users, oldest first.
func (r *HistoryRepository) WalkEntries(ctx context.Context, fn func(entry *core.HistoryEntry) error) error {
	rows, err := r.store.pool.Query(ctx, `
		SELECT id, user_id, query, content_type, results_count, embed_vector::text, created_at
		FROM history_entries
		ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return err
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
	return rows.Err()
}

func scanEntries(rows pgx.Rows) ([]*core.HistoryEntry, error) {
	var entries []*core.HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*core.HistoryEntry, error) {
	var entry core.HistoryEntry
	var contentType string
	var rawVector *string

	err := row.Scan(&entry.Id, &entry.UserId, &entry.Query, &contentType,
		&entry.ResultsCount, &rawVector, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}

	entry.ContentType = core.ContentType(contentType)
	entry.Vector, err = parseVector(rawVector)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
