package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/poiesic/talentscout/storage"
)

// Store owns the connection pool shared by the repositories.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to PostgreSQL using the given URL.
func NewStore(ctx context.Context, dbURL string) (*Store, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Migrate creates the schema. Vector columns have no fixed dimensionality
// declared; all vectors written by one deployment share the embedder's.
func (s *Store) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS creators (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			role TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			day_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			subjects TEXT[] NOT NULL DEFAULT '{}',
			styles TEXT[] NOT NULL DEFAULT '{}',
			documents_count INT NOT NULL DEFAULT 0,
			inserted_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS projects (
			id BIGINT PRIMARY KEY,
			creator_id BIGINT NOT NULL,
			title TEXT NOT NULL,
			inserted_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS content_items (
			id BIGSERIAL PRIMARY KEY,
			modality INT NOT NULL,
			project_id BIGINT NOT NULL,
			creator_id BIGINT NOT NULL,
			caption TEXT NOT NULL DEFAULT '',
			embed_vector vector,
			width INT NOT NULL DEFAULT 0,
			height INT NOT NULL DEFAULT 0,
			duration_sec DOUBLE PRECISION NOT NULL DEFAULT 0,
			inserted_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS content_items_modality_idx ON content_items (modality, creator_id)`,
		`CREATE TABLE IF NOT EXISTS history_entries (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			query TEXT NOT NULL DEFAULT '',
			content_type TEXT NOT NULL,
			results_count INT NOT NULL DEFAULT 0,
			embed_vector vector,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS history_entries_user_idx ON history_entries (user_id, created_at DESC)`,
	}

	for _, statement := range statements {
		if _, err := s.pool.Exec(ctx, statement); err != nil {
			return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
		}
	}
	return nil
}

// formatVector renders a vector in pgvector's text syntax.
func formatVector(v []float32) *string {
	if len(v) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("[")
	for i, val := range v {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(strconv.FormatFloat(float64(val), 'f', -1, 32))
	}
	b.WriteString("]")
	s := b.String()
	return &s
}

// parseVector reads pgvector's text syntax back into a slice.
func parseVector(s *string) ([]float32, error) {
	if s == nil {
		return nil, nil
	}
	trimmed := strings.Trim(*s, "[]")
	if trimmed == "" {
		return nil, nil
	}
	parts := strings.Split(trimmed, ",")
	vector := make([]float32, len(parts))
	for i, part := range parts {
		val, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
		}
		vector[i] = float32(val)
	}
	return vector, nil
}
