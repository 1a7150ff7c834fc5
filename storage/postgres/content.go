package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/talentscout/core"
	"github.com/poiesic/talentscout/storage"
)

// ContentRepository implements storage.ContentRepository on PostgreSQL.
// Similarity ranking and creator filtering run in one query so topK always
// covers the already-eligible population.
type ContentRepository struct {
	store *Store
}

var _ storage.ContentRepository = (*ContentRepository)(nil)

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(store *Store) *ContentRepository {
	return &ContentRepository{store: store}
}

// Close implements storage.ContentRepository. The pool is shared and closed
// by the Store.
func (r *ContentRepository) Close() error {
	return nil
}

// AddContentItems adds one or more content items to storage.
func (r *ContentRepository) AddContentItems(ctx context.Context, items ...*core.ContentItem) error {
	for _, item := range items {
		if err := core.ValidateContentItem(item); err != nil {
			return err
		}

		item.InsertedAt = time.Now().UTC()
		item.UpdatedAt = item.InsertedAt

		if item.Id == 0 {
			var id int64
			err := r.store.pool.QueryRow(ctx, `
				INSERT INTO content_items (modality, project_id, creator_id, caption, embed_vector, width, height, duration_sec, inserted_at, updated_at)
				VALUES ($1, $2, $3, $4, $5::vector, $6, $7, $8, $9, $10)
				RETURNING id`,
				int(item.Modality), int64(item.ProjectId), int64(item.CreatorId), item.Caption,
				formatVector(item.Vector), item.Width, item.Height, item.DurationSec,
				item.InsertedAt, item.UpdatedAt).Scan(&id)
			if err != nil {
				return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
			}
			item.Id = core.ID(id)
			continue
		}

		_, err := r.store.pool.Exec(ctx, `
			INSERT INTO content_items (id, modality, project_id, creator_id, caption, embed_vector, width, height, duration_sec, inserted_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6::vector, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO UPDATE SET
				caption = EXCLUDED.caption,
				embed_vector = EXCLUDED.embed_vector,
				updated_at = EXCLUDED.updated_at`,
			int64(item.Id), int(item.Modality), int64(item.ProjectId), int64(item.CreatorId), item.Caption,
			formatVector(item.Vector), item.Width, item.Height, item.DurationSec,
			item.InsertedAt, item.UpdatedAt)
		if err != nil {
			return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
		}
	}
	return nil
}

// FindSimilar finds content items of the given modality similar to the query
// vector, restricted to creators matching the filter. Cosine similarity is
// computed as 1 - cosine distance, which for unit vectors matches the dot
// product used by the embedded backend.
func (r *ContentRepository) FindSimilar(ctx context.Context, vector []float32, modality core.Modality, filter *storage.Filter, limit int) ([]*core.ContentMatch, error) {
	args := []any{formatVector(vector), int(modality)}
	conditions := []string{"ci.modality = $2", "ci.embed_vector IS NOT NULL"}
	conditions = append(conditions, filterConditions(filter, &args)...)

	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT ci.id, ci.modality, ci.project_id, ci.creator_id, ci.caption, ci.embed_vector::text,
		       ci.width, ci.height, ci.duration_sec, ci.inserted_at, ci.updated_at,
		       1 - (ci.embed_vector <=> $1::vector) AS score
		FROM content_items ci
		JOIN creators c ON c.id = ci.creator_id
		WHERE %s
		ORDER BY score DESC, ci.id ASC
		LIMIT $%d`, strings.Join(conditions, " AND "), len(args))

	return r.queryMatches(ctx, query, args)
}

// ListEligible returns filter-matching items of the given modality with zero
// similarity scores.
func (r *ContentRepository) ListEligible(ctx context.Context, modality core.Modality, filter *storage.Filter, limit int) ([]*core.ContentMatch, error) {
	args := []any{int(modality)}
	conditions := []string{"ci.modality = $1"}
	conditions = append(conditions, filterConditions(filter, &args)...)

	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT ci.id, ci.modality, ci.project_id, ci.creator_id, ci.caption, ci.embed_vector::text,
		       ci.width, ci.height, ci.duration_sec, ci.inserted_at, ci.updated_at,
		       0::float4 AS score
		FROM content_items ci
		JOIN creators c ON c.id = ci.creator_id
		WHERE %s
		ORDER BY ci.id ASC
		LIMIT $%d`, strings.Join(conditions, " AND "), len(args))

	return r.queryMatches(ctx, query, args)
}

// filterConditions appends predicate SQL for the creator filter, extending
// args as it goes. Tag matching is case-insensitive, like the embedded
// backend.
func filterConditions(filter *storage.Filter, args *[]any) []string {
	var conditions []string
	next := func(value any) int {
		*args = append(*args, value)
		return len(*args)
	}

	if filter == nil {
		return conditions
	}
	if filter.Role != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(c.role) = LOWER($%d)", next(filter.Role)))
	}
	for _, subject := range filter.Subjects {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM unnest(c.subjects) tag WHERE LOWER(tag) = LOWER($%d))", next(subject)))
	}
	for _, style := range filter.Styles {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM unnest(c.styles) tag WHERE LOWER(tag) = LOWER($%d))", next(style)))
	}
	if filter.MaxBudget != nil {
		conditions = append(conditions, fmt.Sprintf("c.day_rate <= $%d", next(*filter.MaxBudget)))
	}
	if filter.HasDocuments != nil && *filter.HasDocuments {
		conditions = append(conditions, "c.documents_count > 0")
	}
	if filter.DocumentsCount != nil {
		conditions = append(conditions, fmt.Sprintf("c.documents_count >= $%d", next(*filter.DocumentsCount)))
	}
	return conditions
}

func (r *ContentRepository) queryMatches(ctx context.Context, query string, args []any) ([]*core.ContentMatch, error) {
	rows, err := r.store.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}
	defer rows.Close()

	var matches []*core.ContentMatch
	for rows.Next() {
		var item core.ContentItem
		var id, projectId, creatorId int64
		var modality int
		var rawVector *string
		var score float32

		err := rows.Scan(&id, &modality, &projectId, &creatorId, &item.Caption, &rawVector,
			&item.Width, &item.Height, &item.DurationSec, &item.InsertedAt, &item.UpdatedAt, &score)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
		}

		item.Id = core.ID(id)
		item.Modality = core.Modality(modality)
		item.ProjectId = core.ID(projectId)
		item.CreatorId = core.ID(creatorId)
		item.Vector, err = parseVector(rawVector)
		if err != nil {
			return nil, err
		}

		matches = append(matches, &core.ContentMatch{Item: &item, Score: score})
	}
	return matches, rows.Err()
}
