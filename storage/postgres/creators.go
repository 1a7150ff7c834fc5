package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/poiesic/talentscout/core"
	"github.com/poiesic/talentscout/storage"
)

// CreatorRepository implements storage.CreatorRepository on PostgreSQL.
type CreatorRepository struct {
	store *Store
}

var _ storage.CreatorRepository = (*CreatorRepository)(nil)

// NewCreatorRepository creates a new CreatorRepository.
func NewCreatorRepository(store *Store) *CreatorRepository {
	return &CreatorRepository{store: store}
}

// Close implements storage.CreatorRepository. The pool is shared and closed
// by the Store.
func (r *CreatorRepository) Close() error {
	return nil
}

// AddCreators upserts one or more creator profiles.
// Profiles with ID=0 get a content-based ID derived from the profile name.
func (r *CreatorRepository) AddCreators(ctx context.Context, profiles ...*core.CreatorProfile) ([]*core.CreatorProfile, error) {
	for _, profile := range profiles {
		if err := core.ValidateCreatorProfile(profile); err != nil {
			return nil, err
		}
		if profile.Id == 0 {
			profile.Id = core.IDFromContent("creator:" + profile.Name)
		}

		profile.InsertedAt = time.Now().UTC()
		profile.UpdatedAt = profile.InsertedAt

		_, err := r.store.pool.Exec(ctx, `
			INSERT INTO creators (id, name, role, location, day_rate, subjects, styles, documents_count, inserted_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				role = EXCLUDED.role,
				location = EXCLUDED.location,
				day_rate = EXCLUDED.day_rate,
				subjects = EXCLUDED.subjects,
				styles = EXCLUDED.styles,
				documents_count = EXCLUDED.documents_count,
				updated_at = EXCLUDED.updated_at`,
			int64(profile.Id), profile.Name, profile.Role, profile.Location, profile.DayRate,
			profile.Subjects, profile.Styles, profile.DocumentsCount,
			profile.InsertedAt, profile.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
		}
	}
	return profiles, nil
}

// AddProjects upserts one or more projects.
// Projects with ID=0 get a content-based ID derived from creator and title.
func (r *CreatorRepository) AddProjects(ctx context.Context, projects ...*core.Project) ([]*core.Project, error) {
	for _, project := range projects {
		if project.CreatorId == 0 {
			return nil, fmt.Errorf("%w: project requires creator id", storage.ErrInvalidQuery)
		}
		if project.Id == 0 {
			project.Id = core.IDFromContent(fmt.Sprintf("project:%d:%s", project.CreatorId, project.Title))
		}

		project.InsertedAt = time.Now().UTC()
		project.UpdatedAt = project.InsertedAt

		_, err := r.store.pool.Exec(ctx, `
			INSERT INTO projects (id, creator_id, title, inserted_at, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				updated_at = EXCLUDED.updated_at`,
			int64(project.Id), int64(project.CreatorId), project.Title,
			project.InsertedAt, project.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
		}
	}
	return projects, nil
}

// GetCreator retrieves a single creator profile by ID.
func (r *CreatorRepository) GetCreator(ctx context.Context, id core.ID) (*core.CreatorProfile, error) {
	row := r.store.pool.QueryRow(ctx, `
		SELECT id, name, role, location, day_rate, subjects, styles, documents_count, inserted_at, updated_at
		FROM creators WHERE id = $1`, int64(id))

	profile, err := scanCreator(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}
	return profile, nil
}

// GetCreators retrieves multiple creator profiles by their IDs.
// Missing profiles are skipped without error.
func (r *CreatorRepository) GetCreators(ctx context.Context, ids ...core.ID) ([]*core.CreatorProfile, error) {
	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}

	rows, err := r.store.pool.Query(ctx, `
		SELECT id, name, role, location, day_rate, subjects, styles, documents_count, inserted_at, updated_at
		FROM creators WHERE id = ANY($1)`, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}
	defer rows.Close()

	profiles := make([]*core.CreatorProfile, 0, len(ids))
	for rows.Next() {
		profile, err := scanCreator(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func scanCreator(row pgx.Row) (*core.CreatorProfile, error) {
	var profile core.CreatorProfile
	var id int64
	err := row.Scan(&id, &profile.Name, &profile.Role, &profile.Location, &profile.DayRate,
		&profile.Subjects, &profile.Styles, &profile.DocumentsCount,
		&profile.InsertedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, err
	}
	profile.Id = core.ID(id)
	return &profile, nil
}
