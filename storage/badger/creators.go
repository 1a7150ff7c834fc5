package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/talentscout/core"
	"github.com/poiesic/talentscout/storage"
)

// CreatorRepository implements storage.CreatorRepository for BadgerDB.
type CreatorRepository struct {
	backend *Backend
}

var _ storage.CreatorRepository = (*CreatorRepository)(nil)

// NewCreatorRepository creates a new CreatorRepository.
func NewCreatorRepository(backend *Backend) *CreatorRepository {
	return &CreatorRepository{backend: backend}
}

// Close implements storage.CreatorRepository. The backend is shared and
// closed separately.
func (r *CreatorRepository) Close() error {
	return nil
}

// AddCreators adds one or more creator profiles to storage.
// Profiles with ID=0 get a content-based ID derived from the profile name.
func (r *CreatorRepository) AddCreators(ctx context.Context, profiles ...*core.CreatorProfile) ([]*core.CreatorProfile, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, profile := range profiles {
			if err := core.ValidateCreatorProfile(profile); err != nil {
				return err
			}
			if profile.Id == 0 {
				profile.Id = core.IDFromContent("creator:" + profile.Name)
			}

			profile.InsertedAt = time.Now().UTC()
			profile.UpdatedAt = profile.InsertedAt

			key := makeCreatorKey(profile.Id)
			if err := tx.Set(key, storage.MarshalCreatorProfile(profile)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return profiles, err
}

// AddProjects adds one or more projects to storage.
// Projects with ID=0 get a content-based ID derived from creator and title.
func (r *CreatorRepository) AddProjects(ctx context.Context, projects ...*core.Project) ([]*core.Project, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, project := range projects {
			if project.CreatorId == 0 {
				return fmt.Errorf("%w: project requires creator id", storage.ErrInvalidQuery)
			}
			if project.Id == 0 {
				project.Id = core.IDFromContent(fmt.Sprintf("project:%d:%s", project.CreatorId, project.Title))
			}

			project.InsertedAt = time.Now().UTC()
			project.UpdatedAt = project.InsertedAt

			key := makeProjectKey(project.Id)
			if err := tx.Set(key, storage.MarshalProject(project)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return projects, err
}

// GetCreator retrieves a single creator profile by ID.
func (r *CreatorRepository) GetCreator(ctx context.Context, id core.ID) (*core.CreatorProfile, error) {
	var profile *core.CreatorProfile

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCreatorKey(id))
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			profile, err = storage.UnmarshalCreatorProfile(val)
			return err
		})
	}, false)

	if err != nil {
		return nil, err
	}
	return profile, nil
}

// GetCreators retrieves multiple creator profiles by their IDs.
// Missing profiles are skipped without error.
func (r *CreatorRepository) GetCreators(ctx context.Context, ids ...core.ID) ([]*core.CreatorProfile, error) {
	profiles := make([]*core.CreatorProfile, 0, len(ids))

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := tx.Get(makeCreatorKey(id))
			if err == badger.ErrKeyNotFound {
				continue
			}
			if err != nil {
				return err
			}
			err = item.Value(func(val []byte) error {
				profile, err := storage.UnmarshalCreatorProfile(val)
				if err != nil {
					return err
				}
				profiles = append(profiles, profile)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return profiles, nil
}
