package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/talentscout/core"
	"github.com/poiesic/talentscout/storage"
)

// ContentRepository implements storage.ContentRepository for BadgerDB.
//
// Similarity search is a flat scan over one modality's items with the creator
// filter evaluated per item. The eligible creator set is resolved once per
// call, before the item scan, so topK always covers the already-eligible
// population.
type ContentRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ContentRepository = (*ContentRepository)(nil)

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(backend *Backend) (*ContentRepository, error) {
	idSeq, err := backend.GetSequence(contentItemIDSeq)
	if err != nil {
		return nil, err
	}

	return &ContentRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ContentRepository) Close() error {
	return r.idSeq.Release()
}

// AddContentItems adds one or more content items to storage.
func (r *ContentRepository) AddContentItems(ctx context.Context, items ...*core.ContentItem) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, item := range items {
			if item.Id == 0 {
				nextID, err := r.idSeq.Next()
				if err != nil {
					return err
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, err = r.idSeq.Next()
					if err != nil {
						return err
					}
				}
				item.Id = core.ID(nextID)
			}
			if err := core.ValidateContentItem(item); err != nil {
				return err
			}

			item.InsertedAt = time.Now().UTC()
			item.UpdatedAt = item.InsertedAt

			key := makeContentItemKey(item.Modality, item.Id)
			if err := tx.Set(key, storage.MarshalContentItem(item)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// FindSimilar finds content items of the given modality similar to the query
// vector, restricted to creators matching the filter.
func (r *ContentRepository) FindSimilar(ctx context.Context, vector []float32, modality core.Modality, filter *storage.Filter, limit int) ([]*core.ContentMatch, error) {
	eligible, err := r.eligibleCreators(ctx, filter)
	if err != nil {
		return nil, err
	}

	var results []*core.ContentMatch

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		return r.scanModality(ctx, tx, modality, func(item *core.ContentItem) {
			if !eligible[item.CreatorId] {
				return
			}
			// Skip items without embeddings
			if len(item.Vector) == 0 {
				return
			}
			results = append(results, &core.ContentMatch{
				Item:  item,
				Score: core.DotProduct(vector, item.Vector),
			})
		})
	}, false)

	if err != nil {
		return nil, err
	}

	sortMatches(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// ListEligible returns filter-matching items of the given modality with zero
// similarity scores.
func (r *ContentRepository) ListEligible(ctx context.Context, modality core.Modality, filter *storage.Filter, limit int) ([]*core.ContentMatch, error) {
	eligible, err := r.eligibleCreators(ctx, filter)
	if err != nil {
		return nil, err
	}

	var results []*core.ContentMatch

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		return r.scanModality(ctx, tx, modality, func(item *core.ContentItem) {
			if !eligible[item.CreatorId] {
				return
			}
			results = append(results, &core.ContentMatch{Item: item})
		})
	}, false)

	if err != nil {
		return nil, err
	}

	sortMatches(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// eligibleCreators resolves the set of creator IDs matching the filter.
func (r *ContentRepository) eligibleCreators(ctx context.Context, filter *storage.Filter) (map[core.ID]bool, error) {
	eligible := make(map[core.ID]bool)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(creatorPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := checkContext(ctx); err != nil {
				return err
			}

			var profile *core.CreatorProfile
			err := iter.Item().Value(func(val []byte) error {
				var err error
				profile, err = storage.UnmarshalCreatorProfile(val)
				return err
			})
			if err != nil {
				return err
			}
			if filter.Matches(profile) {
				eligible[profile.Id] = true
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return eligible, nil
}

// scanModality iterates all content items of one modality.
func (r *ContentRepository) scanModality(ctx context.Context, tx *badger.Txn, modality core.Modality, visit func(item *core.ContentItem)) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makeContentModalityPrefix(modality)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		if err := checkContext(ctx); err != nil {
			return err
		}

		var item *core.ContentItem
		err := iter.Item().Value(func(val []byte) error {
			var err error
			item, err = storage.UnmarshalContentItem(val)
			return err
		})
		if err != nil {
			return err
		}
		if item != nil {
			visit(item)
		}
	}
	return nil
}

// sortMatches orders by score descending, then item ID ascending so results
// are reproducible independent of iteration order.
func sortMatches(matches []*core.ContentMatch) {
	slices.SortFunc(matches, func(a, b *core.ContentMatch) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		if a.Item.Id < b.Item.Id {
			return -1
		}
		if a.Item.Id > b.Item.Id {
			return 1
		}
		return 0
	})
}
