package storage

import (
	"context"

	"github.com/poiesic/talentscout/core"
)

// ContentRepository provides similarity search over portfolio content.
// Implementations must be thread-safe and support concurrent access.
type ContentRepository interface {
	// AddContentItems adds one or more content items to storage.
	// Vectors are expected to be unit-normalized by the caller.
	AddContentItems(ctx context.Context, items ...*core.ContentItem) error

	// FindSimilar finds content items of the given modality similar to the
	// query vector, restricted to creators matching the filter. The filter is
	// evaluated inside the scan so topK covers the eligible population only.
	// Results are ordered by similarity score (highest first), up to limit.
	FindSimilar(ctx context.Context, vector []float32, modality core.Modality, filter *Filter, limit int) ([]*core.ContentMatch, error)

	// ListEligible returns content items of the given modality whose creators
	// match the filter, with zero similarity scores. Used for degraded
	// (filter-only) search when no query vector is available.
	ListEligible(ctx context.Context, modality core.Modality, filter *Filter, limit int) ([]*core.ContentMatch, error)

	// Close closes the repository and releases resources.
	Close() error
}

// CreatorRepository provides operations for creator profiles and projects.
type CreatorRepository interface {
	// AddCreators adds one or more creator profiles to storage.
	// IDs are content-based (IDFromContent of the profile name) when zero.
	AddCreators(ctx context.Context, profiles ...*core.CreatorProfile) ([]*core.CreatorProfile, error)

	// AddProjects adds one or more projects to storage.
	AddProjects(ctx context.Context, projects ...*core.Project) ([]*core.Project, error)

	// GetCreator retrieves a single creator profile by ID.
	// Returns ErrNotFound if the profile doesn't exist.
	GetCreator(ctx context.Context, id core.ID) (*core.CreatorProfile, error)

	// GetCreators retrieves multiple creator profiles by their IDs.
	// Returns only the profiles that exist (no error for missing profiles).
	GetCreators(ctx context.Context, ids ...core.ID) ([]*core.CreatorProfile, error)

	// Close closes the repository and releases resources.
	Close() error
}

// HistoryRepository provides per-user append-only search history.
// Appends are concurrent across users without coordination; deletes are
// scoped to the owning user.
type HistoryRepository interface {
	// AddEntry appends a history entry. Assigns Id and CreatedAt when unset.
	AddEntry(ctx context.Context, entry *core.HistoryEntry) (*core.HistoryEntry, error)

	// ListEntries returns a page of the user's history ordered by CreatedAt
	// descending.
	ListEntries(ctx context.Context, userId string, page, limit int) ([]*core.HistoryEntry, error)

	// DeleteEntry removes a single entry. Returns ErrNotFound if no entry has
	// the given id, and ErrPermissionDenied if the entry belongs to another
	// user.
	DeleteEntry(ctx context.Context, userId, entryId string) error

	// ClearEntries removes all of the user's history entries.
	ClearEntries(ctx context.Context, userId string) error

	// WalkEntries visits every stored entry across all users, oldest first.
	// Used to rebuild derived state such as popular-query clusters.
	WalkEntries(ctx context.Context, fn func(entry *core.HistoryEntry) error) error

	// Close closes the repository and releases resources.
	Close() error
}
