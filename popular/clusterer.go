package popular

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/poiesic/talentscout/core"
)

// DefaultThreshold is the cosine similarity above which two query vectors
// are treated as the same intent.
const DefaultThreshold = 0.92

// Cluster is one group of equivalent queries as reported to callers.
// Similarity is populated by Match only and describes the probe, not the
// cluster itself.
type Cluster struct {
	Query      string
	Count      int
	Similarity float32
}

// Source walks persisted history entries oldest-first.
type Source interface {
	WalkEntries(ctx context.Context, fn func(entry *core.HistoryEntry) error) error
}

// cluster is the internal mutable representation. The canonical text and
// vector come from the first member observed and never change afterwards.
type cluster struct {
	text       string
	normalized string
	vector     []float32
	count      int
	firstSeen  int
}

// Clusterer groups observed queries into popularity clusters.
// All mutation goes through one mutex so concurrent near-threshold
// duplicates cannot fork into separate clusters.
type Clusterer struct {
	mu        sync.Mutex
	clusters  []*cluster
	arrivals  int
	threshold float32
	logger    *slog.Logger
}

// Option configures a Clusterer.
type Option func(*Clusterer) error

// WithThreshold sets the cosine similarity threshold for cluster membership.
// Default is DefaultThreshold.
func WithThreshold(threshold float32) Option {
	return func(c *Clusterer) error {
		if threshold <= 0 || threshold > 1 {
			return ErrInvalidThreshold
		}
		c.threshold = threshold
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Clusterer) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewClusterer creates a new query clusterer.
func NewClusterer(opts ...Option) (*Clusterer, error) {
	c := &Clusterer{
		threshold: DefaultThreshold,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Observe folds one history entry into the cluster set. Entries with empty
// query text (filter-only searches) are ignored.
func (c *Clusterer) Observe(entry *core.HistoryEntry) {
	if strings.TrimSpace(entry.Query) == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.observeLocked(entry)
}

// observeLocked requires c.mu to be held.
func (c *Clusterer) observeLocked(entry *core.HistoryEntry) {
	if len(entry.Vector) > 0 {
		if best, similarity := c.nearestLocked(entry.Vector); best != nil && similarity >= c.threshold {
			best.count++
			return
		}
	} else {
		normalized := normalizeText(entry.Query)
		for _, cl := range c.clusters {
			if cl.normalized == normalized {
				cl.count++
				return
			}
		}
	}

	c.clusters = append(c.clusters, &cluster{
		text:       strings.TrimSpace(entry.Query),
		normalized: normalizeText(entry.Query),
		vector:     entry.Vector,
		count:      1,
		firstSeen:  c.arrivals,
	})
	c.arrivals++
}

// nearestLocked finds the most similar vector-bearing cluster.
// Requires c.mu to be held.
func (c *Clusterer) nearestLocked(vector []float32) (*cluster, float32) {
	var best *cluster
	var bestSimilarity float32
	for _, cl := range c.clusters {
		if len(cl.vector) == 0 {
			continue
		}
		similarity := core.CosineSimilarity(vector, cl.vector)
		if best == nil || similarity > bestSimilarity {
			best = cl
			bestSimilarity = similarity
		}
	}
	return best, bestSimilarity
}

// TopPopular returns the n most popular clusters, count descending with ties
// broken by earliest first appearance.
func (c *Clusterer) TopPopular(n int) []*Cluster {
	c.mu.Lock()
	defer c.mu.Unlock()

	ordered := slices.Clone(c.clusters)
	slices.SortFunc(ordered, func(a, b *cluster) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return a.firstSeen - b.firstSeen
	})

	if n > 0 && len(ordered) > n {
		ordered = ordered[:n]
	}

	result := make([]*Cluster, len(ordered))
	for i, cl := range ordered {
		result[i] = &Cluster{Query: cl.text, Count: cl.count}
	}
	return result
}

// Match returns the cluster closest to the probe, with the probe's similarity
// against it. A probe without a vector matches on normalized text only.
// Returns nil when no cluster matches.
func (c *Clusterer) Match(text string, vector []float32) *Cluster {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(vector) > 0 {
		best, similarity := c.nearestLocked(vector)
		if best == nil || similarity < c.threshold {
			return nil
		}
		return &Cluster{Query: best.text, Count: best.count, Similarity: similarity}
	}

	normalized := normalizeText(text)
	for _, cl := range c.clusters {
		if cl.normalized == normalized {
			return &Cluster{Query: cl.text, Count: cl.count, Similarity: 1}
		}
	}
	return nil
}

// Size returns the current number of clusters.
func (c *Clusterer) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clusters)
}

// RebuildFrom discards the current cluster set and replays the history log
// oldest-first. Replaying the same log from empty state always yields the
// same clusters and counts.
func (c *Clusterer) RebuildFrom(ctx context.Context, source Source) error {
	if source == nil {
		return ErrSourceRequired
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	previous := c.clusters
	previousArrivals := c.arrivals
	c.clusters = nil
	c.arrivals = 0

	err := source.WalkEntries(ctx, func(entry *core.HistoryEntry) error {
		if strings.TrimSpace(entry.Query) == "" {
			return nil
		}
		c.observeLocked(entry)
		return nil
	})
	if err != nil {
		// Keep serving the old clusters rather than a partial rebuild.
		c.clusters = previous
		c.arrivals = previousArrivals
		return err
	}

	c.logger.Debug("rebuilt popular query clusters", "clusters", len(c.clusters))
	return nil
}

// normalizeText lowercases and collapses runs of whitespace.
func normalizeText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
