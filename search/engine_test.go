package search

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/talentscout/core"
	badgerstore "github.com/poiesic/talentscout/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (s *stubEmbedder) EmbedQuery(_ context.Context, _ string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vector, nil
}

type captureRecorder struct {
	entries []*core.HistoryEntry
}

func (c *captureRecorder) Record(_ context.Context, entry *core.HistoryEntry) {
	c.entries = append(c.entries, entry)
}

func floatPtr(v float64) *float64 { return &v }

// newTestEngine builds an engine over a seeded in-memory corpus.
//
// Corpus layout (scores against the unit query vector (1,0,0)):
//
//	ID 1 Ava  (Photographer, rate 400): one image project scoring 0.90
//	ID 2 Ben  (Photographer, rate 800): one image project scoring 0.97
//	ID 3 Cara (Videographer, rate 400): one video project scoring 0.95
//	ID 4 Dan  (Photographer, rate 400): three image projects 0.70/0.65/0.60
//	ID 5 Eli  (Photographer, rate 400): one video project scoring 0.95
func newTestEngine(t *testing.T, embedder QueryEmbedder, opts ...Option) (*Engine, func()) {
	t.Helper()

	contentRepo, creatorRepo, _, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	cleanup := func() {
		contentRepo.Close()
		backend.Close()
	}

	ctx := context.Background()
	_, err = creatorRepo.AddCreators(ctx,
		&core.CreatorProfile{Id: 1, Name: "Ava", Role: "Photographer", DayRate: 400},
		&core.CreatorProfile{Id: 2, Name: "Ben", Role: "Photographer", DayRate: 800},
		&core.CreatorProfile{Id: 3, Name: "Cara", Role: "Videographer", DayRate: 400},
		&core.CreatorProfile{Id: 4, Name: "Dan", Role: "Photographer", DayRate: 400},
		&core.CreatorProfile{Id: 5, Name: "Eli", Role: "Photographer", DayRate: 400},
	)
	require.NoError(t, err)

	err = contentRepo.AddContentItems(ctx,
		&core.ContentItem{Id: 111, Modality: core.ModalityImage, ProjectId: 11, CreatorId: 1, Vector: []float32{0.90, 0, 0}},
		&core.ContentItem{Id: 211, Modality: core.ModalityImage, ProjectId: 21, CreatorId: 2, Vector: []float32{0.97, 0, 0}},
		&core.ContentItem{Id: 311, Modality: core.ModalityVideo, ProjectId: 31, CreatorId: 3, Vector: []float32{0.95, 0, 0}},
		&core.ContentItem{Id: 411, Modality: core.ModalityImage, ProjectId: 41, CreatorId: 4, Vector: []float32{0.70, 0, 0}},
		&core.ContentItem{Id: 421, Modality: core.ModalityImage, ProjectId: 42, CreatorId: 4, Vector: []float32{0.65, 0, 0}},
		&core.ContentItem{Id: 431, Modality: core.ModalityImage, ProjectId: 43, CreatorId: 4, Vector: []float32{0.60, 0, 0}},
		&core.ContentItem{Id: 511, Modality: core.ModalityVideo, ProjectId: 51, CreatorId: 5, Vector: []float32{0.95, 0, 0}},
	)
	require.NoError(t, err)

	engine, err := NewEngine(contentRepo, creatorRepo, embedder, opts...)
	require.NoError(t, err)
	return engine, cleanup
}

func photographerQuery() *core.Query {
	return &core.Query{
		Text:        "moody food photography",
		Role:        "Photographer",
		ContentType: core.ContentTypeAll,
		Limit:       10,
	}
}

func creatorIds(results []*core.CreatorResult) []core.ID {
	ids := make([]core.ID, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.Creator.Id)
	}
	return ids
}

func TestSearchBestWorkForward(t *testing.T) {
	engine, cleanup := newTestEngine(t, &stubEmbedder{vector: []float32{1, 0, 0}})
	defer cleanup()

	response, err := engine.Search(context.Background(), "", photographerQuery())
	require.NoError(t, err)

	// Dan's three mediocre projects never outrank Ava's single strong one:
	// a creator's score is their best project, not a sum.
	assert.Equal(t, []core.ID{2, 5, 1, 4}, creatorIds(response.Results))

	last := response.Results[len(response.Results)-1]
	assert.Equal(t, core.ID(4), last.Creator.Id)
	assert.InDelta(t, 0.70, last.Score, 1e-6)
	require.Len(t, last.Projects, 3)
	assert.Equal(t, core.ID(41), last.Projects[0].ProjectId)
	assert.Equal(t, core.ID(42), last.Projects[1].ProjectId)
	assert.Equal(t, core.ID(43), last.Projects[2].ProjectId)
}

func TestSearchModalityFairness(t *testing.T) {
	engine, cleanup := newTestEngine(t, &stubEmbedder{vector: []float32{1, 0, 0}})
	defer cleanup()
	ctx := context.Background()

	t.Run("all lets video-only creators compete", func(t *testing.T) {
		query := photographerQuery()
		response, err := engine.Search(ctx, "", query)
		require.NoError(t, err)

		// Eli's video score of 0.95 places him between Ben (0.97) and
		// Ava (0.90), not below every image creator.
		ids := creatorIds(response.Results)
		require.Contains(t, ids, core.ID(5))
		assert.Less(t, indexOf(ids, 5), indexOf(ids, 1))
	})

	t.Run("images excludes video-only creators", func(t *testing.T) {
		query := photographerQuery()
		query.ContentType = core.ContentTypeImages
		response, err := engine.Search(ctx, "", query)
		require.NoError(t, err)
		assert.NotContains(t, creatorIds(response.Results), core.ID(5))
	})

	t.Run("videos excludes image-only creators", func(t *testing.T) {
		query := photographerQuery()
		query.ContentType = core.ContentTypeVideos
		response, err := engine.Search(ctx, "", query)
		require.NoError(t, err)
		assert.Equal(t, []core.ID{5}, creatorIds(response.Results))
	})
}

func TestSearchFilterPrecedence(t *testing.T) {
	engine, cleanup := newTestEngine(t, &stubEmbedder{vector: []float32{1, 0, 0}})
	defer cleanup()
	ctx := context.Background()

	t.Run("budget removes the top scorer entirely", func(t *testing.T) {
		query := photographerQuery()
		query.MaxBudget = floatPtr(500)
		response, err := engine.Search(ctx, "", query)
		require.NoError(t, err)

		ids := creatorIds(response.Results)
		assert.NotContains(t, ids, core.ID(2))
		// Remaining photographers keep their relative order.
		assert.Equal(t, []core.ID{5, 1, 4}, ids)
	})

	t.Run("role filter is exact", func(t *testing.T) {
		query := photographerQuery()
		query.Role = "Videographer"
		response, err := engine.Search(ctx, "", query)
		require.NoError(t, err)
		assert.Equal(t, []core.ID{3}, creatorIds(response.Results))
	})

	t.Run("impossible filter yields empty page, not error", func(t *testing.T) {
		query := photographerQuery()
		query.Role = "Illustrator"
		response, err := engine.Search(ctx, "", query)
		require.NoError(t, err)
		assert.Empty(t, response.Results)
		assert.Zero(t, response.Total)
	})
}

func TestSearchPagination(t *testing.T) {
	engine, cleanup := newTestEngine(t, &stubEmbedder{vector: []float32{1, 0, 0}})
	defer cleanup()
	ctx := context.Background()

	var collected []core.ID
	for page := 1; page <= 2; page++ {
		query := photographerQuery()
		query.Page = page
		query.Limit = 2
		response, err := engine.Search(ctx, "", query)
		require.NoError(t, err)
		assert.Equal(t, 4, response.Total)
		assert.Equal(t, page, response.Page)
		collected = append(collected, creatorIds(response.Results)...)
	}
	assert.Equal(t, []core.ID{2, 5, 1, 4}, collected)

	// One page past the end: empty results, Total still correct.
	query := photographerQuery()
	query.Page = 3
	query.Limit = 2
	response, err := engine.Search(ctx, "", query)
	require.NoError(t, err)
	assert.Empty(t, response.Results)
	assert.Equal(t, 4, response.Total)
}

func TestSearchDeterministic(t *testing.T) {
	engine, cleanup := newTestEngine(t, &stubEmbedder{vector: []float32{1, 0, 0}})
	defer cleanup()
	ctx := context.Background()

	first, err := engine.Search(ctx, "", photographerQuery())
	require.NoError(t, err)
	second, err := engine.Search(ctx, "", photographerQuery())
	require.NoError(t, err)

	require.Equal(t, first.Total, second.Total)
	require.Equal(t, len(first.Results), len(second.Results))
	for i := range first.Results {
		assert.Equal(t, first.Results[i].Creator.Id, second.Results[i].Creator.Id)
		assert.Equal(t, first.Results[i].Score, second.Results[i].Score)
	}
}

func TestSearchDegradedMode(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("embedding service down")}
	engine, cleanup := newTestEngine(t, embedder)
	defer cleanup()

	response, err := engine.Search(context.Background(), "", photographerQuery())
	require.NoError(t, err)

	assert.True(t, response.Degraded)
	// All eligible photographers come back with zero scores, ordered by ID.
	assert.Equal(t, []core.ID{1, 2, 4, 5}, creatorIds(response.Results))
	for _, result := range response.Results {
		assert.Zero(t, result.Score)
	}
}

func TestSearchEmptyTextSkipsEmbedding(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{1, 0, 0}}
	engine, cleanup := newTestEngine(t, embedder)
	defer cleanup()

	query := photographerQuery()
	query.Text = "   "
	response, err := engine.Search(context.Background(), "", query)
	require.NoError(t, err)

	assert.True(t, response.Degraded)
	assert.Zero(t, embedder.calls)
	assert.Empty(t, response.Query)
}

func TestSearchValidation(t *testing.T) {
	engine, cleanup := newTestEngine(t, &stubEmbedder{vector: []float32{1, 0, 0}})
	defer cleanup()
	ctx := context.Background()

	t.Run("missing role", func(t *testing.T) {
		query := photographerQuery()
		query.Role = ""
		_, err := engine.Search(ctx, "", query)
		assert.ErrorIs(t, err, core.ErrInvalidQuery)
	})

	t.Run("negative budget", func(t *testing.T) {
		query := photographerQuery()
		query.MaxBudget = floatPtr(-1)
		_, err := engine.Search(ctx, "", query)
		assert.ErrorIs(t, err, core.ErrNegativeBudget)
	})

	t.Run("unknown content type", func(t *testing.T) {
		query := photographerQuery()
		query.ContentType = core.ContentType("audio")
		_, err := engine.Search(ctx, "", query)
		assert.ErrorIs(t, err, core.ErrInvalidContentType)
	})
}

func TestSearchRecordsHistory(t *testing.T) {
	recorder := &captureRecorder{}
	engine, cleanup := newTestEngine(t, &stubEmbedder{vector: []float32{1, 0, 0}}, WithRecorder(recorder))
	defer cleanup()

	response, err := engine.Search(context.Background(), "alice", photographerQuery())
	require.NoError(t, err)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, "alice", entry.UserId)
	assert.Equal(t, "moody food photography", entry.Query)
	assert.Equal(t, core.ContentTypeAll, entry.ContentType)
	assert.Equal(t, response.Total, entry.ResultsCount)
	assert.Equal(t, []float32{1, 0, 0}, entry.Vector)

	// Anonymous searches are not recorded.
	_, err = engine.Search(context.Background(), "", photographerQuery())
	require.NoError(t, err)
	assert.Len(t, recorder.entries, 1)
}

func indexOf(ids []core.ID, want core.ID) int {
	for i, id := range ids {
		if id == want {
			return i
		}
	}
	return -1
}
