package search

import (
	"testing"

	"github.com/poiesic/talentscout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func match(projectId, creatorId core.ID, score float32) *core.ContentMatch {
	return &core.ContentMatch{
		Item:  &core.ContentItem{ProjectId: projectId, CreatorId: creatorId},
		Score: score,
	}
}

func TestFuseProjects(t *testing.T) {
	t.Run("all takes the max channel, not the sum", func(t *testing.T) {
		scores := fuseProjects(core.ContentTypeAll, map[core.Modality][]*core.ContentMatch{
			core.ModalityImage: {match(1, 10, 0.6)},
			core.ModalityVideo: {match(1, 10, 0.9)},
		})
		require.Len(t, scores, 1)
		assert.InDelta(t, 0.6, scores[1].VectorScore, 1e-6)
		assert.InDelta(t, 0.9, scores[1].VideoScore, 1e-6)
		assert.InDelta(t, 0.9, scores[1].FinalScore, 1e-6)
	})

	t.Run("documents share the vector channel with images", func(t *testing.T) {
		scores := fuseProjects(core.ContentTypeAll, map[core.Modality][]*core.ContentMatch{
			core.ModalityImage:    {match(1, 10, 0.5)},
			core.ModalityDocument: {match(1, 10, 0.8)},
		})
		require.Len(t, scores, 1)
		assert.InDelta(t, 0.8, scores[1].VectorScore, 1e-6)
		assert.InDelta(t, 0.8, scores[1].FinalScore, 1e-6)
	})

	t.Run("images ignores the video channel", func(t *testing.T) {
		scores := fuseProjects(core.ContentTypeImages, map[core.Modality][]*core.ContentMatch{
			core.ModalityImage: {match(1, 10, 0.6), match(1, 10, 0.4)},
		})
		require.Len(t, scores, 1)
		assert.InDelta(t, 0.6, scores[1].FinalScore, 1e-6)
	})

	t.Run("absent modality never lowers a present one", func(t *testing.T) {
		scores := fuseProjects(core.ContentTypeAll, map[core.Modality][]*core.ContentMatch{
			core.ModalityVideo: {match(2, 10, 0.7)},
		})
		require.Len(t, scores, 1)
		assert.InDelta(t, 0.7, scores[2].FinalScore, 1e-6)
	})
}

func TestRankCreatorsTieBreak(t *testing.T) {
	scores := map[core.ID]*core.ProjectScore{
		1: {ProjectId: 1, CreatorId: 20, FinalScore: 0.8},
		2: {ProjectId: 2, CreatorId: 10, FinalScore: 0.8},
		3: {ProjectId: 3, CreatorId: 30, FinalScore: 0.9},
	}

	ranks := rankCreators(scores)
	require.Len(t, ranks, 3)
	assert.Equal(t, core.ID(30), ranks[0].creatorId)
	// Equal scores fall back to creator ID ascending.
	assert.Equal(t, core.ID(10), ranks[1].creatorId)
	assert.Equal(t, core.ID(20), ranks[2].creatorId)
}

func TestPaginateBounds(t *testing.T) {
	ranks := []*creatorRank{{creatorId: 1}, {creatorId: 2}, {creatorId: 3}}

	assert.Len(t, paginate(ranks, 1, 2), 2)
	assert.Len(t, paginate(ranks, 2, 2), 1)
	assert.Empty(t, paginate(ranks, 3, 2))
	assert.Empty(t, paginate(ranks, 100, 2))
}
