package search

import (
	"slices"

	"github.com/poiesic/talentscout/core"
)

// creatorRank is one creator's position in the ranked list before the profile
// snapshot is attached.
type creatorRank struct {
	creatorId core.ID
	score     float32
	projects  []*core.ProjectScore
}

// fuseProjects folds per-modality matches into one ProjectScore per project.
// Image and document similarity share the vector channel; video similarity has
// its own. Each channel keeps the best score seen for the project.
func fuseProjects(contentType core.ContentType, byModality map[core.Modality][]*core.ContentMatch) map[core.ID]*core.ProjectScore {
	scores := make(map[core.ID]*core.ProjectScore)

	record := func(match *core.ContentMatch, video bool) {
		ps, ok := scores[match.Item.ProjectId]
		if !ok {
			ps = &core.ProjectScore{
				ProjectId: match.Item.ProjectId,
				CreatorId: match.Item.CreatorId,
			}
			scores[match.Item.ProjectId] = ps
		}
		if video {
			if match.Score > ps.VideoScore {
				ps.VideoScore = match.Score
			}
		} else if match.Score > ps.VectorScore {
			ps.VectorScore = match.Score
		}
	}

	for modality, matches := range byModality {
		for _, match := range matches {
			record(match, modality == core.ModalityVideo)
		}
	}

	for _, ps := range scores {
		ps.Fuse(contentType)
	}
	return scores
}

// rankCreators groups project scores by creator and orders both levels:
// projects by FinalScore descending (project ID ascending on ties), creators
// by their best project's FinalScore descending (creator ID ascending on
// ties). The creator-level tie-break keeps pagination reproducible.
func rankCreators(scores map[core.ID]*core.ProjectScore) []*creatorRank {
	byCreator := make(map[core.ID]*creatorRank)
	for _, ps := range scores {
		rank, ok := byCreator[ps.CreatorId]
		if !ok {
			rank = &creatorRank{creatorId: ps.CreatorId}
			byCreator[ps.CreatorId] = rank
		}
		rank.projects = append(rank.projects, ps)
		if ps.FinalScore > rank.score {
			rank.score = ps.FinalScore
		}
	}

	ranks := make([]*creatorRank, 0, len(byCreator))
	for _, rank := range byCreator {
		slices.SortFunc(rank.projects, func(a, b *core.ProjectScore) int {
			if a.FinalScore > b.FinalScore {
				return -1
			}
			if a.FinalScore < b.FinalScore {
				return 1
			}
			return compareIDs(a.ProjectId, b.ProjectId)
		})
		ranks = append(ranks, rank)
	}

	slices.SortFunc(ranks, func(a, b *creatorRank) int {
		if a.score > b.score {
			return -1
		}
		if a.score < b.score {
			return 1
		}
		return compareIDs(a.creatorId, b.creatorId)
	})
	return ranks
}

// paginate slices the ranked list for one page. Pages past the end come back
// empty rather than erroring.
func paginate(ranks []*creatorRank, page, limit int) []*creatorRank {
	skip := (page - 1) * limit
	if skip >= len(ranks) {
		return nil
	}
	end := skip + limit
	if end > len(ranks) {
		end = len(ranks)
	}
	return ranks[skip:end]
}

func compareIDs(a, b core.ID) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
