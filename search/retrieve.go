package search

import (
	"context"
	"fmt"

	"github.com/poiesic/talentscout/core"
	"github.com/poiesic/talentscout/storage"
	"golang.org/x/sync/errgroup"
)

// modalityPlan decides which modalities a query reaches into.
// Documents are scanned only when the query filters on them, since document
// similarity folds into the same score channel as images.
func modalityPlan(query *core.Query, filter *storage.Filter) []core.Modality {
	var plan []core.Modality
	if query.ContentType != core.ContentTypeVideos {
		plan = append(plan, core.ModalityImage)
	}
	if query.ContentType != core.ContentTypeImages {
		plan = append(plan, core.ModalityVideo)
	}
	if query.ContentType != core.ContentTypeVideos && filter.RequiresDocuments() {
		plan = append(plan, core.ModalityDocument)
	}
	return plan
}

// retrieve fans out one similarity query per planned modality. A failure in
// any modality cancels the others and fails the retrieval as a whole.
func (e *Engine) retrieve(ctx context.Context, vector []float32, filter *storage.Filter, plan []core.Modality, monitor SearchMonitor) (map[core.Modality][]*core.ContentMatch, error) {
	perModality := make([][]*core.ContentMatch, len(plan))

	g, gctx := errgroup.WithContext(ctx)
	for i, modality := range plan {
		g.Go(func() error {
			matches, err := e.contentRepository.FindSimilar(gctx, vector, modality, filter, e.candidateLimit)
			if err != nil {
				return fmt.Errorf("%w: modality %d: %w", ErrRetrievalFailed, modality, err)
			}
			perModality[i] = matches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byModality := make(map[core.Modality][]*core.ContentMatch, len(plan))
	for i, modality := range plan {
		byModality[modality] = perModality[i]
		monitor.AfterModalityRetrieval(modality, perModality[i])
	}
	return byModality, nil
}

// retrieveEligible is the degraded-mode counterpart of retrieve: it lists
// filter-matching items with zero similarity scores.
func (e *Engine) retrieveEligible(ctx context.Context, filter *storage.Filter, plan []core.Modality, monitor SearchMonitor) (map[core.Modality][]*core.ContentMatch, error) {
	byModality := make(map[core.Modality][]*core.ContentMatch, len(plan))
	for _, modality := range plan {
		matches, err := e.contentRepository.ListEligible(ctx, modality, filter, e.candidateLimit)
		if err != nil {
			return nil, fmt.Errorf("%w: modality %d: %w", ErrRetrievalFailed, modality, err)
		}
		byModality[modality] = matches
		monitor.AfterModalityRetrieval(modality, matches)
	}
	return byModality, nil
}
