package search

import "github.com/poiesic/talentscout/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query *core.Query)
	AfterEmbedding(vector []float32)
	DegradedFallback(reason error)
	AfterModalityRetrieval(modality core.Modality, matches []*core.ContentMatch)
	AfterCreatorRetrieval(profiles []*core.CreatorProfile)
	Finish(response *core.SearchResponse)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.Query)                                           {}
func (n *noopMonitor) AfterEmbedding(_ []float32)                                    {}
func (n *noopMonitor) DegradedFallback(_ error)                                      {}
func (n *noopMonitor) AfterModalityRetrieval(_ core.Modality, _ []*core.ContentMatch) {}
func (n *noopMonitor) AfterCreatorRetrieval(_ []*core.CreatorProfile)                {}
func (n *noopMonitor) Finish(_ *core.SearchResponse)                                 {}
