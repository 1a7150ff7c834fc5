package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/talentscout/core"
	"github.com/poiesic/talentscout/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultCandidateLimit = 200

// QueryEmbedder turns query text into a normalized embedding vector.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Recorder receives one history entry per executed search. Implementations
// are expected to detach from the request; the engine never waits on them.
type Recorder interface {
	Record(ctx context.Context, entry *core.HistoryEntry)
}

// Engine ranks creators against a search query using per-modality vector
// similarity over their portfolio content.
type Engine struct {
	contentRepository storage.ContentRepository
	creatorRepository storage.CreatorRepository
	embedder          QueryEmbedder
	recorder          Recorder
	candidateLimit    int
	logger            *slog.Logger
	tracer            trace.Tracer
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithRecorder attaches a history recorder. Without one, searches are not
// recorded.
func WithRecorder(recorder Recorder) Option {
	return func(e *Engine) error {
		e.recorder = recorder
		return nil
	}
}

// WithCandidateLimit caps how many matches each modality retrieval returns
// before fusion. Default is 200.
func WithCandidateLimit(limit int) Option {
	return func(e *Engine) error {
		if limit > 0 {
			e.candidateLimit = limit
		}
		return nil
	}
}

// NewEngine creates a new search engine.
func NewEngine(
	contentRepository storage.ContentRepository,
	creatorRepository storage.CreatorRepository,
	embedder QueryEmbedder,
	opts ...Option,
) (*Engine, error) {
	if contentRepository == nil {
		return nil, ErrContentRepositoryRequired
	}
	if creatorRepository == nil {
		return nil, ErrCreatorRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Engine{
		contentRepository: contentRepository,
		creatorRepository: creatorRepository,
		embedder:          embedder,
		candidateLimit:    defaultCandidateLimit,
		logger:            slog.Default(),
		tracer:            otel.Tracer("github.com/poiesic/talentscout/search"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Search executes one query and returns a page of ranked creators.
// userId scopes the history record; pass "" to skip recording.
func (e *Engine) Search(ctx context.Context, userId string, query *core.Query) (*core.SearchResponse, error) {
	return e.SearchWithMonitor(ctx, userId, query, nil)
}

// SearchWithMonitor executes one query with monitoring callbacks at each
// stage of the pipeline.
func (e *Engine) SearchWithMonitor(ctx context.Context, userId string, query *core.Query, monitor SearchMonitor) (*core.SearchResponse, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	ctx, span := e.tracer.Start(ctx, "search.Engine.Search")
	defer span.End()

	// 1. Validate and normalize
	query.Normalize()
	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}
	monitor.Start(query)

	text := strings.TrimSpace(query.Text)
	filter := storage.FilterFromQuery(query)
	plan := modalityPlan(query, filter)
	span.SetAttributes(
		attribute.String("search.role", query.Role),
		attribute.String("search.content_type", string(query.ContentType)),
		attribute.Int("search.modalities", len(plan)),
	)

	// 2. Embed the query text. An empty query or an embedding outage
	// degrades the search to filter-only results instead of failing it.
	var vector []float32
	degraded := text == ""
	if !degraded {
		var err error
		vector, err = e.embedder.EmbedQuery(ctx, text)
		if err != nil {
			e.logger.Warn("embedding unavailable, degrading to filter-only search", "err", err)
			monitor.DegradedFallback(err)
			degraded = true
		} else {
			monitor.AfterEmbedding(vector)
		}
	}
	span.SetAttributes(attribute.Bool("search.degraded", degraded))

	// 3. Retrieve candidates per modality
	var byModality map[core.Modality][]*core.ContentMatch
	var err error
	if degraded {
		byModality, err = e.retrieveEligible(ctx, filter, plan, monitor)
	} else {
		byModality, err = e.retrieve(ctx, vector, filter, plan, monitor)
	}
	if err != nil {
		e.logger.Error("candidate retrieval failed", "err", err)
		return nil, err
	}

	// 4. Fuse and rank
	scores := fuseProjects(query.ContentType, byModality)
	ranks := rankCreators(scores)
	page := paginate(ranks, query.Page, query.Limit)

	// 5. Attach creator snapshots for the returned page only
	results, err := e.attachProfiles(ctx, page, monitor)
	if err != nil {
		e.logger.Error("error retrieving creator profiles", "err", err)
		return nil, err
	}

	response := &core.SearchResponse{
		Results:     results,
		Page:        query.Page,
		Limit:       query.Limit,
		Total:       len(ranks),
		Query:       text,
		ContentType: query.ContentType,
		Degraded:    degraded,
	}

	// 6. Record the search; the response never depends on the outcome.
	if e.recorder != nil && userId != "" {
		e.recorder.Record(ctx, &core.HistoryEntry{
			UserId:       userId,
			Query:        text,
			ContentType:  query.ContentType,
			ResultsCount: response.Total,
			Vector:       vector,
		})
	}

	monitor.Finish(response)
	return response, nil
}

// attachProfiles resolves creator snapshots for one page of ranks. Creators
// deleted since their content was indexed are dropped from the page.
func (e *Engine) attachProfiles(ctx context.Context, page []*creatorRank, monitor SearchMonitor) ([]*core.CreatorResult, error) {
	ids := make([]core.ID, 0, len(page))
	for _, rank := range page {
		ids = append(ids, rank.creatorId)
	}

	profiles, err := e.creatorRepository.GetCreators(ctx, ids...)
	if err != nil {
		return nil, err
	}
	monitor.AfterCreatorRetrieval(profiles)

	byId := make(map[core.ID]*core.CreatorProfile, len(profiles))
	for _, profile := range profiles {
		byId[profile.Id] = profile
	}

	results := make([]*core.CreatorResult, 0, len(page))
	for _, rank := range page {
		profile, ok := byId[rank.creatorId]
		if !ok {
			continue
		}
		results = append(results, &core.CreatorResult{
			Creator:  profile,
			Score:    rank.score,
			Projects: rank.projects,
		})
	}
	return results, nil
}
