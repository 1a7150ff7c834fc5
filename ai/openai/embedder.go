package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/talentscout/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// captionBatchSize caps how many caption texts go to the service in one
// request. Local OpenAI-compatible servers reject oversized batches.
const captionBatchSize = 32

// Embedder adapts a langchaingo OpenAI client to ai.Embedder. It targets
// OpenAI-compatible endpoints (Ollama, llama.cpp server) as well as the
// hosted API; single calls carry query text, batches carry portfolio
// captions at seed time.
type Embedder struct {
	client embeddings.Embedder
	logger *slog.Logger
}

var _ ai.Embedder = (*Embedder)(nil)

// NewEmbedder connects to the embedding service described by config.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Local services ignore the token but the client requires one.
	llm, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("creating embedding client: %w", err)
	}

	client, err := embeddings.NewEmbedder(llm, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		client: client,
		logger: slog.Default().With("component", "openai-embedder"),
	}, nil
}

// EmbedText embeds one query text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.client.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error("embedding request failed", "err", err)
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding service returned no vector")
	}
	return vectors[0], nil
}

// EmbedTexts embeds caption texts, splitting the work into service-sized
// batches. Results keep input order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += captionBatchSize {
		end := min(start+captionBatchSize, len(texts))
		batch, err := e.client.EmbedDocuments(ctx, texts[start:end])
		if err != nil {
			e.logger.Error("batch embedding request failed", "offset", start, "err", err)
			return nil, err
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("embedding service returned %d vectors for %d texts", len(batch), end-start)
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}
