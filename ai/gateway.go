// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/talentscout/core"
)

const defaultGatewayTimeout = 5 * time.Second

// Gateway wraps an Embedder with the query-side embedding contract:
// input is trimmed and lower-cased before submission, empty text yields a
// client error without calling the service, each call is bounded by a timeout,
// and returned vectors are unit-normalized so cosine similarity reduces to a
// dot product.
type Gateway struct {
	embedder Embedder
	timeout  time.Duration
	logger   *slog.Logger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway) error

// WithGatewayTimeout sets the per-call timeout.
// Default is 5 seconds.
func WithGatewayTimeout(timeout time.Duration) GatewayOption {
	return func(g *Gateway) error {
		if timeout > 0 {
			g.timeout = timeout
		}
		return nil
	}
}

// WithGatewayLogger sets a custom logger.
// Default is slog.Default().
func WithGatewayLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
		return nil
	}
}

// NewGateway creates a new embedding gateway around the given embedder.
func NewGateway(embedder Embedder, opts ...GatewayOption) (*Gateway, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	g := &Gateway{
		embedder: embedder,
		timeout:  defaultGatewayTimeout,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// EmbedQuery generates a unit-normalized embedding for query text.
//
// Returns ErrEmptyText if the text is empty after trimming; the external
// service is not called. Service failures and timeouts are wrapped as
// ErrEmbeddingFailed so callers can degrade to filter-only search.
func (g *Gateway) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return nil, ErrEmptyText
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	vector, err := g.embedder.EmbedText(ctx, normalized)
	if err != nil {
		g.logger.Warn("embedding service call failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}
	if len(vector) == 0 {
		g.logger.Warn("embedding service returned empty vector")
		return nil, fmt.Errorf("%w: empty vector", ErrEmbeddingFailed)
	}

	return core.NormalizeVector(vector), nil
}

// EmbedCaptions generates unit-normalized embeddings for a batch of content
// captions. Captions get the same trim+lowercase treatment as queries so both
// land in one embedding space.
//
// Returns ErrEmptyText if any caption is empty after trimming, and
// ErrEmbeddingFailed on service failure or a vector-count mismatch.
func (g *Gateway) EmbedCaptions(ctx context.Context, captions []string) ([][]float32, error) {
	if len(captions) == 0 {
		return nil, nil
	}

	normalized := make([]string, len(captions))
	for i, caption := range captions {
		normalized[i] = strings.ToLower(strings.TrimSpace(caption))
		if normalized[i] == "" {
			return nil, fmt.Errorf("%w: caption %d", ErrEmptyText, i)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	vectors, err := g.embedder.EmbedTexts(ctx, normalized)
	if err != nil {
		g.logger.Warn("batch embedding service call failed", "count", len(captions), "err", err)
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}
	if len(vectors) != len(captions) {
		return nil, fmt.Errorf("%w: %d vectors for %d captions", ErrEmbeddingFailed, len(vectors), len(captions))
	}

	for i, vector := range vectors {
		if len(vector) == 0 {
			return nil, fmt.Errorf("%w: empty vector for caption %d", ErrEmbeddingFailed, i)
		}
		vectors[i] = core.NormalizeVector(vector)
	}
	return vectors, nil
}
