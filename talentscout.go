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


package talentscout

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/talentscout/ai"
	"github.com/poiesic/talentscout/ai/openai"
	"github.com/poiesic/talentscout/core"
	"github.com/poiesic/talentscout/history"
	"github.com/poiesic/talentscout/popular"
	"github.com/poiesic/talentscout/search"
	"github.com/poiesic/talentscout/storage"
	"github.com/poiesic/talentscout/storage/badger"
	"github.com/poiesic/talentscout/storage/postgres"
)

// Database bundles the storage backend and embedding gateway behind one
// handle and builds the domain services on top of them.
type Database struct {
	backend     *badger.Backend
	store       *postgres.Store
	contentRepo storage.ContentRepository
	creatorRepo storage.CreatorRepository
	historyRepo storage.HistoryRepository
	gateway     *ai.Gateway
	logger      *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig    *ai.Config
	embedder    ai.Embedder
	inMemory    bool
	postgresURL string
}

// WithAIConfig overrides the embedding service configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithEmbedder injects an embedder directly, bypassing the OpenAI client.
// Used by tests and offline tooling.
func WithEmbedder(embedder ai.Embedder) DatabaseOption {
	return func(o *databaseOptions) {
		o.embedder = embedder
	}
}

// WithInMemory keeps all data in memory instead of on disk.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithPostgres stores all data in PostgreSQL (with pgvector) instead of the
// embedded BadgerDB backend. The schema is migrated on open and filePath is
// ignored.
func WithPostgres(dbURL string) DatabaseOption {
	return func(o *databaseOptions) {
		o.postgresURL = dbURL
	}
}

// NewDatabase opens the storage backend at filePath and connects the
// embedding gateway. With the WithPostgres option the backend is a
// PostgreSQL database instead.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	db := &Database{logger: slog.Default()}

	if options.postgresURL != "" {
		ctx := context.Background()
		store, err := postgres.NewStore(ctx, options.postgresURL)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
		db.store = store
		db.contentRepo = postgres.NewContentRepository(store)
		db.creatorRepo = postgres.NewCreatorRepository(store)
		db.historyRepo = postgres.NewHistoryRepository(store)
	} else {
		backend, err := badger.OpenBackend(filePath, options.inMemory)
		if err != nil {
			return nil, err
		}
		contentRepo, err := badger.NewContentRepository(backend)
		if err != nil {
			backend.Close()
			return nil, err
		}
		db.backend = backend
		db.contentRepo = contentRepo
		db.creatorRepo = badger.NewCreatorRepository(backend)
		db.historyRepo = badger.NewHistoryRepository(backend)
	}

	embedder := options.embedder
	if embedder == nil {
		var err error
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	gateway, err := ai.NewGateway(embedder, ai.WithGatewayTimeout(options.aiConfig.Timeout))
	if err != nil {
		db.Close()
		return nil, err
	}
	db.gateway = gateway

	return db, nil
}

func (db *Database) Close() error {
	if err := db.contentRepo.Close(); err != nil {
		db.logger.Error("error closing content repository", "err", err)
		return err
	}
	return db.closeStorage()
}

func (db *Database) closeStorage() error {
	if db.store != nil {
		db.store.Close()
	}
	if db.backend != nil {
		if err := db.backend.Close(); err != nil {
			db.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}

func (db *Database) ContentRepository() storage.ContentRepository {
	return db.contentRepo
}

func (db *Database) CreatorRepository() storage.CreatorRepository {
	return db.creatorRepo
}

func (db *Database) HistoryRepository() storage.HistoryRepository {
	return db.historyRepo
}

func (db *Database) Gateway() *ai.Gateway {
	return db.gateway
}

func (db *Database) NewEngine(opts ...search.Option) (*search.Engine, error) {
	return search.NewEngine(db.contentRepo, db.creatorRepo, db.gateway, opts...)
}

func (db *Database) NewRecorder(opts ...history.Option) (*history.Recorder, error) {
	return history.NewRecorder(db.historyRepo, opts...)
}

func (db *Database) NewClusterer(opts ...popular.Option) (*popular.Clusterer, error) {
	return popular.NewClusterer(opts...)
}

// seedBatchSize is how many captions one embedding request carries.
const seedBatchSize = 16

// Seed loads a corpus of creators, projects, and content items. Items without
// vectors are embedded from their captions in batches spread over a worker
// pool. A failed batch leaves its items vector-less rather than failing the
// seed.
func (db *Database) Seed(ctx context.Context, creators []*core.CreatorProfile, projects []*core.Project, items []*core.ContentItem) error {
	if _, err := db.creatorRepo.AddCreators(ctx, creators...); err != nil {
		return err
	}
	if _, err := db.creatorRepo.AddProjects(ctx, projects...); err != nil {
		return err
	}

	var pending []*core.ContentItem
	for _, item := range items {
		if len(item.Vector) == 0 && item.Caption != "" {
			pending = append(pending, item)
		}
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for start := 0; start < len(pending); start += seedBatchSize {
		batch := pending[start:min(start+seedBatchSize, len(pending))]

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			captions := make([]string, len(batch))
			for i, item := range batch {
				captions[i] = item.Caption
			}
			vectors, err := db.gateway.EmbedCaptions(ctx, captions)
			if err != nil {
				db.logger.Warn("error embedding content captions", "count", len(batch), "err", err)
				return
			}
			for i, item := range batch {
				item.Vector = vectors[i]
			}
		})
		if submitErr != nil {
			wg.Done()
			return submitErr
		}
	}
	wg.Wait()

	return db.contentRepo.AddContentItems(ctx, items...)
}
