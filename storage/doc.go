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


// Package storage provides the storage abstraction layer for TalentScout.
//
// This package defines repository interfaces that decouple storage
// implementation from the ranking engine and history services. It allows for
// different storage backends (BadgerDB, PostgreSQL+pgvector) to be used
// interchangeably.
//
// # Constructor Return Type Pattern
//
// This package follows a strict "return interface" pattern for all public
// constructors to enforce abstraction and enable multiple storage backend
// implementations:
//
//	repo, err := badger.NewContentRepository(backend)  // returns storage.ContentRepository
//
// Internal package constructors may return concrete types since they're only
// used within the implementation package.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - ContentRepository: similarity search over portfolio content with hard
//     filters pushed down into the scan
//   - CreatorRepository: creator profile and project snapshots
//   - HistoryRepository: per-user append-only search history
//
// Filters are evaluated inside the repository scan, not after retrieval, so
// topK is computed over the already-eligible population. Truncating before
// filtering would produce false "no results" outcomes.
package storage
