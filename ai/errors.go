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

import "errors"

var (
	// ErrEmptyText indicates the query text was empty after trimming.
	// The external service is never called in this case.
	ErrEmptyText = errors.New("text is empty")

	// ErrEmbeddingFailed indicates the external embedding service failed
	// (timeout, transport error, or malformed payload). Callers are expected
	// to degrade to filter-only search rather than fail the request.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")
)
