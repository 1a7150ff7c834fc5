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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidQuery indicates a search query failed validation.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrEmptyRole indicates the query Role field is empty.
	ErrEmptyRole = errors.New("role cannot be empty")

	// ErrInvalidContentType indicates an unrecognized ContentType value.
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrNegativeBudget indicates a negative MaxBudget value.
	ErrNegativeBudget = errors.New("max budget cannot be negative")

	// ErrNegativeDocumentsCount indicates a negative DocumentsCount value.
	ErrNegativeDocumentsCount = errors.New("documents count cannot be negative")

	// ErrInvalidCreatorProfile indicates a CreatorProfile failed validation.
	ErrInvalidCreatorProfile = errors.New("invalid creator profile")

	// ErrEmptyCreatorName indicates the creator Name field is empty.
	ErrEmptyCreatorName = errors.New("creator name cannot be empty")

	// ErrInvalidContentItem indicates a ContentItem failed validation.
	ErrInvalidContentItem = errors.New("invalid content item")

	// ErrInvalidModality indicates an invalid Modality value.
	ErrInvalidModality = errors.New("invalid modality")

	// ErrInvalidHistoryEntry indicates a HistoryEntry failed validation.
	ErrInvalidHistoryEntry = errors.New("invalid history entry")

	// ErrEmptyUserId indicates the history UserId field is empty.
	ErrEmptyUserId = errors.New("user id cannot be empty")
)
