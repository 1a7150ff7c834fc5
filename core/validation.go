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

import "fmt"

const (
	// DefaultPage is used when a query omits the page number or provides an
	// invalid one.
	DefaultPage = 1
	// DefaultLimit is used when a query omits the page size or provides an
	// invalid one.
	DefaultLimit = 5
)

// Normalize fills in defaults for optional query fields.
//
// Applied defaults:
//   - Page/Limit below 1 are replaced with DefaultPage/DefaultLimit
//   - Empty ContentType becomes ContentTypeAll
func (q *Query) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.ContentType == "" {
		q.ContentType = ContentTypeAll
	}
}

// ValidateQuery validates a Query according to domain rules.
//
// Validation rules:
//   - Role must not be empty
//   - ContentType must be one of all/images/videos (after Normalize)
//   - MaxBudget, if set, must not be negative
//   - DocumentsCount, if set, must not be negative
//
// NOT validated:
//   - Text (empty text is allowed; the search degrades to filter-only)
//   - Page/Limit (Normalize replaces invalid values with defaults)
func ValidateQuery(q *Query) error {
	if q == nil {
		return fmt.Errorf("%w: query is nil", ErrInvalidQuery)
	}

	if q.Role == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrEmptyRole)
	}

	if err := ValidateContentType(q.ContentType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	if q.MaxBudget != nil && *q.MaxBudget < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrNegativeBudget)
	}

	if q.DocumentsCount != nil && *q.DocumentsCount < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrNegativeDocumentsCount)
	}

	return nil
}

// ValidateContentType validates that a ContentType has a recognized value.
func ValidateContentType(ct ContentType) error {
	switch ct {
	case ContentTypeAll, ContentTypeImages, ContentTypeVideos:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidContentType, ct)
}

// ValidateModality validates that a Modality has a valid value.
func ValidateModality(m Modality) error {
	switch m {
	case ModalityImage, ModalityVideo, ModalityDocument:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidModality, m)
}

// ValidateCreatorProfile validates a CreatorProfile according to domain rules.
//
// Validation rules:
//   - Name and Role must not be empty
//   - DayRate and DocumentsCount must not be negative
//
// NOT validated:
//   - ID (0 is valid until assigned)
//   - Subjects/Styles (empty tag sets are allowed)
func ValidateCreatorProfile(profile *CreatorProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidCreatorProfile)
	}

	if profile.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCreatorProfile, ErrEmptyCreatorName)
	}

	if profile.Role == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCreatorProfile, ErrEmptyRole)
	}

	if profile.DayRate < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCreatorProfile, ErrNegativeBudget)
	}

	if profile.DocumentsCount < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCreatorProfile, ErrNegativeDocumentsCount)
	}

	return nil
}

// ValidateContentItem validates a ContentItem according to domain rules.
//
// Validation rules:
//   - Modality must be valid
//   - ProjectId and CreatorId must be set
//
// NOT validated (populated by processors):
//   - Vector (can be empty until embedded)
func ValidateContentItem(item *ContentItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidContentItem)
	}

	if err := ValidateModality(item.Modality); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContentItem, err)
	}

	if item.ProjectId == 0 {
		return fmt.Errorf("%w: project id is required", ErrInvalidContentItem)
	}

	if item.CreatorId == 0 {
		return fmt.Errorf("%w: creator id is required", ErrInvalidContentItem)
	}

	return nil
}

// ValidateHistoryEntry validates a HistoryEntry according to domain rules.
//
// Validation rules:
//   - UserId must not be empty
//   - ContentType must be recognized
//
// NOT validated:
//   - Vector (entries recorded during embedding outages have none)
//   - ResultsCount (zero-result searches are recorded)
func ValidateHistoryEntry(entry *HistoryEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidHistoryEntry)
	}

	if entry.UserId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, ErrEmptyUserId)
	}

	if err := ValidateContentType(entry.ContentType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, err)
	}

	return nil
}
