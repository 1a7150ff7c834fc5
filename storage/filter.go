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


package storage

import (
	"strings"

	"github.com/poiesic/talentscout/core"
)

// Filter is the hard-constraint predicate pushed down into repository scans.
// A nil pointer field means "no constraint". Both storage backends share this
// predicate so filter semantics cannot drift between them.
type Filter struct {
	Role           string
	Subjects       []string
	Styles         []string
	MaxBudget      *float64
	HasDocuments   *bool
	DocumentsCount *int
}

// FilterFromQuery builds the repository predicate for a search query.
func FilterFromQuery(q *core.Query) *Filter {
	return &Filter{
		Role:           q.Role,
		Subjects:       q.Subjects,
		Styles:         q.Styles,
		MaxBudget:      q.MaxBudget,
		HasDocuments:   q.HasDocuments,
		DocumentsCount: q.DocumentsCount,
	}
}

// Matches reports whether a creator profile satisfies every constraint.
//
// Rules:
//   - Role matches case-insensitively and is required when set
//   - every requested subject/style tag must be present on the profile
//     (case-insensitive)
//   - MaxBudget is an inclusive ceiling on the creator's day rate
//   - HasDocuments=true requires at least one document; false is no constraint
//   - DocumentsCount is an inclusive minimum
func (f *Filter) Matches(profile *core.CreatorProfile) bool {
	if profile == nil {
		return false
	}
	if f == nil {
		return true
	}

	if f.Role != "" && !strings.EqualFold(f.Role, profile.Role) {
		return false
	}

	if !containsAllFold(profile.Subjects, f.Subjects) {
		return false
	}

	if !containsAllFold(profile.Styles, f.Styles) {
		return false
	}

	if f.MaxBudget != nil && profile.DayRate > *f.MaxBudget {
		return false
	}

	if f.HasDocuments != nil && *f.HasDocuments && profile.DocumentsCount == 0 {
		return false
	}

	if f.DocumentsCount != nil && profile.DocumentsCount < *f.DocumentsCount {
		return false
	}

	return true
}

// RequiresDocuments reports whether any document-related constraint is set.
// The document modality is only scanned when this is true.
func (f *Filter) RequiresDocuments() bool {
	if f == nil {
		return false
	}
	if f.HasDocuments != nil && *f.HasDocuments {
		return true
	}
	return f.DocumentsCount != nil && *f.DocumentsCount > 0
}

// containsAllFold reports whether every wanted tag appears in have,
// compared case-insensitively.
func containsAllFold(have, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	haveSet := make(map[string]bool, len(have))
	for _, tag := range have {
		haveSet[strings.ToLower(tag)] = true
	}
	for _, tag := range wanted {
		if !haveSet[strings.ToLower(tag)] {
			return false
		}
	}
	return true
}
