package core

import (
	"errors"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestQuery_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		query     Query
		wantPage  int
		wantLimit int
		wantCT    ContentType
	}{
		{
			name:      "defaults applied",
			query:     Query{},
			wantPage:  1,
			wantLimit: 5,
			wantCT:    ContentTypeAll,
		},
		{
			name:      "negative page and limit replaced",
			query:     Query{Page: -3, Limit: -1},
			wantPage:  1,
			wantLimit: 5,
			wantCT:    ContentTypeAll,
		},
		{
			name:      "valid values preserved",
			query:     Query{Page: 2, Limit: 20, ContentType: ContentTypeVideos},
			wantPage:  2,
			wantLimit: 20,
			wantCT:    ContentTypeVideos,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.query.Normalize()
			if tt.query.Page != tt.wantPage {
				t.Errorf("Normalize() Page = %d, want %d", tt.query.Page, tt.wantPage)
			}
			if tt.query.Limit != tt.wantLimit {
				t.Errorf("Normalize() Limit = %d, want %d", tt.query.Limit, tt.wantLimit)
			}
			if tt.query.ContentType != tt.wantCT {
				t.Errorf("Normalize() ContentType = %q, want %q", tt.query.ContentType, tt.wantCT)
			}
		})
	}
}

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   *Query
		wantErr error
	}{
		{
			name:    "valid query",
			query:   &Query{Role: "Photographer", ContentType: ContentTypeAll, Page: 1, Limit: 5},
			wantErr: nil,
		},
		{
			name: "valid query with all filters",
			query: &Query{
				Role:           "Videographer",
				ContentType:    ContentTypeVideos,
				Subjects:       []string{"food", "travel"},
				Styles:         []string{"cinematic"},
				MaxBudget:      floatPtr(500),
				HasDocuments:   boolPtr(true),
				DocumentsCount: intPtr(2),
				Page:           1,
				Limit:          5,
			},
			wantErr: nil,
		},
		{
			name:    "nil query",
			query:   nil,
			wantErr: ErrInvalidQuery,
		},
		{
			name:    "missing role",
			query:   &Query{ContentType: ContentTypeAll},
			wantErr: ErrEmptyRole,
		},
		{
			name:    "unknown content type",
			query:   &Query{Role: "Photographer", ContentType: "podcasts"},
			wantErr: ErrInvalidContentType,
		},
		{
			name:    "negative budget",
			query:   &Query{Role: "Photographer", ContentType: ContentTypeAll, MaxBudget: floatPtr(-10)},
			wantErr: ErrNegativeBudget,
		},
		{
			name:    "negative documents count",
			query:   &Query{Role: "Photographer", ContentType: ContentTypeAll, DocumentsCount: intPtr(-1)},
			wantErr: ErrNegativeDocumentsCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.query)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateQuery() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateQuery() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidQuery) && tt.query != nil {
				t.Errorf("ValidateQuery() error should wrap ErrInvalidQuery, got %v", err)
			}
		})
	}
}

func TestValidateCreatorProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile *CreatorProfile
		wantErr error
	}{
		{
			name:    "valid profile",
			profile: &CreatorProfile{Id: 1, Name: "Ava", Role: "Photographer", DayRate: 350},
			wantErr: nil,
		},
		{
			name:    "nil profile",
			profile: nil,
			wantErr: ErrInvalidCreatorProfile,
		},
		{
			name:    "missing name",
			profile: &CreatorProfile{Role: "Photographer"},
			wantErr: ErrEmptyCreatorName,
		},
		{
			name:    "missing role",
			profile: &CreatorProfile{Name: "Ava"},
			wantErr: ErrEmptyRole,
		},
		{
			name:    "negative day rate",
			profile: &CreatorProfile{Name: "Ava", Role: "Photographer", DayRate: -1},
			wantErr: ErrNegativeBudget,
		},
		{
			name:    "negative documents count",
			profile: &CreatorProfile{Name: "Ava", Role: "Photographer", DocumentsCount: -1},
			wantErr: ErrNegativeDocumentsCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreatorProfile(tt.profile)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCreatorProfile() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCreatorProfile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateContentItem(t *testing.T) {
	tests := []struct {
		name    string
		item    *ContentItem
		wantErr error
	}{
		{
			name:    "valid image item",
			item:    &ContentItem{Id: 1, Modality: ModalityImage, ProjectId: 2, CreatorId: 3},
			wantErr: nil,
		},
		{
			name:    "valid item without vector",
			item:    &ContentItem{Id: 1, Modality: ModalityDocument, ProjectId: 2, CreatorId: 3, Vector: nil},
			wantErr: nil,
		},
		{
			name:    "nil item",
			item:    nil,
			wantErr: ErrInvalidContentItem,
		},
		{
			name:    "invalid modality",
			item:    &ContentItem{Id: 1, Modality: 0, ProjectId: 2, CreatorId: 3},
			wantErr: ErrInvalidModality,
		},
		{
			name:    "missing project id",
			item:    &ContentItem{Id: 1, Modality: ModalityImage, CreatorId: 3},
			wantErr: ErrInvalidContentItem,
		},
		{
			name:    "missing creator id",
			item:    &ContentItem{Id: 1, Modality: ModalityImage, ProjectId: 2},
			wantErr: ErrInvalidContentItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContentItem(tt.item)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateContentItem() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateContentItem() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateHistoryEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   *HistoryEntry
		wantErr error
	}{
		{
			name:    "valid entry",
			entry:   &HistoryEntry{Id: "a", UserId: "user-1", Query: "sunset portraits", ContentType: ContentTypeAll},
			wantErr: nil,
		},
		{
			name:    "valid entry without vector",
			entry:   &HistoryEntry{Id: "a", UserId: "user-1", ContentType: ContentTypeImages, Vector: nil},
			wantErr: nil,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrInvalidHistoryEntry,
		},
		{
			name:    "missing user id",
			entry:   &HistoryEntry{Id: "a", ContentType: ContentTypeAll},
			wantErr: ErrEmptyUserId,
		},
		{
			name:    "unknown content type",
			entry:   &HistoryEntry{Id: "a", UserId: "user-1", ContentType: "reels"},
			wantErr: ErrInvalidContentType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHistoryEntry(tt.entry)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateHistoryEntry() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateHistoryEntry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
