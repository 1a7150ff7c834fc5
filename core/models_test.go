package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "creator:ava@example.com",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestCreatorProfile_HasDocuments(t *testing.T) {
	tests := []struct {
		name    string
		profile CreatorProfile
		want    bool
	}{
		{
			name:    "no documents",
			profile: CreatorProfile{DocumentsCount: 0},
			want:    false,
		},
		{
			name:    "one document",
			profile: CreatorProfile{DocumentsCount: 1},
			want:    true,
		},
		{
			name:    "many documents",
			profile: CreatorProfile{DocumentsCount: 12},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.HasDocuments(); got != tt.want {
				t.Errorf("HasDocuments() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFuseScores(t *testing.T) {
	tests := []struct {
		name        string
		contentType ContentType
		vectorScore float32
		videoScore  float32
		want        float32
	}{
		{
			name:        "all takes the better modality",
			contentType: ContentTypeAll,
			vectorScore: 0.4,
			videoScore:  0.8,
			want:        0.8,
		},
		{
			name:        "all with image specialist",
			contentType: ContentTypeAll,
			vectorScore: 0.9,
			videoScore:  0,
			want:        0.9,
		},
		{
			name:        "images ignores video signal",
			contentType: ContentTypeImages,
			vectorScore: 0.3,
			videoScore:  0.95,
			want:        0.3,
		},
		{
			name:        "videos ignores image signal",
			contentType: ContentTypeVideos,
			vectorScore: 0.95,
			videoScore:  0.3,
			want:        0.3,
		},
		{
			name:        "negative scores clamp to zero",
			contentType: ContentTypeAll,
			vectorScore: -0.2,
			videoScore:  -0.1,
			want:        0,
		},
		{
			name:        "scores above one clamp to one",
			contentType: ContentTypeAll,
			vectorScore: 1.2,
			videoScore:  0,
			want:        1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FuseScores(tt.contentType, tt.vectorScore, tt.videoScore)
			if got != tt.want {
				t.Errorf("FuseScores() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectScore_Fuse(t *testing.T) {
	p := ProjectScore{VectorScore: 0.5, VideoScore: 0.7}
	p.Fuse(ContentTypeAll)
	if p.FinalScore != 0.7 {
		t.Errorf("Fuse() FinalScore = %v, want 0.7", p.FinalScore)
	}

	p.Fuse(ContentTypeImages)
	if p.FinalScore != 0.5 {
		t.Errorf("Fuse() FinalScore = %v, want 0.5", p.FinalScore)
	}
}

func TestNormalizeVector(t *testing.T) {
	v := NormalizeVector([]float32{3, 4})
	if v[0] != 0.6 || v[1] != 0.8 {
		t.Errorf("NormalizeVector() = %v, want [0.6 0.8]", v)
	}

	zero := NormalizeVector([]float32{0, 0, 0})
	for i, val := range zero {
		if val != 0 {
			t.Errorf("NormalizeVector(zero)[%d] = %v, want 0", i, val)
		}
	}

	empty := NormalizeVector(nil)
	if len(empty) != 0 {
		t.Errorf("NormalizeVector(nil) = %v, want empty", empty)
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{1, 0, 0}
	c := []float32{0, 1, 0}

	if got := CosineSimilarity(a, b); got < 0.999 {
		t.Errorf("CosineSimilarity(identical) = %v, want ~1", got)
	}
	if got := CosineSimilarity(a, c); got != 0 {
		t.Errorf("CosineSimilarity(orthogonal) = %v, want 0", got)
	}
	if got := CosineSimilarity(a, []float32{0, 0, 0}); got != 0 {
		t.Errorf("CosineSimilarity(zero) = %v, want 0", got)
	}
}
