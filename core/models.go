package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Modality identifies the kind of portfolio content an item carries.
// Each modality has its own embedding space and similarity scale.
type Modality int

const (
	// ModalityImage represents still image content.
	ModalityImage Modality = iota + 1
	// ModalityVideo represents video content.
	ModalityVideo
	// ModalityDocument represents document content (rate cards, decks, PDFs).
	ModalityDocument
)

// ContentType scopes a search to a subset of modalities.
type ContentType string

const (
	// ContentTypeAll searches images and videos together.
	ContentTypeAll ContentType = "all"
	// ContentTypeImages restricts the search to image content.
	ContentTypeImages ContentType = "images"
	// ContentTypeVideos restricts the search to video content.
	ContentTypeVideos ContentType = "videos"
)

// Query is a single search request. It is constructed per request and never persisted.
type Query struct {
	Text           string
	Role           string
	ContentType    ContentType
	Subjects       []string
	Styles         []string
	MaxBudget      *float64
	HasDocuments   *bool
	DocumentsCount *int
	Page           int
	Limit          int
}

// CreatorProfile is a snapshot of a creator as seen by the ranking engine.
// Filterable attributes (role, tags, day rate, documents) are denormalized here
// so repository scans can evaluate predicates without extra lookups.
type CreatorProfile struct {
	Id             ID
	Name           string
	Role           string
	Location       string
	DayRate        float64
	Subjects       []string
	Styles         []string
	DocumentsCount int
	InsertedAt     time.Time
	UpdatedAt      time.Time
}

// HasDocuments reports whether the creator has any portfolio documents.
func (c *CreatorProfile) HasDocuments() bool {
	return c.DocumentsCount > 0
}

// Project groups content items under a creator's portfolio.
type Project struct {
	Id         ID
	CreatorId  ID
	Title      string
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// ContentItem is one embeddable unit of portfolio content.
// Width/Height apply to images, DurationSec to videos.
type ContentItem struct {
	Id          ID
	Modality    Modality
	ProjectId   ID
	CreatorId   ID
	Caption     string
	Vector      []float32
	Width       int
	Height      int
	DurationSec float64
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// ContentMatch pairs a content item with its similarity score against a query
// vector. Matches are created per request and not persisted.
type ContentMatch struct {
	Item  *ContentItem
	Score float32
}

// ProjectScore aggregates per-modality similarity signals for one project.
type ProjectScore struct {
	ProjectId   ID
	CreatorId   ID
	VectorScore float32
	VideoScore  float32
	FinalScore  float32
}

// CreatorResult is one row of a search response: the creator snapshot, the
// creator's overall score, and the qualifying projects ordered by FinalScore.
type CreatorResult struct {
	Creator  *CreatorProfile
	Score    float32
	Projects []*ProjectScore
}

// SearchResponse is the envelope returned for every successful search.
// Degraded is set when the query was executed without vector similarity.
type SearchResponse struct {
	Results     []*CreatorResult
	Page        int
	Limit       int
	Total       int
	Query       string
	ContentType ContentType
	Degraded    bool
}

// HistoryEntry is one executed search in a user's history log.
// Entries are append-only until explicitly deleted by the owning user.
type HistoryEntry struct {
	Id           string
	UserId       string
	Query        string
	ContentType  ContentType
	ResultsCount int
	Vector       []float32
	CreatedAt    time.Time
}
