package storage

import (
	"testing"
	"time"

	"github.com/poiesic/talentscout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("creator:ava")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalCreatorProfile(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	profile := &core.CreatorProfile{
		Id:             core.IDFromContent("creator:ava"),
		Name:           "Ava",
		Role:           "Photographer",
		Location:       "Lisbon",
		DayRate:        350.5,
		Subjects:       []string{"food", "travel"},
		Styles:         []string{"editorial"},
		DocumentsCount: 2,
		InsertedAt:     now,
		UpdatedAt:      now,
	}

	decoded, err := UnmarshalCreatorProfile(MarshalCreatorProfile(profile))
	require.NoError(t, err)
	assert.Equal(t, profile, decoded)
}

func TestMarshalUnmarshalContentItem(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	item := &core.ContentItem{
		Id:          7,
		Modality:    core.ModalityVideo,
		ProjectId:   3,
		CreatorId:   5,
		Caption:     "night market b-roll",
		Vector:      []float32{0.1, 0.2, 0.7},
		DurationSec: 42.5,
		InsertedAt:  now,
		UpdatedAt:   now,
	}

	decoded, err := UnmarshalContentItem(MarshalContentItem(item))
	require.NoError(t, err)
	assert.Equal(t, item, decoded)
}

func TestMarshalUnmarshalHistoryEntry(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	entry := &core.HistoryEntry{
		Id:           "0c9b2f6e",
		UserId:       "user-1",
		Query:        "sunset portraits",
		ContentType:  core.ContentTypeImages,
		ResultsCount: 4,
		Vector:       []float32{0.4, 0.6},
		CreatedAt:    now,
	}

	decoded, err := UnmarshalHistoryEntry(MarshalHistoryEntry(entry))
	require.NoError(t, err)
	assert.Equal(t, entry, decoded)
}

func TestUnmarshalHistoryEntry_Truncated(t *testing.T) {
	entry := &core.HistoryEntry{
		Id:          "0c9b2f6e",
		UserId:      "user-1",
		ContentType: core.ContentTypeAll,
		CreatedAt:   time.Now().UTC(),
	}
	data := MarshalHistoryEntry(entry)

	_, err := UnmarshalHistoryEntry(data[:len(data)/2])
	assert.Error(t, err)
}
