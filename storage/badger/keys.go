package badger

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/poiesic/talentscout/core"
)

// Key prefixes for different data types
const (
	creatorPrefix     = "creprof"
	projectPrefix     = "projrec"
	contentItemPrefix = "cntitem"
	contentItemIDSeq  = "cntitemseq"
	historyPrefix     = "histent"
	historyUserPrefix = "histusr"
	historyTimePrefix = "histchr"
)

// makeCreatorKey generates a key for a creator profile by ID.
func makeCreatorKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", creatorPrefix, id))
}

// makeProjectKey generates a key for a project by ID.
func makeProjectKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", projectPrefix, id))
}

// makeContentItemKey generates a key for a content item.
// Format: prefix:modality:id — modality in the key lets similarity scans
// iterate a single modality's items only.
func makeContentItemKey(modality core.Modality, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d:%d", contentItemPrefix, modality, id))
}

// makeContentModalityPrefix generates the scan prefix for one modality.
func makeContentModalityPrefix(modality core.Modality) []byte {
	return []byte(fmt.Sprintf("%s:%d:", contentItemPrefix, modality))
}

// makeHistoryKey generates the primary key for a history entry.
func makeHistoryKey(entryId string) []byte {
	return []byte(fmt.Sprintf("%s:%s", historyPrefix, entryId))
}

// makeHistoryUserKey generates a composite key for the per-user index.
// Format: prefix:userHash:revTimestamp:entryId — the timestamp is inverted
// so ascending key order yields newest entries first.
func makeHistoryUserKey(userId string, createdAt time.Time, entryId string) []byte {
	prefix := makeHistoryUserPrefix(userId)
	buf := make([]byte, len(prefix)+8+len(entryId))
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], math.MaxUint64-uint64(createdAt.UnixMicro()))
	offset += 8
	copy(buf[offset:], entryId)
	return buf
}

// makeHistoryUserPrefix generates the scan prefix for one user's index.
// The user ID is hashed to a fixed width so no ID can be a key-prefix of
// another (a raw "a" would otherwise match "a:b" keys). Scans still verify
// ownership on the loaded entry.
func makeHistoryUserPrefix(userId string) []byte {
	return []byte(fmt.Sprintf("%s:%016x:", historyUserPrefix, uint64(core.IDFromContent(userId))))
}

// makeHistoryTimeKey generates a composite key for the chronological index.
// Format: prefix:timestamp:entryId — BigEndian order so lexicographic sort
// walks entries oldest first.
func makeHistoryTimeKey(createdAt time.Time, entryId string) []byte {
	prefix := []byte(historyTimePrefix + ":")
	buf := make([]byte, len(prefix)+8+len(entryId))
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(createdAt.UnixMicro()))
	offset += 8
	copy(buf[offset:], entryId)
	return buf
}
