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

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted domain types. Written by hand rather than
// generated: the stored record set is small and stable, and hand-written
// serializers keep the wire layout explicit.
var (
	// IDMUS serializes an ID as a varint.
	IDMUS = idMUS{}

	// ModalityMUS serializes a Modality as a varint.
	ModalityMUS = modalityMUS{}

	// CreatorProfileMUS serializes a CreatorProfile.
	CreatorProfileMUS = creatorProfileMUS{}

	// ProjectMUS serializes a Project.
	ProjectMUS = projectMUS{}

	// ContentItemMUS serializes a ContentItem.
	ContentItemMUS = contentItemMUS{}

	// HistoryEntryMUS serializes a HistoryEntry.
	HistoryEntryMUS = historyEntryMUS{}

	vectorMUS      = ord.NewSliceSer[float32](raw.Float32)
	stringSliceMUS = ord.NewSliceSer[string](ord.String)
)

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (s idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type modalityMUS struct{}

func (s modalityMUS) Marshal(v Modality, bs []byte) int {
	return varint.Int.Marshal(int(v), bs)
}

func (s modalityMUS) Unmarshal(bs []byte) (Modality, int, error) {
	v, n, err := varint.Int.Unmarshal(bs)
	return Modality(v), n, err
}

func (s modalityMUS) Size(v Modality) int {
	return varint.Int.Size(int(v))
}

func (s modalityMUS) Skip(bs []byte) (int, error) {
	return varint.Int.Skip(bs)
}

// Timestamps are stored as Unix microseconds.

func marshalTime(t time.Time, bs []byte) int {
	return raw.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	v, n, err := raw.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(v).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return raw.Int64.Size(t.UnixMicro())
}

type creatorProfileMUS struct{}

func (s creatorProfileMUS) Marshal(v CreatorProfile, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Role, bs[n:])
	n += ord.String.Marshal(v.Location, bs[n:])
	n += raw.Float64.Marshal(v.DayRate, bs[n:])
	n += stringSliceMUS.Marshal(v.Subjects, bs[n:])
	n += stringSliceMUS.Marshal(v.Styles, bs[n:])
	n += varint.Int.Marshal(v.DocumentsCount, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (s creatorProfileMUS) Unmarshal(bs []byte) (v CreatorProfile, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Role, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Location, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.DayRate, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Subjects, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Styles, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.DocumentsCount, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.InsertedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	return v, n + n1, err
}

func (s creatorProfileMUS) Size(v CreatorProfile) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Role)
	size += ord.String.Size(v.Location)
	size += raw.Float64.Size(v.DayRate)
	size += stringSliceMUS.Size(v.Subjects)
	size += stringSliceMUS.Size(v.Styles)
	size += varint.Int.Size(v.DocumentsCount)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return size
}

type projectMUS struct{}

func (s projectMUS) Marshal(v Project, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.CreatorId, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (s projectMUS) Unmarshal(bs []byte) (v Project, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.CreatorId, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.InsertedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	return v, n + n1, err
}

func (s projectMUS) Size(v Project) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.CreatorId)
	size += ord.String.Size(v.Title)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return size
}

type contentItemMUS struct{}

func (s contentItemMUS) Marshal(v ContentItem, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ModalityMUS.Marshal(v.Modality, bs[n:])
	n += IDMUS.Marshal(v.ProjectId, bs[n:])
	n += IDMUS.Marshal(v.CreatorId, bs[n:])
	n += ord.String.Marshal(v.Caption, bs[n:])
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	n += varint.Int.Marshal(v.Width, bs[n:])
	n += varint.Int.Marshal(v.Height, bs[n:])
	n += raw.Float64.Marshal(v.DurationSec, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (s contentItemMUS) Unmarshal(bs []byte) (v ContentItem, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Modality, n1, err = ModalityMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ProjectId, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.CreatorId, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Caption, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Width, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Height, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.DurationSec, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.InsertedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	return v, n + n1, err
}

func (s contentItemMUS) Size(v ContentItem) (size int) {
	size = IDMUS.Size(v.Id)
	size += ModalityMUS.Size(v.Modality)
	size += IDMUS.Size(v.ProjectId)
	size += IDMUS.Size(v.CreatorId)
	size += ord.String.Size(v.Caption)
	size += vectorMUS.Size(v.Vector)
	size += varint.Int.Size(v.Width)
	size += varint.Int.Size(v.Height)
	size += raw.Float64.Size(v.DurationSec)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return size
}

type historyEntryMUS struct{}

func (s historyEntryMUS) Marshal(v HistoryEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.UserId, bs[n:])
	n += ord.String.Marshal(v.Query, bs[n:])
	n += ord.String.Marshal(string(v.ContentType), bs[n:])
	n += varint.Int.Marshal(v.ResultsCount, bs[n:])
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	n += marshalTime(v.CreatedAt, bs[n:])
	return n
}

func (s historyEntryMUS) Unmarshal(bs []byte) (v HistoryEntry, n int, err error) {
	var (
		n1 int
		ct string
	)
	if v.Id, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.UserId, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Query, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if ct, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	v.ContentType = ContentType(ct)
	n += n1
	if v.ResultsCount, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.CreatedAt, n1, err = unmarshalTime(bs[n:])
	return v, n + n1, err
}

func (s historyEntryMUS) Size(v HistoryEntry) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.UserId)
	size += ord.String.Size(v.Query)
	size += ord.String.Size(string(v.ContentType))
	size += varint.Int.Size(v.ResultsCount)
	size += vectorMUS.Size(v.Vector)
	size += sizeTime(v.CreatedAt)
	return size
}
