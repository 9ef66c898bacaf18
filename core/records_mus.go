// Copyright 2025 Poiesic Systems
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
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted records. Field order is the wire order;
// append new fields at the end of a record.
var (
	IDMUS         = idMUS{}
	UserMUS       = userMUS{}
	NoteMUS       = noteMUS{}
	FolderMUS     = folderMUS{}
	TagMUS        = tagMUS{}
	CheckpointMUS = checkpointMUS{}
)

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

type userMUS struct{}

func (s userMUS) Marshal(v User, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Username, bs[n:])
	n += ord.String.Marshal(v.PasswordHash, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return
}

func (s userMUS) Unmarshal(bs []byte) (v User, n int, err error) {
	d := decoder{bs: bs}
	v.Id = d.id()
	v.Username = d.string()
	v.PasswordHash = d.string()
	v.InsertedAt = d.time()
	v.UpdatedAt = d.time()
	return v, d.n, d.err
}

func (s userMUS) Size(v User) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Username)
	size += ord.String.Size(v.PasswordHash)
	size += sizeTime(v.InsertedAt)
	return size + sizeTime(v.UpdatedAt)
}

type noteMUS struct{}

func (s noteMUS) Marshal(v Note, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.UserId, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += IDMUS.Marshal(v.FolderId, bs[n:])
	n += marshalStrings(v.Tags, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return
}

func (s noteMUS) Unmarshal(bs []byte) (v Note, n int, err error) {
	d := decoder{bs: bs}
	v.Id = d.id()
	v.UserId = d.id()
	v.Title = d.string()
	v.Content = d.string()
	v.FolderId = d.id()
	v.Tags = d.strings()
	v.InsertedAt = d.time()
	v.UpdatedAt = d.time()
	return v, d.n, d.err
}

func (s noteMUS) Size(v Note) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.UserId)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Content)
	size += IDMUS.Size(v.FolderId)
	size += sizeStrings(v.Tags)
	size += sizeTime(v.InsertedAt)
	return size + sizeTime(v.UpdatedAt)
}

type folderMUS struct{}

func (s folderMUS) Marshal(v Folder, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.UserId, bs[n:])
	n += IDMUS.Marshal(v.ParentId, bs[n:])
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Color, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	return
}

func (s folderMUS) Unmarshal(bs []byte) (v Folder, n int, err error) {
	d := decoder{bs: bs}
	v.Id = d.id()
	v.UserId = d.id()
	v.ParentId = d.id()
	v.Name = d.string()
	v.Color = d.string()
	v.InsertedAt = d.time()
	return v, d.n, d.err
}

func (s folderMUS) Size(v Folder) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.UserId)
	size += IDMUS.Size(v.ParentId)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Color)
	return size + sizeTime(v.InsertedAt)
}

type tagMUS struct{}

func (s tagMUS) Marshal(v Tag, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.UserId, bs[n:])
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Color, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	return
}

func (s tagMUS) Unmarshal(bs []byte) (v Tag, n int, err error) {
	d := decoder{bs: bs}
	v.Id = d.id()
	v.UserId = d.id()
	v.Name = d.string()
	v.Color = d.string()
	v.InsertedAt = d.time()
	return v, d.n, d.err
}

func (s tagMUS) Size(v Tag) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.UserId)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Color)
	return size + sizeTime(v.InsertedAt)
}

type checkpointMUS struct{}

func (s checkpointMUS) Marshal(v Checkpoint, bs []byte) (n int) {
	n = ord.String.Marshal(v.ProcessorType, bs)
	n += IDMUS.Marshal(v.LastID, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return
}

func (s checkpointMUS) Unmarshal(bs []byte) (v Checkpoint, n int, err error) {
	d := decoder{bs: bs}
	v.ProcessorType = d.string()
	v.LastID = d.id()
	v.UpdatedAt = d.time()
	return v, d.n, d.err
}

func (s checkpointMUS) Size(v Checkpoint) (size int) {
	size = ord.String.Size(v.ProcessorType)
	size += IDMUS.Size(v.LastID)
	return size + sizeTime(v.UpdatedAt)
}

// Timestamps are stored as Unix microseconds; the zero time round-trips to a
// zero time.

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(unixMicro(t), bs)
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(unixMicro(t))
}

func unixMicro(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func marshalStrings(v []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, s := range v {
		n += ord.String.Marshal(s, bs[n:])
	}
	return
}

func sizeStrings(v []string) (size int) {
	size = varint.Int.Size(len(v))
	for _, s := range v {
		size += ord.String.Size(s)
	}
	return
}

// decoder reads fields in order and stops at the first error.
type decoder struct {
	bs  []byte
	n   int
	err error
}

func (d *decoder) id() ID {
	if d.err != nil {
		return 0
	}
	v, n, err := IDMUS.Unmarshal(d.bs[d.n:])
	d.n += n
	d.err = err
	return v
}

func (d *decoder) string() string {
	if d.err != nil {
		return ""
	}
	v, n, err := ord.String.Unmarshal(d.bs[d.n:])
	d.n += n
	d.err = err
	return v
}

func (d *decoder) time() time.Time {
	if d.err != nil {
		return time.Time{}
	}
	v, n, err := varint.Int64.Unmarshal(d.bs[d.n:])
	d.n += n
	d.err = err
	if err != nil || v == 0 {
		return time.Time{}
	}
	return time.UnixMicro(v).UTC()
}

func (d *decoder) strings() []string {
	if d.err != nil {
		return nil
	}
	length, n, err := varint.Int.Unmarshal(d.bs[d.n:])
	d.n += n
	if err != nil {
		d.err = err
		return nil
	}
	if length < 0 || length > len(d.bs)-d.n {
		d.err = fmt.Errorf("%w: string list length %d", ErrMalformedRecord, length)
		return nil
	}
	if length == 0 {
		return nil
	}
	v := make([]string, length)
	for i := range v {
		v[i] = d.string()
		if d.err != nil {
			return nil
		}
	}
	return v
}
