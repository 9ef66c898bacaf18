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

package storage

import (
	"fmt"

	"github.com/poiesic/notekeep/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalUser serializes a User to bytes.
func MarshalUser(user *core.User) []byte {
	buf := make([]byte, core.UserMUS.Size(*user))
	core.UserMUS.Marshal(*user, buf)
	return buf
}

// UnmarshalUser deserializes a User from bytes.
func UnmarshalUser(data []byte) (*core.User, error) {
	user, _, err := core.UserMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: user: %w", ErrSerializationFailed, err)
	}
	return &user, nil
}

// MarshalNote serializes a Note to bytes.
func MarshalNote(note *core.Note) []byte {
	buf := make([]byte, core.NoteMUS.Size(*note))
	core.NoteMUS.Marshal(*note, buf)
	return buf
}

// UnmarshalNote deserializes a Note from bytes.
func UnmarshalNote(data []byte) (*core.Note, error) {
	note, _, err := core.NoteMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: note: %w", ErrSerializationFailed, err)
	}
	return &note, nil
}

// MarshalFolder serializes a Folder to bytes.
func MarshalFolder(folder *core.Folder) []byte {
	buf := make([]byte, core.FolderMUS.Size(*folder))
	core.FolderMUS.Marshal(*folder, buf)
	return buf
}

// UnmarshalFolder deserializes a Folder from bytes.
func UnmarshalFolder(data []byte) (*core.Folder, error) {
	folder, _, err := core.FolderMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: folder: %w", ErrSerializationFailed, err)
	}
	return &folder, nil
}

// MarshalTag serializes a Tag to bytes.
func MarshalTag(tag *core.Tag) []byte {
	buf := make([]byte, core.TagMUS.Size(*tag))
	core.TagMUS.Marshal(*tag, buf)
	return buf
}

// UnmarshalTag deserializes a Tag from bytes.
func UnmarshalTag(data []byte) (*core.Tag, error) {
	tag, _, err := core.TagMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: tag: %w", ErrSerializationFailed, err)
	}
	return &tag, nil
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	buf := make([]byte, core.CheckpointMUS.Size(*checkpoint))
	core.CheckpointMUS.Marshal(*checkpoint, buf)
	return buf
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	checkpoint, _, err := core.CheckpointMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: checkpoint: %w", ErrSerializationFailed, err)
	}
	return &checkpoint, nil
}
