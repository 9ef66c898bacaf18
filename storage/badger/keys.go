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

package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/notekeep/core"
)

// Key prefixes. Primary records are keyed by decimal ID; index keys carry
// big-endian IDs so prefix scans return entries in ID order.
const (
	userRecordPrefix   = "user"
	userNamePrefix     = "username"
	userIDSeq          = "userseq"
	noteRecordPrefix   = "note"
	noteOwnerPrefix    = "noteown"
	noteFolderPrefix   = "notefld"
	noteTagPrefix      = "notetag"
	noteIDSeq          = "noteseq"
	folderRecordPrefix = "folder"
	folderOwnerPrefix  = "folderown"
	folderParentPrefix = "folderpar"
	folderIDSeq        = "folderseq"
	tagRecordPrefix    = "tag"
	tagOwnerPrefix     = "tagown"
)

// makeUserKey generates a key for a user by ID.
func makeUserKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", userRecordPrefix, id))
}

// makeUserNameKey generates the username index key.
// Format: prefix:username
func makeUserNameKey(username string) []byte {
	return []byte(userNamePrefix + ":" + username)
}

// makeNoteKey generates a key for a note by ID.
func makeNoteKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", noteRecordPrefix, id))
}

// makeNoteOwnerKey generates the owner index key.
// Format: prefix:userID:noteID
func makeNoteOwnerKey(userID, noteID core.ID) []byte {
	return makeIndexKey(noteOwnerPrefix, userID, noteID)
}

// makeNoteFolderKey generates the folder index key. Root notes use folderID 0.
// Format: prefix:userID:folderID:noteID
func makeNoteFolderKey(userID, folderID, noteID core.ID) []byte {
	return makeIndexKey(noteFolderPrefix, userID, folderID, noteID)
}

// makeNoteTagKey generates the tag index key.
// Format: prefix:tagID:noteID
func makeNoteTagKey(tagID, noteID core.ID) []byte {
	return makeIndexKey(noteTagPrefix, tagID, noteID)
}

// makeFolderKey generates a key for a folder by ID.
func makeFolderKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", folderRecordPrefix, id))
}

// makeFolderOwnerKey generates the folder owner index key.
// Format: prefix:userID:folderID
func makeFolderOwnerKey(userID, folderID core.ID) []byte {
	return makeIndexKey(folderOwnerPrefix, userID, folderID)
}

// makeFolderParentKey generates the child index key.
// Format: prefix:userID:parentID:folderID
func makeFolderParentKey(userID, parentID, folderID core.ID) []byte {
	return makeIndexKey(folderParentPrefix, userID, parentID, folderID)
}

// makeTagKey generates a key for a tag by ID.
func makeTagKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", tagRecordPrefix, id))
}

// makeTagOwnerKey generates the tag owner index key, ordered by name.
// Format: prefix:userID:name
func makeTagOwnerKey(userID core.ID, name string) []byte {
	buf := makeIndexKey(tagOwnerPrefix, userID)
	return append(buf, name...)
}

// makeCheckpointKey generates a key for processor checkpoints.
func makeCheckpointKey(processorType string) []byte {
	return []byte(fmt.Sprintf("%s:chkpt", processorType))
}

// makeIndexKey builds prefix:id1id2... with each ID written big-endian so
// lexicographic order matches numeric order. Passing fewer IDs yields the
// partial key used for prefix scans.
func makeIndexKey(prefix string, ids ...core.ID) []byte {
	buf := make([]byte, len(prefix)+1+8*len(ids))
	offset := copy(buf, prefix)
	buf[offset] = ':'
	offset++
	for _, id := range ids {
		binary.BigEndian.PutUint64(buf[offset:], uint64(id))
		offset += 8
	}
	return buf
}
