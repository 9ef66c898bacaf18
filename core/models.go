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
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Default colors applied when a folder or tag is created without one.
const (
	DefaultFolderColor = "#67c23a"
	DefaultTagColor    = "#409eff"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
// Sequences never hand out 0, so a zero ID means "no reference".
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// User is an account that owns notes, folders and tags.
type User struct {
	Id           ID
	Username     string
	PasswordHash string
	InsertedAt   time.Time
	UpdatedAt    time.Time
}

// Note is a single titled text document owned by one user.
type Note struct {
	Id         ID
	UserId     ID
	Title      string
	Content    string
	FolderId   ID       // 0 when the note sits at the root
	Tags       []string // Tag names, unique within the note
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// HasTag reports whether the note carries the named tag.
func (n *Note) HasTag(name string) bool {
	for _, t := range n.Tags {
		if t == name {
			return true
		}
	}
	return false
}

// Folder groups notes. Folders nest through ParentId.
type Folder struct {
	Id         ID
	UserId     ID
	ParentId   ID // 0 for top-level folders
	Name       string
	Color      string
	InsertedAt time.Time
}

// FolderNode is a folder together with its nested children.
type FolderNode struct {
	Folder   *Folder
	Children []*FolderNode
}

// Tag is a named label a user can attach to notes.
type Tag struct {
	Id         ID
	UserId     ID
	Name       string
	Color      string
	InsertedAt time.Time
}

// TagID returns the deterministic ID of a user's tag.
// Tag names are unique per user, so the (user, name) tuple identifies the tag.
func TagID(userID ID, name string) ID {
	return IDFromContent(tagTuple(userID, name))
}

func tagTuple(userID ID, name string) string {
	return "(" + strconv.FormatUint(uint64(userID), 10) + "," + name + ")"
}

// Checkpoint records how far a bulk processor has progressed.
type Checkpoint struct {
	ProcessorType string
	LastID        ID
	UpdatedAt     time.Time
}

// ScoredNote is a note paired with its relevance score for a query.
type ScoredNote struct {
	Note  *Note
	Score float64
}

// SearchResponse is the ordered outcome of a search.
type SearchResponse struct {
	Query   string
	Results []*ScoredNote
	Count   int
}
