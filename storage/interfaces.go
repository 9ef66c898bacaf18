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
	"context"

	"github.com/poiesic/notekeep/core"
)

// Repository is the behaviour shared by every repository.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close releases resources held by the repository.
	Close() error
}

// UserRepository stores accounts.
type UserRepository interface {
	Repository
	// AddUser stores a new user and assigns its ID and timestamps.
	// Returns ErrDuplicateKey if the username is taken.
	AddUser(ctx context.Context, user *core.User) (*core.User, error)

	// UpdateUser replaces a stored user and refreshes UpdatedAt.
	// Renaming to a taken username returns ErrDuplicateKey.
	UpdateUser(ctx context.Context, user *core.User) (*core.User, error)

	// GetUser retrieves a user by ID. Returns ErrNotFound if missing.
	GetUser(ctx context.Context, id core.ID) (*core.User, error)

	// GetUserByName retrieves a user by exact username. Returns ErrNotFound if missing.
	GetUserByName(ctx context.Context, username string) (*core.User, error)
}

// NoteRepository stores notes and their folder and tag indexes.
type NoteRepository interface {
	Repository
	// AddNotes stores new notes, assigning IDs and timestamps.
	// A non-zero FolderId must name a folder owned by the note's user.
	// Tags named on the notes are created when missing.
	AddNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error)

	// UpdateNotes replaces existing notes and refreshes UpdatedAt.
	// Returns ErrNotFound if a note is missing or owned by another user.
	UpdateNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error)

	// DeleteNotes removes notes owned by userID.
	// Returns ErrNotFound if any note is missing or owned by another user.
	DeleteNotes(ctx context.Context, userID core.ID, ids ...core.ID) error

	// GetNote retrieves a note owned by userID.
	GetNote(ctx context.Context, userID, id core.ID) (*core.Note, error)

	// GetNotes retrieves the notes of userID among ids, skipping missing ones.
	GetNotes(ctx context.Context, userID core.ID, ids ...core.ID) ([]*core.Note, error)

	// ListNotes returns every note of a user in ascending ID order.
	ListNotes(ctx context.Context, userID core.ID) ([]*core.Note, error)

	// ListNotesContaining returns the user's notes whose title or content contains
	// substring as a literal, case-sensitive match, in ascending ID order.
	ListNotesContaining(ctx context.Context, userID core.ID, substring string) ([]*core.Note, error)

	// ListNotesInFolder returns the user's notes filed directly in folderID.
	// A zero folderID lists the notes at the root.
	ListNotesInFolder(ctx context.Context, userID, folderID core.ID) ([]*core.Note, error)

	// ListNotesByTag returns the user's notes carrying the named tag.
	ListNotesByTag(ctx context.Context, userID core.ID, name string) ([]*core.Note, error)

	// AddTagsToNote appends the named tags the note does not already carry.
	AddTagsToNote(ctx context.Context, userID, noteID core.ID, names ...string) (*core.Note, error)

	// SetNoteTags replaces the note's tags with names.
	SetNoteTags(ctx context.Context, userID, noteID core.ID, names ...string) (*core.Note, error)
}

// FolderRepository stores the folder hierarchy.
type FolderRepository interface {
	Repository
	// AddFolder stores a new folder. A non-zero ParentId must name a folder of the same user.
	AddFolder(ctx context.Context, folder *core.Folder) (*core.Folder, error)

	// UpdateFolder renames, recolors or moves a folder.
	// Returns ErrFolderCycle if the new parent chain reaches the folder.
	UpdateFolder(ctx context.Context, folder *core.Folder) (*core.Folder, error)

	// DeleteFolder removes an empty folder and moves its notes to the root.
	// Returns ErrFolderHasChildren if subfolders remain.
	DeleteFolder(ctx context.Context, userID, id core.ID) error

	// GetFolder retrieves a folder owned by userID.
	GetFolder(ctx context.Context, userID, id core.ID) (*core.Folder, error)

	// ListFolders returns every folder of a user in ascending ID order.
	ListFolders(ctx context.Context, userID core.ID) ([]*core.Folder, error)

	// FolderTree returns the user's top-level folders with their descendants.
	FolderTree(ctx context.Context, userID core.ID) ([]*core.FolderNode, error)
}

// TagRepository stores per-user tags.
type TagRepository interface {
	Repository
	// GetOrCreateTag returns the user's tag with this name, creating it with color
	// when missing. An empty color selects core.DefaultTagColor.
	GetOrCreateTag(ctx context.Context, userID core.ID, name, color string) (*core.Tag, error)

	// GetTag retrieves a tag owned by userID.
	GetTag(ctx context.Context, userID, id core.ID) (*core.Tag, error)

	// FindTagByName retrieves the user's tag with this name. Returns ErrNotFound if missing.
	FindTagByName(ctx context.Context, userID core.ID, name string) (*core.Tag, error)

	// ListTags returns every tag of a user.
	ListTags(ctx context.Context, userID core.ID) ([]*core.Tag, error)
}

// CheckpointRepository stores progress markers for bulk processors.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint for its processor type.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint returns the checkpoint for a processor type, or nil, nil if none exists.
	LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error)

	// DeleteCheckpoint removes a checkpoint. Deleting a missing checkpoint is not an error.
	DeleteCheckpoint(ctx context.Context, processorType string) error
}
