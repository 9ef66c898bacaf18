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
	"context"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/storage"
)

// NoteRepository implements storage.NoteRepository for BadgerDB.
type NoteRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.NoteRepository = (*NoteRepository)(nil)

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(backend *Backend) (*NoteRepository, error) {
	idSeq, err := backend.GetSequence(noteIDSeq)
	if err != nil {
		return nil, err
	}

	return &NoteRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *NoteRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *NoteRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddNotes stores new notes.
func (r *NoteRepository) AddNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error) {
	for _, note := range notes {
		if err := core.ValidateNote(note); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, note := range notes {
			if _, err := readOwnedFolder(tx, note.UserId, note.FolderId); err != nil {
				return err
			}

			id, err := nextID(r.idSeq)
			if err != nil {
				return err
			}
			note.Id = id
			note.Tags = normalizeTags(note.Tags)
			note.InsertedAt = now()
			note.UpdatedAt = note.InsertedAt

			if err := r.writeNote(tx, note); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNotes replaces existing notes.
func (r *NoteRepository) UpdateNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error) {
	for _, note := range notes {
		if err := core.ValidateNote(note); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, note := range notes {
			old, err := readOwnedNote(tx, note.UserId, note.Id)
			if err != nil {
				return err
			}
			if _, err := readOwnedFolder(tx, note.UserId, note.FolderId); err != nil {
				return err
			}
			if err := deleteNoteIndexes(tx, old); err != nil {
				return err
			}

			note.Tags = normalizeTags(note.Tags)
			note.InsertedAt = old.InsertedAt
			note.UpdatedAt = now()
			if err := r.writeNote(tx, note); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// DeleteNotes removes notes owned by userID.
func (r *NoteRepository) DeleteNotes(ctx context.Context, userID core.ID, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			note, err := readOwnedNote(tx, userID, id)
			if err != nil {
				return err
			}
			if err := deleteNoteIndexes(tx, note); err != nil {
				return err
			}
			if err := tx.Delete(makeNoteKey(id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetNote retrieves a note owned by userID.
func (r *NoteRepository) GetNote(ctx context.Context, userID, id core.ID) (*core.Note, error) {
	var result *core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readOwnedNote(tx, userID, id)
		return err
	}, false)
	return result, err
}

// GetNotes retrieves the notes of userID among ids, skipping missing ones.
func (r *NoteRepository) GetNotes(ctx context.Context, userID core.ID, ids ...core.ID) ([]*core.Note, error) {
	var results []*core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			note, err := readRecord(tx, makeNoteKey(id), storage.UnmarshalNote)
			if err != nil {
				return err
			}
			if note != nil && note.UserId == userID {
				results = append(results, note)
			}
		}
		return nil
	}, false)
	return results, err
}

// ListNotes returns every note of a user in ascending ID order.
func (r *NoteRepository) ListNotes(ctx context.Context, userID core.ID) ([]*core.Note, error) {
	return r.listByIndex(ctx, makeIndexKey(noteOwnerPrefix, userID), nil)
}

// ListNotesContaining returns the user's notes whose title or content contains
// substring, compared case-sensitively.
func (r *NoteRepository) ListNotesContaining(ctx context.Context, userID core.ID, substring string) ([]*core.Note, error) {
	return r.listByIndex(ctx, makeIndexKey(noteOwnerPrefix, userID), func(note *core.Note) bool {
		return strings.Contains(note.Title, substring) || strings.Contains(note.Content, substring)
	})
}

// ListNotesInFolder returns the user's notes filed directly in folderID.
func (r *NoteRepository) ListNotesInFolder(ctx context.Context, userID, folderID core.ID) ([]*core.Note, error) {
	return r.listByIndex(ctx, makeIndexKey(noteFolderPrefix, userID, folderID), nil)
}

// ListNotesByTag returns the user's notes carrying the named tag.
func (r *NoteRepository) ListNotesByTag(ctx context.Context, userID core.ID, name string) ([]*core.Note, error) {
	tagID := core.TagID(userID, strings.TrimSpace(name))
	return r.listByIndex(ctx, makeIndexKey(noteTagPrefix, tagID), func(note *core.Note) bool {
		return note.UserId == userID
	})
}

// AddTagsToNote appends the named tags the note does not already carry.
func (r *NoteRepository) AddTagsToNote(ctx context.Context, userID, noteID core.ID, names ...string) (*core.Note, error) {
	return r.retag(userID, noteID, func(current []string) []string {
		return append(slices.Clone(current), names...)
	})
}

// SetNoteTags replaces the note's tags with names.
func (r *NoteRepository) SetNoteTags(ctx context.Context, userID, noteID core.ID, names ...string) (*core.Note, error) {
	return r.retag(userID, noteID, func([]string) []string {
		return names
	})
}

func (r *NoteRepository) retag(userID, noteID core.ID, tags func(current []string) []string) (*core.Note, error) {
	var result *core.Note
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		note, err := readOwnedNote(tx, userID, noteID)
		if err != nil {
			return err
		}
		if err := deleteNoteIndexes(tx, note); err != nil {
			return err
		}

		updated := *note
		updated.Tags = tags(note.Tags)
		if err := core.ValidateNote(&updated); err != nil {
			return err
		}
		updated.Tags = normalizeTags(updated.Tags)
		updated.UpdatedAt = now()
		if err := r.writeNote(tx, &updated); err != nil {
			return err
		}
		result = &updated
		return tx.Commit()
	}, true)
	return result, err
}

// listByIndex loads the notes referenced under prefix, keeping those that
// pass keep. A nil keep accepts every note.
func (r *NoteRepository) listByIndex(ctx context.Context, prefix []byte, keep func(*core.Note) bool) ([]*core.Note, error) {
	results := make([]*core.Note, 0)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		ids, err := scanIndex(ctx, tx, prefix)
		if err != nil {
			return err
		}
		for _, id := range ids {
			note, err := readRecord(tx, makeNoteKey(id), storage.UnmarshalNote)
			if err != nil {
				return err
			}
			if note == nil {
				continue
			}
			if keep == nil || keep(note) {
				results = append(results, note)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// writeNote stores a note with its owner, folder and tag indexes,
// creating any tags the user does not have yet.
func (r *NoteRepository) writeNote(tx *badger.Txn, note *core.Note) error {
	if err := tx.Set(makeNoteKey(note.Id), storage.MarshalNote(note)); err != nil {
		return err
	}
	if err := setIndex(tx, makeNoteOwnerKey(note.UserId, note.Id), note.Id); err != nil {
		return err
	}
	if err := setIndex(tx, makeNoteFolderKey(note.UserId, note.FolderId, note.Id), note.Id); err != nil {
		return err
	}
	for _, name := range note.Tags {
		tag, _, err := ensureTag(tx, note.UserId, name, "")
		if err != nil {
			return err
		}
		if err := setIndex(tx, makeNoteTagKey(tag.Id, note.Id), note.Id); err != nil {
			return err
		}
	}
	return nil
}

// deleteNoteIndexes removes the owner, folder and tag index entries of note.
func deleteNoteIndexes(tx *badger.Txn, note *core.Note) error {
	keys := [][]byte{
		makeNoteOwnerKey(note.UserId, note.Id),
		makeNoteFolderKey(note.UserId, note.FolderId, note.Id),
	}
	for _, name := range note.Tags {
		keys = append(keys, makeNoteTagKey(core.TagID(note.UserId, name), note.Id))
	}
	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// readOwnedNote reads a note and checks its owner.
func readOwnedNote(tx *badger.Txn, userID, id core.ID) (*core.Note, error) {
	note, err := readRecord(tx, makeNoteKey(id), storage.UnmarshalNote)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, notFound("note", id)
	}
	if note.UserId != userID {
		return nil, forbidden("note", id)
	}
	return note, nil
}

// normalizeTags trims tag names and drops repeats, keeping first occurrence order.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(result, tag) {
			continue
		}
		result = append(result, tag)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
