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

package tagging

import (
	"context"

	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/storage"
)

const (
	// DefaultBatchSize is the default number of notes in each batch
	DefaultBatchSize = 50
)

// NoteIterator iterates over a user's notes in ascending ID order, in batches.
type NoteIterator struct {
	repo      storage.NoteRepository
	batchSize int
}

// NewNoteIterator creates a new note iterator.
// batchSize: number of notes in each batch (must be > 0)
func NewNoteIterator(repo storage.NoteRepository, batchSize int) *NoteIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &NoteIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// Remaining returns the user's notes with an ID greater than afterID.
func (it *NoteIterator) Remaining(ctx context.Context, userID, afterID core.ID) ([]*core.Note, error) {
	notes, err := it.repo.ListNotes(ctx, userID)
	if err != nil {
		return nil, err
	}

	// ListNotes is ordered by ID, so skip the processed prefix.
	start := 0
	for start < len(notes) && notes[start].Id <= afterID {
		start++
	}
	return notes[start:], nil
}

// ForEach calls fn for each batch of the user's notes after afterID.
// Iteration stops on first error from fn or when all notes are processed.
// Context cancellation is checked between batches.
func (it *NoteIterator) ForEach(ctx context.Context, userID, afterID core.ID, fn func([]*core.Note) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	notes, err := it.Remaining(ctx, userID, afterID)
	if err != nil {
		return err
	}
	return it.Batches(ctx, notes, fn)
}

// Batches calls fn for consecutive batches of notes.
func (it *NoteIterator) Batches(ctx context.Context, notes []*core.Note, fn func([]*core.Note) error) error {
	for i := 0; i < len(notes); i += it.batchSize {
		end := min(i+it.batchSize, len(notes))

		if err := fn(notes[i:end]); err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}
