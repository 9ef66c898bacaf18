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
	"fmt"
	"log/slog"

	"github.com/poiesic/notekeep/ai"
	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/storage"
)

// DefaultTopN is the number of keywords that become tags.
const DefaultTopN = 5

// Tagger replaces a note's tags with the keywords of its content.
type Tagger struct {
	notes     storage.NoteRepository
	extractor ai.KeywordExtractor
	topN      int
	logger    *slog.Logger
}

// NewTagger creates a Tagger. A non-positive topN selects DefaultTopN.
func NewTagger(notes storage.NoteRepository, extractor ai.KeywordExtractor, topN int, logger *slog.Logger) (*Tagger, error) {
	if notes == nil {
		return nil, ErrNoteRepositoryRequired
	}
	if extractor == nil {
		return nil, ErrAIProviderRequired
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tagger{
		notes:     notes,
		extractor: extractor,
		topN:      topN,
		logger:    logger,
	}, nil
}

// TagNote loads a note, extracts keywords from its content and makes them
// the note's only tags. Content too short for extraction clears the tags.
func (t *Tagger) TagNote(ctx context.Context, userID, noteID core.ID) (*core.Note, error) {
	note, err := t.notes.GetNote(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	return t.tag(ctx, note, func() ([]string, error) {
		return t.extractor.ExtractKeywords(ctx, note.Content, t.topN)
	})
}

// tag stores the keywords produced by extract as the note's tags.
func (t *Tagger) tag(ctx context.Context, note *core.Note, extract func() ([]string, error)) (*core.Note, error) {
	keywords, err := extract()
	if err != nil {
		return nil, fmt.Errorf("note %v keyword extraction failed: %w", note.Id, err)
	}

	updated, err := t.notes.SetNoteTags(ctx, note.UserId, note.Id, keywords...)
	if err != nil {
		return nil, fmt.Errorf("note %v tag update failed: %w", note.Id, err)
	}

	t.logger.Debug("tagged note", "note", note.Id, "tags", updated.Tags)
	return updated, nil
}
