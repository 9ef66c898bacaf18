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
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/poiesic/notekeep/ai"
	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/storage"
)

// checkpointPrefix namespaces retagging checkpoints per user.
const checkpointPrefix = "tagging:"

// Config holds configuration for a bulk retagging run.
type Config struct {
	// BatchSize is the number of notes to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of notes)
	ReportInterval int

	// MaxRetries is the maximum number of attempts for each extraction
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// TopN is the number of keywords that become tags
	TopN int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 10,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
		TopN:           DefaultTopN,
	}
}

// Retagger replaces the tags of every note of a user with extracted keywords.
type Retagger struct {
	checkpoints storage.CheckpointRepository
	config      *Config
	progress    io.Writer
	processor   *BatchProcessor
	iterator    *NoteIterator
	logger      *slog.Logger
}

// NewRetagger creates a new retagger.
// progress: where to write progress output (typically os.Stderr)
func NewRetagger(
	notes storage.NoteRepository,
	checkpoints storage.CheckpointRepository,
	extractor ai.KeywordExtractor,
	config *Config,
	progress io.Writer,
) (*Retagger, error) {
	if checkpoints == nil {
		return nil, ErrCheckpointRepositoryRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	logger := slog.Default().With("component", "retagger")
	tagger, err := NewTagger(notes, extractor, config.TopN, logger)
	if err != nil {
		return nil, err
	}

	maxRetries := config.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &Retagger{
		checkpoints: checkpoints,
		config:      config,
		progress:    progress,
		processor:   NewBatchProcessor(tagger, maxRetries, config.RetryDelay),
		iterator:    NewNoteIterator(notes, config.BatchSize),
		logger:      logger,
	}, nil
}

// CheckpointName returns the checkpoint key of a user's retagging run.
func CheckpointName(userID core.ID) string {
	return checkpointPrefix + strconv.FormatUint(uint64(userID), 10)
}

// Run tags every note of userID not covered by a previous run's checkpoint.
// The checkpoint advances after each batch. Returns the number of notes tagged.
func (r *Retagger) Run(ctx context.Context, userID core.ID) (int, error) {
	name := CheckpointName(userID)
	checkpoint, err := r.checkpoints.LoadCheckpoint(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	var afterID core.ID
	if checkpoint != nil {
		afterID = checkpoint.LastID
	}

	notes, err := r.iterator.Remaining(ctx, userID, afterID)
	if err != nil {
		return 0, fmt.Errorf("failed to query notes: %w", err)
	}

	total := len(notes)
	if total == 0 {
		fmt.Fprintf(r.progress, "No notes to tag (0 notes)\n")
		return 0, nil
	}

	if afterID != 0 {
		fmt.Fprintf(r.progress, "Resuming after note %v\n", afterID)
	}
	fmt.Fprintf(r.progress, "Starting tagging of %d notes (batch size: %d)\n", total, r.iterator.batchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	err = r.iterator.Batches(ctx, notes, func(batch []*core.Note) error {
		if err := r.processor.Process(ctx, batch); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		last := batch[len(batch)-1].Id
		if err := r.checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{ProcessorType: name, LastID: last}); err != nil {
			return fmt.Errorf("failed to save checkpoint: %w", err)
		}

		processed += len(batch)
		tracker.Update(processed)
		r.logger.Debug("batch tagged", "user", userID, "lastNote", last, "processed", processed)
		return nil
	})
	if err != nil {
		fmt.Fprintln(r.progress)
		return processed, err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Tagging complete. Processed %d notes in %v\n", total, elapsed.Round(time.Millisecond))
	return processed, nil
}

// Reset forgets the checkpoint so the next Run starts from the first note.
func (r *Retagger) Reset(ctx context.Context, userID core.ID) error {
	return r.checkpoints.DeleteCheckpoint(ctx, CheckpointName(userID))
}
