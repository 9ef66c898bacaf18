package tagging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/poiesic/notekeep/core"
)

// BatchProcessor tags a batch of notes, retrying keyword extraction.
type BatchProcessor struct {
	tagger         *Tagger
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of attempts for each extraction call
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(tagger *Tagger, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		tagger:         tagger,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process tags every note in the batch. A failing note does not stop the
// rest of the batch; all failures are returned joined.
func (bp *BatchProcessor) Process(ctx context.Context, notes []*core.Note) error {
	var failures []error
	for _, note := range notes {
		_, err := bp.tagger.tag(ctx, note, func() ([]string, error) {
			var keywords []string
			err := RetryWithBackoff(ctx, func() error {
				var err error
				keywords, err = bp.tagger.extractor.ExtractKeywords(ctx, note.Content, bp.tagger.topN)
				return err
			}, bp.maxRetries, bp.retryBaseDelay)
			if err != nil {
				return nil, fmt.Errorf("after %d attempts: %w", bp.maxRetries, err)
			}
			return keywords, nil
		})
		if err != nil {
			failures = append(failures, err)
		}
		if ctx.Err() != nil {
			break
		}
	}

	if len(failures) > 0 {
		return errors.Join(failures...)
	}
	return ctx.Err()
}
