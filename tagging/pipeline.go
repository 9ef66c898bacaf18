package tagging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/notekeep/ai"
	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/storage"
)

// Pipeline tags notes asynchronously on a worker pool.
type Pipeline struct {
	notes    storage.NoteRepository
	pool     *ants.Pool
	poolSize int
	topN     int
	tagger   *Tagger
	pending  sync.WaitGroup
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.poolSize = size
		return nil
	}
}

// WithTopN sets how many keywords become tags.
// Default is DefaultTopN.
func WithTopN(n int) Option {
	return func(p *Pipeline) error {
		p.topN = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new tagging pipeline.
func NewPipeline(notes storage.NoteRepository, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if notes == nil {
		return nil, ErrNoteRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	p := &Pipeline{
		notes:    notes,
		poolSize: poolSize,
		topN:     DefaultTopN,
		logger:   slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.logger = p.logger.With("component", "tagging-pipeline")

	tagger, err := NewTagger(notes, provider.KeywordExtractor(), p.topN, p.logger)
	if err != nil {
		return nil, err
	}
	p.tagger = tagger

	pool, err := ants.NewPool(p.poolSize,
		ants.WithLogger(poolLogger{p.logger}),
		ants.WithPanicHandler(func(v any) {
			p.logger.Error("tagging worker panicked", "panic", v)
		}),
	)
	if err != nil {
		return nil, err
	}
	p.pool = pool

	return p, nil
}

// Submit queues the notes of userID for tagging and returns immediately.
// Errors during async processing are logged but not returned.
func (p *Pipeline) Submit(userID core.ID, noteIDs ...core.ID) error {
	for _, noteID := range noteIDs {
		p.pending.Add(1)
		err := p.pool.Submit(func() {
			defer p.pending.Done()
			if _, err := p.tagger.TagNote(context.Background(), userID, noteID); err != nil {
				p.logger.Error("error tagging note", "user", userID, "note", noteID, "err", err)
			}
		})
		if err != nil {
			p.pending.Done()
			return fmt.Errorf("failed to queue note %v: %w", noteID, err)
		}
	}
	return nil
}

// Wait blocks until every submitted note has been processed.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// Running returns the number of busy workers.
func (p *Pipeline) Running() int {
	return p.pool.Running()
}

// Release waits for queued work and releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.Wait()
	if p.pool != nil {
		p.pool.Release()
	}
}

// poolLogger routes ants logs into slog.
type poolLogger struct {
	logger *slog.Logger
}

func (l poolLogger) Printf(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...))
}
