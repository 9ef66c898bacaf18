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

package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/storage"
)

// Searcher runs ranked searches over a user's notes.
type Searcher struct {
	userRepository storage.UserRepository
	noteRepository storage.NoteRepository
	scorer         *Scorer
	logger         *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "searcher")
		return nil
	}
}

// WithScorer replaces the default scorer.
func WithScorer(scorer *Scorer) Option {
	return func(s *Searcher) error {
		if scorer != nil {
			s.scorer = scorer
		}
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	userRepository storage.UserRepository,
	noteRepository storage.NoteRepository,
	opts ...Option,
) (*Searcher, error) {
	if userRepository == nil {
		return nil, ErrUserRepositoryRequired
	}
	if noteRepository == nil {
		return nil, ErrNoteRepositoryRequired
	}

	s := &Searcher{
		userRepository: userRepository,
		noteRepository: noteRepository,
		scorer:         defaultScorer,
		logger:         slog.Default().With("component", "searcher"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search ranks the notes of username that contain query.
// Returns ErrUserNotFound if the user does not exist; no matches is an
// empty response, not an error.
func (s *Searcher) Search(ctx context.Context, username, query string) (*core.SearchResponse, error) {
	return s.SearchWithMonitor(ctx, username, query, nil)
}

// SearchWithMonitor is Search with callbacks at each stage.
func (s *Searcher) SearchWithMonitor(ctx context.Context, username, query string, monitor SearchMonitor) (*core.SearchResponse, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(username, query)

	// 1. Resolve the user
	user, err := s.userRepository.GetUserByName(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrUserNotFound, username)
		}
		s.logger.Error("error looking up user", "username", username, "err", err)
		return nil, err
	}
	monitor.AfterUserLookup(user)

	// 2. Fetch candidates with the storage substring filter
	candidates, err := s.noteRepository.ListNotesContaining(ctx, user.Id, query)
	if err != nil {
		s.logger.Error("error fetching candidate notes", "userID", user.Id, "err", err)
		return nil, err
	}
	monitor.AfterCandidateFetch(candidates)

	// 3. Score and order
	results := s.scorer.Rank(candidates, query)
	for _, result := range results {
		monitor.Scored(result)
	}

	response := NewResponse(query, results)
	s.logger.Debug("search complete", "userID", user.Id, "candidates", len(candidates), "results", response.Count)
	monitor.Finish(response)

	return response, nil
}
