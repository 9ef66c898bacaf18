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
	"fmt"
	"log/slog"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Scorer computes query relevance. It holds no per-request state and is safe
// for concurrent use.
type Scorer struct {
	segmenter Segmenter
	logger    *slog.Logger
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer) error

// WithSegmenter replaces the dictionary segmenter.
func WithSegmenter(segmenter Segmenter) ScorerOption {
	return func(s *Scorer) error {
		if segmenter == nil {
			return ErrSegmenterRequired
		}
		s.segmenter = segmenter
		return nil
	}
}

// WithScorerLogger sets a custom logger.
// Default is slog.Default().
func WithScorerLogger(logger *slog.Logger) ScorerOption {
	return func(s *Scorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "scorer")
		return nil
	}
}

// NewScorer creates a scorer that segments with DictionarySegmenter unless
// told otherwise.
func NewScorer(opts ...ScorerOption) (*Scorer, error) {
	s := &Scorer{
		segmenter: DictionarySegmenter{},
		logger:    slog.Default().With("component", "scorer"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

var defaultScorer = &Scorer{segmenter: DictionarySegmenter{}}

// Score rates how well text matches query using the process-wide dictionary
// segmenter. See Scorer.Score.
func Score(query, text string) float64 {
	return defaultScorer.Score(query, text)
}

// Score returns a relevance in [0, 1]:
//   - 0 when query or text is empty
//   - 1 when the lowercased query occurs in the lowercased text
//   - otherwise the larger of the character similarity ratio and the keyword overlap
//
// Score never fails; segmentation errors fall back to whitespace splitting.
func (s *Scorer) Score(query, text string) float64 {
	if query == "" || text == "" {
		return 0.0
	}

	q := strings.ToLower(query)
	t := strings.ToLower(text)

	if strings.Contains(t, q) {
		return 1.0
	}

	return max(similarity(q, t), s.overlap(q, t))
}

// similarity is difflib's matching ratio 2*M/T over runes.
func similarity(a, b string) float64 {
	m := difflib.NewMatcher(runeStrings(a), runeStrings(b))
	return m.Ratio()
}

func runeStrings(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// overlap is the fraction of distinct query tokens present among the text tokens.
func (s *Scorer) overlap(q, t string) float64 {
	queryTokens := s.tokens(q)
	if len(queryTokens) == 0 {
		return 0.0
	}
	textTokens := s.tokens(t)

	hits := 0
	for token := range queryTokens {
		if _, ok := textTokens[token]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(queryTokens))
}

// tokens unions segmenter output with whitespace fields. Separator tokens
// from the segmenter count like any other token; only empty ones are dropped.
func (s *Scorer) tokens(text string) map[string]struct{} {
	set := make(map[string]struct{})
	add := func(tokens []string) {
		for _, token := range tokens {
			if token == "" {
				continue
			}
			set[token] = struct{}{}
		}
	}

	segmented, err := s.segment(text)
	if err != nil {
		s.log().Debug("segmentation failed, using whitespace tokens", "err", err)
		segmented = strings.Fields(text)
	}
	add(segmented)
	add(strings.Fields(text))
	return set
}

func (s *Scorer) segment(text string) (tokens []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			tokens = nil
			err = fmt.Errorf("segmenter panic: %v", r)
		}
	}()
	return s.segmenter.Cut(text)
}

func (s *Scorer) log() *slog.Logger {
	if s.logger == nil {
		return slog.Default()
	}
	return s.logger
}
