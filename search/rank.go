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
	"cmp"
	"slices"

	"github.com/poiesic/notekeep/core"
)

// TitleWeight multiplies a note's title score when ranking.
const TitleWeight = 2.0

// Rank scores candidates against query with the default scorer.
// See Scorer.Rank.
func Rank(candidates []*core.Note, query string) []*core.ScoredNote {
	return defaultScorer.Rank(candidates, query)
}

// Rank scores each candidate as TitleWeight*Score(title) + Score(content) and
// returns them best first. The sort is stable, so equal totals keep candidate
// order. Candidates are not modified. The total is a ranking key and may
// exceed 1.
func (s *Scorer) Rank(candidates []*core.Note, query string) []*core.ScoredNote {
	results := make([]*core.ScoredNote, 0, len(candidates))
	for _, note := range candidates {
		if note == nil {
			continue
		}
		total := TitleWeight*s.Score(query, note.Title) + s.Score(query, note.Content)
		results = append(results, &core.ScoredNote{Note: note, Score: total})
	}

	slices.SortStableFunc(results, func(a, b *core.ScoredNote) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return results
}

// NewResponse wraps ranked results for query.
func NewResponse(query string, results []*core.ScoredNote) *core.SearchResponse {
	if results == nil {
		results = make([]*core.ScoredNote, 0)
	}
	return &core.SearchResponse{
		Query:   query,
		Results: results,
		Count:   len(results),
	}
}
