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

package ai

import "context"

// SummaryOptions bounds the length of a generated summary.
type SummaryOptions struct {
	MaxLength int
	MinLength int
}

// Summarizer condenses text.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize returns a summary of text.
	// Returns ErrContentTooShort if text has fewer than MinSummaryInput characters.
	Summarize(ctx context.Context, text string, opts SummaryOptions) (string, error)
}

// KeywordExtractor picks representative keywords from text.
// Implementations must be thread-safe for concurrent use.
type KeywordExtractor interface {
	// ExtractKeywords returns up to topN keywords, most relevant first.
	// A topN of zero or less selects DefaultKeywordCount.
	// Returns an empty slice for text shorter than MinKeywordInput.
	ExtractKeywords(ctx context.Context, text string, topN int) ([]string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Summarizer returns the summarization service.
	Summarizer() Summarizer

	// KeywordExtractor returns the keyword extraction service.
	KeywordExtractor() KeywordExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
