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

package mock

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/poiesic/notekeep/ai"
)

// MockKeywordExtractor is a test double for ai.KeywordExtractor.
type MockKeywordExtractor struct {
	// ExtractKeywordsFunc is called by ExtractKeywords, after the input rules, if set.
	ExtractKeywordsFunc func(ctx context.Context, text string, topN int) ([]string, error)

	callCount atomic.Int64
}

var _ ai.KeywordExtractor = (*MockKeywordExtractor)(nil)

// NewMockKeywordExtractor creates a mock keyword extractor with default behavior.
func NewMockKeywordExtractor() *MockKeywordExtractor {
	return &MockKeywordExtractor{}
}

// ExtractKeywords returns the topN most frequent words of text.
// Ties keep first-appearance order.
func (m *MockKeywordExtractor) ExtractKeywords(ctx context.Context, text string, topN int) ([]string, error) {
	m.callCount.Add(1)

	text, topN, ok := ai.PrepareKeywordInput(text, topN)
	if !ok {
		return []string{}, nil
	}

	if m.ExtractKeywordsFunc != nil {
		return m.ExtractKeywordsFunc(ctx, text, topN)
	}

	type wordCount struct {
		word  string
		count int
	}
	counts := make(map[string]*wordCount)
	var order []*wordCount
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:\"'()[]{}—–-")
		if len(word) < 3 {
			continue
		}
		wc, ok := counts[word]
		if !ok {
			wc = &wordCount{word: word}
			counts[word] = wc
			order = append(order, wc)
		}
		wc.count++
	}

	slices.SortStableFunc(order, func(a, b *wordCount) int {
		return cmp.Compare(b.count, a.count)
	})

	keywords := make([]string, 0, topN)
	for _, wc := range order {
		keywords = append(keywords, wc.word)
	}
	return ai.CleanKeywords(keywords, topN), nil
}

// CallCount returns the number of times ExtractKeywords was called.
func (m *MockKeywordExtractor) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockKeywordExtractor) Reset() {
	m.callCount.Store(0)
	m.ExtractKeywordsFunc = nil
}
