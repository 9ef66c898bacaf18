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
	"context"
	"strings"
	"sync/atomic"

	"github.com/poiesic/notekeep/ai"
)

// MockSummarizer is a test double for ai.Summarizer.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize, after the input rules, if set.
	SummarizeFunc func(ctx context.Context, text string, opts ai.SummaryOptions) (string, error)

	callCount atomic.Int64
}

var _ ai.Summarizer = (*MockSummarizer)(nil)

// NewMockSummarizer creates a mock summarizer with default behavior.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// Summarize returns the first sentence of text, limited to opts.MaxLength words.
func (m *MockSummarizer) Summarize(ctx context.Context, text string, opts ai.SummaryOptions) (string, error) {
	m.callCount.Add(1)

	text, opts, err := ai.PrepareSummaryInput(text, opts)
	if err != nil {
		return "", err
	}

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text, opts)
	}

	sentence := text
	if i := strings.IndexAny(text, ".!?。！？"); i >= 0 {
		sentence = text[:i]
	}
	words := strings.Fields(sentence)
	if len(words) > opts.MaxLength {
		words = words[:opts.MaxLength]
	}
	return strings.Join(words, " "), nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockSummarizer) Reset() {
	m.callCount.Store(0)
	m.SummarizeFunc = nil
}
