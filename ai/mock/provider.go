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
	"sync"

	"github.com/poiesic/notekeep/ai"
)

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock summarizer and keyword extractor instances.
type MockProvider struct {
	summarizer *MockSummarizer
	extractor  *MockKeywordExtractor

	mu     sync.Mutex
	closed bool
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockSummarizer()/GetMockExtractor() to access concrete types for test assertions.
func NewMockProvider() ai.AIProvider {
	return NewMockProviderWithServices(NewMockSummarizer(), NewMockKeywordExtractor())
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
func NewMockProviderWithServices(summarizer *MockSummarizer, extractor *MockKeywordExtractor) *MockProvider {
	return &MockProvider{
		summarizer: summarizer,
		extractor:  extractor,
	}
}

// Summarizer returns the mock summarizer.
func (p *MockProvider) Summarizer() ai.Summarizer {
	return p.summarizer
}

// KeywordExtractor returns the mock keyword extractor.
func (p *MockProvider) KeywordExtractor() ai.KeywordExtractor {
	return p.extractor
}

// Close records that the provider was closed.
func (p *MockProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *MockProvider) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// GetMockSummarizer returns the underlying mock summarizer for test assertions.
func (p *MockProvider) GetMockSummarizer() *MockSummarizer {
	return p.summarizer
}

// GetMockExtractor returns the underlying mock keyword extractor for test assertions.
func (p *MockProvider) GetMockExtractor() *MockKeywordExtractor {
	return p.extractor
}
