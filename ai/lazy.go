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

import (
	"context"
	"sync"
)

// ProviderFactory builds the real provider on first use.
type ProviderFactory func() (AIProvider, error)

// LazyProvider is a process-wide AIProvider handle whose underlying
// provider is built on first use. A factory error is remembered and returned
// by every later call.
type LazyProvider struct {
	factory ProviderFactory

	once     sync.Once
	provider AIProvider
	err      error

	mu     sync.Mutex
	closed bool
}

var _ AIProvider = (*LazyProvider)(nil)

// NewLazyProvider wraps factory. Nothing runs until a service is used.
func NewLazyProvider(factory ProviderFactory) *LazyProvider {
	return &LazyProvider{factory: factory}
}

// Get returns the underlying provider, building it if needed.
func (l *LazyProvider) Get() (AIProvider, error) {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return nil, ErrProviderClosed
	}

	l.once.Do(func() {
		if l.factory == nil {
			l.err = ErrFactoryRequired
			return
		}
		provider, err := l.factory()
		l.mu.Lock()
		l.provider, l.err = provider, err
		l.mu.Unlock()
	})
	return l.provider, l.err
}

// Initialized reports whether the factory has run successfully.
func (l *LazyProvider) Initialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.provider != nil && !l.closed
}

// Summarizer returns a summarizer that resolves the provider per call.
func (l *LazyProvider) Summarizer() Summarizer {
	return lazySummarizer{l}
}

// KeywordExtractor returns a keyword extractor that resolves the provider per call.
func (l *LazyProvider) KeywordExtractor() KeywordExtractor {
	return lazyKeywordExtractor{l}
}

// Close closes the underlying provider if it was built.
func (l *LazyProvider) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	// Block a concurrent first use from building a provider after close.
	l.once.Do(func() { l.err = ErrProviderClosed })
	if l.provider != nil {
		return l.provider.Close()
	}
	return nil
}

type lazySummarizer struct {
	l *LazyProvider
}

func (s lazySummarizer) Summarize(ctx context.Context, text string, opts SummaryOptions) (string, error) {
	provider, err := s.l.Get()
	if err != nil {
		return "", err
	}
	return provider.Summarizer().Summarize(ctx, text, opts)
}

type lazyKeywordExtractor struct {
	l *LazyProvider
}

func (e lazyKeywordExtractor) ExtractKeywords(ctx context.Context, text string, topN int) ([]string, error) {
	provider, err := e.l.Get()
	if err != nil {
		return nil, err
	}
	return provider.KeywordExtractor().ExtractKeywords(ctx, text, topN)
}
