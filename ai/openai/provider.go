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

package openai

import (
	"log/slog"

	"github.com/poiesic/notekeep/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Provider implements ai.AIProvider using an OpenAI-compatible chat model.
// The summarizer and keyword extractor share one client.
type Provider struct {
	config     *ai.Config
	summarizer *Summarizer
	extractor  *KeywordExtractor
	logger     *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.AIProvider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:     config,
		summarizer: newSummarizer(client, config),
		extractor:  newKeywordExtractor(client, config),
		logger:     slog.Default().With("component", "openai-provider"),
	}, nil
}

// newClient validates config and creates the chat client.
func newClient(config *ai.Config) (llms.Model, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.Token),
		openai.WithModel(config.Model),
	)
}

// Summarizer returns the summarization service.
func (p *Provider) Summarizer() ai.Summarizer {
	return p.summarizer
}

// KeywordExtractor returns the keyword extraction service.
func (p *Provider) KeywordExtractor() ai.KeywordExtractor {
	return p.extractor
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
