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
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/poiesic/notekeep/ai"
	"github.com/tmc/langchaingo/llms"
)

// Summarizer implements ai.Summarizer using an OpenAI-compatible chat API.
type Summarizer struct {
	client   llms.Model
	defaults ai.SummaryOptions
	logger   *slog.Logger
}

var _ ai.Summarizer = (*Summarizer)(nil)

func newSummarizer(client llms.Model, config *ai.Config) *Summarizer {
	return &Summarizer{
		client:   client,
		defaults: config.Summary,
		logger:   slog.Default().With("component", "openai-summarizer"),
	}
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, err
	}
	return newSummarizer(client, config), nil
}

// Summarize condenses text with the model.
// Zero fields of opts take the configured defaults.
func (s *Summarizer) Summarize(ctx context.Context, text string, opts ai.SummaryOptions) (string, error) {
	if opts.MaxLength <= 0 {
		opts.MaxLength = s.defaults.MaxLength
	}
	if opts.MinLength <= 0 {
		opts.MinLength = s.defaults.MinLength
	}
	text, opts, err := ai.PrepareSummaryInput(text, opts)
	if err != nil {
		return "", err
	}

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, buildSummaryPrompt(opts)),
		llms.TextParts(llms.ChatMessageTypeHuman, text),
	}

	response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		s.logger.Error("failed to generate summary", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", errors.New("no choices returned from model")
	}

	summary := strings.TrimSpace(response.Choices[0].Content)
	s.logger.Debug("generated summary", "inputRunes", len([]rune(text)), "summaryLength", len(summary))
	return summary, nil
}
