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
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/notekeep/ai"
	"github.com/tmc/langchaingo/llms"
)

// maxParseAttempts bounds retries on malformed model output.
const maxParseAttempts = 3

// KeywordExtractor implements ai.KeywordExtractor using an OpenAI-compatible chat API.
type KeywordExtractor struct {
	client       llms.Model
	defaultCount int
	logger       *slog.Logger
}

var _ ai.KeywordExtractor = (*KeywordExtractor)(nil)

// keywordResponse is the JSON shape requested from the model.
type keywordResponse struct {
	Keywords []string `json:"keywords"`
}

func newKeywordExtractor(client llms.Model, config *ai.Config) *KeywordExtractor {
	return &KeywordExtractor{
		client:       client,
		defaultCount: config.KeywordCount,
		logger:       slog.Default().With("component", "openai-keywords"),
	}
}

// NewKeywordExtractor creates a new keyword extractor using the provided configuration.
//
// Returns ai.KeywordExtractor interface to enforce abstraction.
func NewKeywordExtractor(config *ai.Config) (ai.KeywordExtractor, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, err
	}
	return newKeywordExtractor(client, config), nil
}

// ExtractKeywords asks the model for the topN keywords of text.
func (e *KeywordExtractor) ExtractKeywords(ctx context.Context, text string, topN int) ([]string, error) {
	if topN <= 0 {
		topN = e.defaultCount
	}
	text, topN, ok := ai.PrepareKeywordInput(text, topN)
	if !ok {
		return []string{}, nil
	}

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, buildKeywordPrompt(topN)),
		llms.TextParts(llms.ChatMessageTypeHuman, text),
	}

	// Try up to 3 times in case of malformed JSON
	var result keywordResponse
	var lastErr error
	for attempt := 0; attempt < maxParseAttempts; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return []string{}, nil
		}

		responseText := repairJSON(stripCodeFence(response.Choices[0].Content))
		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing keyword response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse keyword response after retries", "err", lastErr)
		return nil, lastErr
	}

	keywords := ai.CleanKeywords(result.Keywords, topN)
	e.logger.Debug("extracted keywords", "returned", len(result.Keywords), "kept", len(keywords))
	return keywords, nil
}

// stripCodeFence removes a surrounding markdown code fence, if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
