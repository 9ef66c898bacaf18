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
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/notekeep/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel replays canned responses and records the prompts it saw.
type fakeModel struct {
	responses []string
	err       error
	calls     int
	messages  [][]llms.MessageContent
}

func (m *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	m.messages = append(m.messages, messages)
	if m.err != nil {
		return nil, m.err
	}
	idx := min(m.calls, len(m.responses)-1)
	m.calls++
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: m.responses[idx]}},
	}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func systemPrompt(t *testing.T, messages []llms.MessageContent) string {
	t.Helper()
	require.NotEmpty(t, messages)
	require.Equal(t, llms.ChatMessageTypeSystem, messages[0].Role)
	part, ok := messages[0].Parts[0].(llms.TextContent)
	require.True(t, ok)
	return part.Text
}

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "valid json untouched",
			input:    `{"keywords": ["badger", "go"]}`,
			expected: `{"keywords": ["badger", "go"]}`,
		},
		{
			name:     "missing opening quote on key",
			input:    `{keywords": ["badger"]}`,
			expected: `{"keywords": ["badger"]}`,
		},
		{
			name:     "missing quote after comma",
			input:    `{"a": 1, b": 2}`,
			expected: `{"a": 1, "b": 2}`,
		},
		{
			name:     "bare key",
			input:    `{keywords: ["go"]}`,
			expected: `{"keywords": ["go"]}`,
		},
		{
			name:     "trailing commas",
			input:    `{"keywords": ["go", "badger",], }`,
			expected: `{"keywords": ["go", "badger"] }`,
		},
		{
			name:     "prose around the object",
			input:    "Here you go: {\"keywords\": [\"go\"]} Hope this helps.",
			expected: `{"keywords": ["go"]}`,
		},
		{
			name:     "strings are left alone",
			input:    `{"keywords": ["a, b:", "{c}", "say \"hi\", ok"]}`,
			expected: `{"keywords": ["a, b:", "{c}", "say \"hi\", ok"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, repairJSON(tt.input))
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"keywords": []}`, stripCodeFence("```json\n{\"keywords\": []}\n```"))
	assert.Equal(t, `{"keywords": []}`, stripCodeFence("  {\"keywords\": []}  "))
}

func TestPrompts(t *testing.T) {
	summary := buildSummaryPrompt(ai.SummaryOptions{MinLength: 10, MaxLength: 40})
	assert.Contains(t, summary, "between 10 and 40 words")

	keywords := buildKeywordPrompt(7)
	assert.Contains(t, keywords, "Extract the 7 most important keywords")
	assert.Contains(t, keywords, `"maxItems": 7`)

	// The embedded schema must itself be valid JSON.
	start := strings.Index(keywords, "{\n")
	end := strings.Index(keywords, "}\n\nRules:")
	require.True(t, start >= 0 && end > start)
	assert.True(t, json.Valid([]byte(keywords[start:end+1])))
}

func TestNewProviderRejectsInvalidConfig(t *testing.T) {
	cfg := ai.NewConfig(ai.WithModel(""))

	provider, err := NewProvider(cfg)
	assert.Error(t, err)
	assert.Nil(t, provider)

	_, err = NewSummarizer(cfg)
	assert.Error(t, err)

	_, err = NewKeywordExtractor(cfg)
	assert.Error(t, err)
}

func TestNewProvider(t *testing.T) {
	cfg := ai.NewConfig(ai.WithHost("http://localhost:11434"))

	provider, err := NewProvider(cfg)
	require.NoError(t, err)
	assert.NotNil(t, provider.Summarizer())
	assert.NotNil(t, provider.KeywordExtractor())
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.NoError(t, provider.Close())
}

func TestSummarizer(t *testing.T) {
	ctx := context.Background()
	cfg := ai.DefaultConfig()

	t.Run("returns trimmed model output", func(t *testing.T) {
		model := &fakeModel{responses: []string{"  A short summary.\n"}}
		s := newSummarizer(model, cfg)

		summary, err := s.Summarize(ctx, "This note is long enough to summarize.", ai.SummaryOptions{})
		require.NoError(t, err)
		assert.Equal(t, "A short summary.", summary)

		prompt := systemPrompt(t, model.messages[0])
		assert.Contains(t, prompt, "between 30 and 150 words")
	})

	t.Run("rejects short text without calling the model", func(t *testing.T) {
		model := &fakeModel{responses: []string{"unused"}}
		s := newSummarizer(model, cfg)

		_, err := s.Summarize(ctx, "too short", ai.SummaryOptions{})
		assert.ErrorIs(t, err, ai.ErrContentTooShort)
		assert.Equal(t, 0, model.calls)
	})

	t.Run("truncates long input", func(t *testing.T) {
		model := &fakeModel{responses: []string{"ok"}}
		s := newSummarizer(model, cfg)

		_, err := s.Summarize(ctx, strings.Repeat("笔", 1500), ai.SummaryOptions{})
		require.NoError(t, err)

		human, ok := model.messages[0][1].Parts[0].(llms.TextContent)
		require.True(t, ok)
		assert.Equal(t, ai.MaxSummaryInput, len([]rune(human.Text)))
	})

	t.Run("propagates model errors", func(t *testing.T) {
		boom := errors.New("connection refused")
		s := newSummarizer(&fakeModel{err: boom}, cfg)

		_, err := s.Summarize(ctx, "This note is long enough to summarize.", ai.SummaryOptions{})
		assert.ErrorIs(t, err, boom)
	})
}

func TestKeywordExtractor(t *testing.T) {
	ctx := context.Background()
	cfg := ai.DefaultConfig()
	text := "Badger is an embeddable key-value store written in Go."

	t.Run("parses and cleans keywords", func(t *testing.T) {
		model := &fakeModel{responses: []string{
			"```json\n{\"keywords\": [\"Badger\", \" go \", \"badger\", \"store\"]}\n```",
		}}
		e := newKeywordExtractor(model, cfg)

		keywords, err := e.ExtractKeywords(ctx, text, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"badger", "go"}, keywords)
	})

	t.Run("repairs unquoted keys", func(t *testing.T) {
		model := &fakeModel{responses: []string{`{keywords": ["badger"]}`}}
		e := newKeywordExtractor(model, cfg)

		keywords, err := e.ExtractKeywords(ctx, text, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"badger"}, keywords)
		assert.Contains(t, systemPrompt(t, model.messages[0]), "Extract the 5 most")
	})

	t.Run("retries malformed output", func(t *testing.T) {
		model := &fakeModel{responses: []string{"not json", `{"keywords": ["go"]}`}}
		e := newKeywordExtractor(model, cfg)

		keywords, err := e.ExtractKeywords(ctx, text, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"go"}, keywords)
		assert.Equal(t, 2, model.calls)
	})

	t.Run("gives up after repeated failures", func(t *testing.T) {
		model := &fakeModel{responses: []string{"not json"}}
		e := newKeywordExtractor(model, cfg)

		_, err := e.ExtractKeywords(ctx, text, 3)
		assert.Error(t, err)
		assert.Equal(t, maxParseAttempts, model.calls)
	})

	t.Run("short text skips the model", func(t *testing.T) {
		model := &fakeModel{responses: []string{"unused"}}
		e := newKeywordExtractor(model, cfg)

		keywords, err := e.ExtractKeywords(ctx, "tiny", 3)
		require.NoError(t, err)
		assert.Empty(t, keywords)
		assert.NotNil(t, keywords)
		assert.Equal(t, 0, model.calls)
	})
}
