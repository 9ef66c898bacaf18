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
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL of an OpenAI-compatible API.
	// Example: "http://localhost:11434/v1" for a local Ollama server
	Host string

	// Model is the chat model used for summaries and keywords.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	Model string

	// Token authenticates against the API. Local servers accept any value.
	Token string

	// Summary holds the default summary bounds.
	Summary SummaryOptions

	// KeywordCount is the default number of keywords to extract.
	// Default: 5
	KeywordCount int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the API host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the chat model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithToken sets the API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithSummaryLength sets the default summary bounds.
func WithSummaryLength(minLength, maxLength int) ConfigOption {
	return func(c *Config) {
		c.Summary = SummaryOptions{MaxLength: maxLength, MinLength: minLength}
	}
}

// WithKeywordCount sets the default number of keywords.
func WithKeywordCount(n int) ConfigOption {
	return func(c *Config) {
		c.KeywordCount = n
	}
}

// DefaultConfig returns a Config with sensible defaults for a local OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		Host:         "http://localhost:11434/v1",
		Model:        "qwen2.5:3b",
		Token:        "none",
		Summary:      DefaultSummaryOptions(),
		KeywordCount: DefaultKeywordCount,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:11434"),
//	    WithModel("gpt-4o-mini"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It adds the /v1 suffix to the host if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
	}
	if c.Token == "" {
		c.Token = "none"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.Summary.MinLength < 1 || c.Summary.MaxLength < c.Summary.MinLength {
		return errors.New("ai config: summary lengths must satisfy 1 <= min <= max")
	}
	if c.KeywordCount < 1 {
		return errors.New("ai config: KeywordCount must be at least 1")
	}
	return nil
}
