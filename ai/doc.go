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

// Package ai provides abstractions for the optional AI services used in notekeep.
//
// This package defines interfaces for summarization and keyword extraction.
// Search and scoring never depend on it; the tagging package and the CLI do.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Summarizer: condenses a note into a short summary
//   - KeywordExtractor: picks the most representative keywords of a note
//   - AIProvider: aggregates AI services for convenient initialization
//
// Input rules shared by every implementation live here too: summaries need
// at least MinSummaryInput characters and only read the first MaxSummaryInput,
// and keyword extraction of fewer than MinKeywordInput characters yields no
// keywords.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Lazy Initialization
//
// Models are expensive to connect to and often unused. LazyProvider defers
// building the real provider until the first call and shares it process-wide:
//
//	provider := ai.NewLazyProvider(func() (ai.AIProvider, error) {
//	    return openai.NewProvider(cfg)
//	})
//	defer provider.Close()
package ai
