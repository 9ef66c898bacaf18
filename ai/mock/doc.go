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

// Package mock provides test doubles for the ai package interfaces.
//
// # Usage
//
//	provider := mock.NewMockProvider()
//	keywords := provider.(*mock.MockProvider).GetMockExtractor()
//	keywords.ExtractKeywordsFunc = func(ctx context.Context, text string, topN int) ([]string, error) {
//	    return []string{"go", "notes"}, nil
//	}
//
//	// Check call counts
//	count := keywords.CallCount()
//
// # Default Behavior
//
// The mock implementations apply the same input rules as real providers and
// then behave deterministically:
//
//   - MockSummarizer: returns the first sentence of the text, clipped to MaxLength words
//   - MockKeywordExtractor: returns the most frequent words of the text
//   - MockProvider: aggregates mock summarizer and keyword extractor
package mock
