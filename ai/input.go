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
	"strings"
	"unicode/utf8"
)

// Input limits, counted in characters (runes).
const (
	MinSummaryInput     = 20
	MaxSummaryInput     = 1000
	MinKeywordInput     = 10
	DefaultKeywordCount = 5
	DefaultSummaryMax   = 150
	DefaultSummaryMin   = 30
)

// DefaultSummaryOptions returns the default summary bounds.
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{MaxLength: DefaultSummaryMax, MinLength: DefaultSummaryMin}
}

// PrepareSummaryInput applies the summary input rules. It rejects short text,
// truncates long text, and fills unset or inconsistent options from the defaults.
func PrepareSummaryInput(text string, opts SummaryOptions) (string, SummaryOptions, error) {
	if utf8.RuneCountInString(text) < MinSummaryInput {
		return "", opts, ErrContentTooShort
	}
	text = truncateRunes(text, MaxSummaryInput)

	if opts.MaxLength <= 0 {
		opts.MaxLength = DefaultSummaryMax
	}
	if opts.MinLength <= 0 {
		opts.MinLength = min(DefaultSummaryMin, opts.MaxLength)
	}
	if opts.MinLength > opts.MaxLength {
		opts.MinLength = opts.MaxLength
	}
	return text, opts, nil
}

// PrepareKeywordInput applies the keyword input rules. ok is false when text
// is too short to extract from.
func PrepareKeywordInput(text string, topN int) (string, int, bool) {
	if topN <= 0 {
		topN = DefaultKeywordCount
	}
	if utf8.RuneCountInString(text) < MinKeywordInput {
		return "", topN, false
	}
	return text, topN, true
}

// CleanKeywords trims, lowercases and de-duplicates keywords, keeping at most topN.
func CleanKeywords(keywords []string, topN int) []string {
	if topN <= 0 {
		topN = DefaultKeywordCount
	}
	result := make([]string, 0, min(len(keywords), topN))
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		result = append(result, kw)
		if len(result) == topN {
			break
		}
	}
	return result
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
