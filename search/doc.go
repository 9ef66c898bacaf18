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

// Package search ranks a user's notes against a free-text query.
//
// Scoring combines three signals:
//   - Containment: a query found inside the text, ignoring case, scores 1.0
//   - Character similarity: the Ratcliff/Obershelp matching ratio of query and text
//   - Keyword overlap: the fraction of query words found among the text's words,
//     where words come from dictionary segmentation (for scripts written
//     without spaces) unioned with plain whitespace splitting
//
// A note's rank is twice its title score plus its content score. The Searcher
// fetches candidates from storage with a case-sensitive substring filter and
// ranks them with a stable sort, so ties keep storage order.
//
// Score and Rank are pure functions and safe for concurrent use.
package search
