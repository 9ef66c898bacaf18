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
	"fmt"

	"github.com/poiesic/notekeep/ai"
)

const summaryPromptTemplate = `Summarize the note given by the user.

Rules:
- Write between %d and %d words.
- Use the same language as the note. Chinese notes get a Chinese summary.
- Keep names, dates and numbers exactly as written.
- Output ONLY the summary text. Do not include any preamble, title, explanation or quotation marks.`

const keywordResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "keywords": {
      "type": "array",
      "items": {"type": "string"},
      "maxItems": %d
    }
  },
  "required": ["keywords"],
  "additionalProperties": false
}`

const keywordPromptTemplate = `Extract the %d most important keywords from the note given by the user and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Keywords are lowercase, 1-3 words, in the language of the note.
- Order keywords from most to least important.
- Include only words or phrases that appear in or are clearly implied by the note. Do not hallucinate.
- If no keywords can be identified, return "keywords": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "Badger is an embeddable key-value store written in Go."
Output:
{"keywords": ["badger", "key-value store", "go"]}

Example (Chinese):
Input: "今天学习了数据库索引的原理"
Output:
{"keywords": ["数据库", "索引", "原理"]}`

// buildSummaryPrompt creates the system prompt for a summary request.
func buildSummaryPrompt(opts ai.SummaryOptions) string {
	return fmt.Sprintf(summaryPromptTemplate, opts.MinLength, opts.MaxLength)
}

// buildKeywordPrompt creates the system prompt with the schema embedded.
func buildKeywordPrompt(topN int) string {
	return fmt.Sprintf(keywordPromptTemplate, topN, fmt.Sprintf(keywordResponseSchema, topN))
}
