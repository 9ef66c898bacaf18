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
	"strings"
	"unicode"
)

// repairJSON fixes the formatting slips models make in JSON replies: prose
// around the object, keys missing one or both quotes, and trailing commas.
// Text inside string literals is never changed.
func repairJSON(s string) string {
	rs := []rune(outermostObject(s))
	var b strings.Builder
	b.Grow(len(rs) + 8)

	inString := false
	for i := 0; i < len(rs); i++ {
		ch := rs[i]
		if inString {
			b.WriteRune(ch)
			switch ch {
			case '\\':
				if i+1 < len(rs) {
					i++
					b.WriteRune(rs[i])
				}
			case '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
			b.WriteRune(ch)
		case ',':
			if next := skipSpace(rs, i+1); next < len(rs) && (rs[next] == '}' || rs[next] == ']') {
				continue
			}
			b.WriteRune(ch)
			i = quoteKey(rs, i+1, &b)
		case '{':
			b.WriteRune(ch)
			i = quoteKey(rs, i+1, &b)
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// outermostObject returns the text from the first '{' to the last '}'.
func outermostObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}

// quoteKey copies the whitespace at start and quotes a bare or half-quoted
// key that follows it. It returns the index of the last rune consumed.
func quoteKey(rs []rune, start int, b *strings.Builder) int {
	i := start
	for i < len(rs) && unicode.IsSpace(rs[i]) {
		b.WriteRune(rs[i])
		i++
	}

	end := i
	for end < len(rs) && isKeyRune(rs[end]) {
		end++
	}
	if end == i {
		return i - 1
	}

	key := string(rs[i:end])
	switch {
	case end+1 < len(rs) && rs[end] == '"' && rs[end+1] == ':':
		b.WriteString(`"` + key + `"`)
		return end
	case end < len(rs) && rs[end] == ':':
		b.WriteString(`"` + key + `"`)
		return end - 1
	}
	return i - 1
}

func skipSpace(rs []rune, i int) int {
	for i < len(rs) && unicode.IsSpace(rs[i]) {
		i++
	}
	return i
}

func isKeyRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
