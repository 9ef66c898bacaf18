package search

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSegmenter struct{}

func (failingSegmenter) Cut(string) ([]string, error) {
	return nil, errors.New("dictionary missing")
}

type panickingSegmenter struct{}

func (panickingSegmenter) Cut(string) ([]string, error) {
	panic("corrupt dictionary")
}

// spaceKeepingSegmenter mimics dictionary segmenters that emit the
// separators between words as tokens.
type spaceKeepingSegmenter struct{}

func (spaceKeepingSegmenter) Cut(text string) ([]string, error) {
	var tokens []string
	start := 0
	for i, r := range text {
		if r == ' ' {
			if i > start {
				tokens = append(tokens, text[start:i])
			}
			tokens = append(tokens, " ")
			start = i + 1
		}
	}
	if start < len(text) {
		tokens = append(tokens, text[start:])
	}
	return tokens, nil
}

func newWhitespaceScorer(t *testing.T) *Scorer {
	t.Helper()
	scorer, err := NewScorer(WithSegmenter(WhitespaceSegmenter{}))
	require.NoError(t, err)
	return scorer
}

func TestScore_Empty(t *testing.T) {
	tests := []struct {
		name  string
		query string
		text  string
	}{
		{"empty query", "", "some text"},
		{"empty text", "query", ""},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, Score(tt.query, tt.text))
		})
	}
}

func TestScore_Containment(t *testing.T) {
	tests := []struct {
		name  string
		query string
		text  string
	}{
		{"equal strings", "meeting notes", "meeting notes"},
		{"substring", "note", "my notebook"},
		{"case-insensitive", "HeLLo", "say hello world"},
		{"single repeated character", "aa", "baaad"},
		{"single character", "a", "cat"},
		{"CJK substring", "笔记", "这是我的笔记本"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 1.0, Score(tt.query, tt.text))
		})
	}
}

func TestScore_CaseSymmetric(t *testing.T) {
	scorer := newWhitespaceScorer(t)

	pairs := [][2]string{
		{"Quarterly Report", "the quartely reprot draft"},
		{"GoLang", "go language"},
		{"abcd", "BCDE"},
	}
	for _, p := range pairs {
		lower := scorer.Score(p[0], p[1])
		assert.Equal(t, lower, scorer.Score(strings.ToUpper(p[0]), p[1]))
		assert.Equal(t, lower, scorer.Score(p[0], strings.ToUpper(p[1])))
	}
}

func TestScore_NotSymmetricInArguments(t *testing.T) {
	scorer := newWhitespaceScorer(t)

	assert.Equal(t, 1.0, scorer.Score("ab", "abc"))
	assert.InDelta(t, 0.8, scorer.Score("abc", "ab"), 1e-9)
}

func TestScore_CharacterSimilarity(t *testing.T) {
	scorer := newWhitespaceScorer(t)

	// "bcd" matches: 2*3/8
	assert.InDelta(t, 0.75, scorer.Score("abcd", "bcde"), 1e-9)
	// no characters in common and no shared tokens
	assert.Equal(t, 0.0, scorer.Score("a", "b"))
	// text shorter than query: "ab" matches, 2*2/6
	assert.InDelta(t, 2.0/3.0, scorer.Score("abxy", "ab"), 1e-9)
}

func TestScore_KeywordOverlapWins(t *testing.T) {
	scorer := newWhitespaceScorer(t)

	// Both words appear, in the other order, so overlap is 1.0 while the
	// character ratio is lower.
	got := scorer.Score("report quarterly", "quarterly sales report")
	assert.Equal(t, 1.0, got)

	assert.InDelta(t, 0.5, scorer.overlap("alpha omega", "omega point"), 1e-9)
}

func TestScore_Range(t *testing.T) {
	pairs := [][2]string{
		{"x", "y"},
		{"hello world", "world"},
		{"完全不同", "totally different"},
		{"!!!", "???"},
		{"   ", "text"},
		{"longer query than text", "text q"},
		{"笔记 notes", "my notes"},
	}

	for _, p := range pairs {
		got := Score(p[0], p[1])
		assert.GreaterOrEqual(t, got, 0.0, "%q vs %q", p[0], p[1])
		assert.LessOrEqual(t, got, 1.0, "%q vs %q", p[0], p[1])
	}
}

func TestScore_PunctuationOnly(t *testing.T) {
	scorer := newWhitespaceScorer(t)

	assert.NotPanics(t, func() {
		assert.Equal(t, 0.0, scorer.Score("...", ",,,"))
	})
	assert.Equal(t, 0.0, scorer.overlap("   ", "text"))
}

func TestScore_SegmentationFallback(t *testing.T) {
	for name, segmenter := range map[string]Segmenter{
		"error": failingSegmenter{},
		"panic": panickingSegmenter{},
	} {
		t.Run(name, func(t *testing.T) {
			scorer, err := NewScorer(WithSegmenter(segmenter))
			require.NoError(t, err)

			assert.NotPanics(t, func() {
				assert.Greater(t, scorer.Score("笔记 notes", "notes"), 0.0)
			})
			assert.InDelta(t, 0.5, scorer.overlap("笔记 notes", "notes"), 1e-9)
		})
	}
}

func TestScore_MixedScriptDefaultSegmenter(t *testing.T) {
	// {"笔记", " ", "notes"} against {"notes"}
	assert.InDelta(t, 1.0/3.0, defaultScorer.overlap("笔记 notes", "notes"), 1e-9)
}

func TestScore_SeparatorTokensCount(t *testing.T) {
	scorer, err := NewScorer(WithSegmenter(spaceKeepingSegmenter{}))
	require.NoError(t, err)

	tokens := scorer.tokens("go  fast")
	assert.Len(t, tokens, 3)
	assert.Contains(t, tokens, "go")
	assert.Contains(t, tokens, " ")
	assert.Contains(t, tokens, "fast")

	// {"foo", " ", "bar"} against {"foo", " ", "baz"}
	assert.InDelta(t, 2.0/3.0, scorer.overlap("foo bar", "foo baz"), 1e-9)
	assert.InDelta(t, 2.0/3.0, defaultScorer.overlap("foo bar", "foo baz"), 1e-9)
}

func TestDictionarySegmenter(t *testing.T) {
	tokens, err := DictionarySegmenter{}.Cut("学习笔记")
	require.NoError(t, err)
	assert.Contains(t, tokens, "学习")
	assert.Contains(t, tokens, "笔记")

	tokens, err = DictionarySegmenter{}.Cut("我们学习笔记 go fast")
	require.NoError(t, err)
	assert.Contains(t, tokens, " ")
	assert.Contains(t, tokens, "go")
}

func TestScore_DictionaryWords(t *testing.T) {
	assert.Equal(t, 1.0, Score("笔记", "我的学习笔记本"))

	// Only dictionary segmentation of the query finds both words:
	// {"学习", "笔记", "学习笔记"} against a text holding "学习" and "笔记".
	assert.InDelta(t, 2.0/3.0, Score("学习笔记", "笔记 和 学习"), 1e-9)

	whitespace := newWhitespaceScorer(t)
	assert.Less(t, whitespace.Score("学习笔记", "笔记 和 学习"), 0.5)
}

func TestScore_UnionsSegmenterAndWhitespaceTokens(t *testing.T) {
	scorer, err := NewScorer(WithSegmenter(stubSegmenter{"学习笔记": {"学习", "笔记"}}))
	require.NoError(t, err)

	tokens := scorer.tokens("学习笔记 go")
	assert.Contains(t, tokens, "学习")
	assert.Contains(t, tokens, "笔记")
	assert.Contains(t, tokens, "学习笔记")
	assert.Contains(t, tokens, "go")
}

// stubSegmenter splits known words by table and everything else by whitespace.
type stubSegmenter map[string][]string

func (s stubSegmenter) Cut(text string) ([]string, error) {
	var tokens []string
	for _, field := range strings.Fields(text) {
		if parts, ok := s[field]; ok {
			tokens = append(tokens, parts...)
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens, nil
}

func TestNewScorer_NilSegmenter(t *testing.T) {
	_, err := NewScorer(WithSegmenter(nil))
	assert.ErrorIs(t, err, ErrSegmenterRequired)
}
