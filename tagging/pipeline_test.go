package tagging

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/notekeep/ai"
	"github.com/poiesic/notekeep/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPipeline(t *testing.T) {
	repos := newTestRepos(t)

	t.Run("missing note repository", func(t *testing.T) {
		_, err := NewPipeline(nil, mock.NewMockProvider())
		assert.ErrorIs(t, err, ErrNoteRepositoryRequired)
	})

	t.Run("missing provider", func(t *testing.T) {
		_, err := NewPipeline(repos.Notes, nil)
		assert.ErrorIs(t, err, ErrAIProviderRequired)
	})

	t.Run("with options", func(t *testing.T) {
		p, err := NewPipeline(repos.Notes, mock.NewMockProvider(), WithPoolSize(0), WithTopN(3), WithLogger(nil))
		require.NoError(t, err)
		defer p.Release()

		assert.Equal(t, 1, p.poolSize)
		assert.Equal(t, 1, p.pool.Cap())
		assert.Equal(t, 3, p.tagger.topN)
	})
}

func TestPipelineSubmit(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user, notes := seedNotes(t, repos, "alice",
		"golang channels and golang goroutines",
		"badger badger storage engine",
		"recipes for dumplings and dumplings sauce",
	)

	provider := mock.NewMockProviderWithServices(mock.NewMockSummarizer(), mock.NewMockKeywordExtractor())
	p, err := NewPipeline(repos.Notes, provider, WithPoolSize(2), WithTopN(1))
	require.NoError(t, err)
	defer p.Release()

	require.NoError(t, p.Submit(user.Id, noteIDs(notes)...))
	p.Wait()

	expected := []string{"golang", "badger", "dumplings"}
	for i, note := range notes {
		stored, err := repos.Notes.GetNote(ctx, user.Id, note.Id)
		require.NoError(t, err)
		assert.Equal(t, []string{expected[i]}, stored.Tags)
	}
	assert.Equal(t, 3, provider.GetMockExtractor().CallCount())
}

func TestPipelineErrorsAreLogged(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	user, notes := seedNotes(t, repos, "alice",
		"this one is fine to process",
		"this one is broken on purpose",
	)

	var failures atomic.Int32
	extractor := mock.NewMockKeywordExtractor()
	extractor.ExtractKeywordsFunc = func(_ context.Context, text string, topN int) ([]string, error) {
		if strings.Contains(text, "broken") {
			failures.Add(1)
			return nil, assert.AnError
		}
		return ai.CleanKeywords([]string{"fine"}, topN), nil
	}
	provider := mock.NewMockProviderWithServices(mock.NewMockSummarizer(), extractor)

	p, err := NewPipeline(repos.Notes, provider)
	require.NoError(t, err)
	defer p.Release()

	require.NoError(t, p.Submit(user.Id, noteIDs(notes)...))
	p.Wait()

	assert.Equal(t, int32(1), failures.Load())

	fine, err := repos.Notes.GetNote(ctx, user.Id, notes[0].Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"fine"}, fine.Tags)

	broken, err := repos.Notes.GetNote(ctx, user.Id, notes[1].Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, broken.Tags)
}

func TestPipelineRecoversFromPanics(t *testing.T) {
	repos := newTestRepos(t)
	user, notes := seedNotes(t, repos, "alice", "this note makes the extractor panic")

	extractor := mock.NewMockKeywordExtractor()
	extractor.ExtractKeywordsFunc = func(context.Context, string, int) ([]string, error) {
		panic("boom")
	}
	provider := mock.NewMockProviderWithServices(mock.NewMockSummarizer(), extractor)

	p, err := NewPipeline(repos.Notes, provider)
	require.NoError(t, err)
	defer p.Release()

	require.NoError(t, p.Submit(user.Id, noteIDs(notes)...))
	p.Wait()
	assert.Equal(t, 1, extractor.CallCount())
}

func TestPipelineSubmitAfterRelease(t *testing.T) {
	repos := newTestRepos(t)
	user, notes := seedNotes(t, repos, "alice", "some content worth tagging")

	p, err := NewPipeline(repos.Notes, mock.NewMockProvider())
	require.NoError(t, err)
	p.Release()

	err = p.Submit(user.Id, noteIDs(notes)...)
	assert.ErrorIs(t, err, ants.ErrPoolClosed)
	p.Wait()
}
