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

package ai_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/poiesic/notekeep/ai"
	"github.com/poiesic/notekeep/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNote = "The release ships on Friday. Everyone should review the notes."

func TestLazyProviderBuildsOnce(t *testing.T) {
	var builds atomic.Int32
	inner := mock.NewMockProviderWithServices(mock.NewMockSummarizer(), mock.NewMockKeywordExtractor())
	lazy := ai.NewLazyProvider(func() (ai.AIProvider, error) {
		builds.Add(1)
		return inner, nil
	})

	assert.False(t, lazy.Initialized())
	assert.Equal(t, int32(0), builds.Load())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := lazy.Summarizer().Summarize(context.Background(), sampleNote, ai.SummaryOptions{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	assert.True(t, lazy.Initialized())
	assert.Equal(t, 8, inner.GetMockSummarizer().CallCount())

	keywords, err := lazy.KeywordExtractor().ExtractKeywords(context.Background(), sampleNote, 2)
	require.NoError(t, err)
	assert.Len(t, keywords, 2)
}

func TestLazyProviderRemembersFactoryError(t *testing.T) {
	boom := errors.New("no model server")
	var builds atomic.Int32
	lazy := ai.NewLazyProvider(func() (ai.AIProvider, error) {
		builds.Add(1)
		return nil, boom
	})

	_, err := lazy.Summarizer().Summarize(context.Background(), sampleNote, ai.SummaryOptions{})
	assert.ErrorIs(t, err, boom)

	_, err = lazy.KeywordExtractor().ExtractKeywords(context.Background(), sampleNote, 3)
	assert.ErrorIs(t, err, boom)

	_, err = lazy.Get()
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, int32(1), builds.Load())
	assert.False(t, lazy.Initialized())
}

func TestLazyProviderNilFactory(t *testing.T) {
	lazy := ai.NewLazyProvider(nil)

	_, err := lazy.Get()
	assert.ErrorIs(t, err, ai.ErrFactoryRequired)
}

func TestLazyProviderClose(t *testing.T) {
	t.Run("closes the built provider", func(t *testing.T) {
		inner := mock.NewMockProviderWithServices(mock.NewMockSummarizer(), mock.NewMockKeywordExtractor())
		lazy := ai.NewLazyProvider(func() (ai.AIProvider, error) { return inner, nil })

		_, err := lazy.Get()
		require.NoError(t, err)

		require.NoError(t, lazy.Close())
		assert.True(t, inner.Closed())
		assert.False(t, lazy.Initialized())

		_, err = lazy.Summarizer().Summarize(context.Background(), sampleNote, ai.SummaryOptions{})
		assert.ErrorIs(t, err, ai.ErrProviderClosed)

		// Closing twice is harmless.
		assert.NoError(t, lazy.Close())
	})

	t.Run("never builds after close", func(t *testing.T) {
		var builds atomic.Int32
		lazy := ai.NewLazyProvider(func() (ai.AIProvider, error) {
			builds.Add(1)
			return mock.NewMockProvider(), nil
		})

		require.NoError(t, lazy.Close())

		_, err := lazy.Get()
		assert.ErrorIs(t, err, ai.ErrProviderClosed)
		assert.Equal(t, int32(0), builds.Load())
	})
}
