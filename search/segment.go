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

package search

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-ego/gse"
)

// Segmenter splits folded text into word tokens.
type Segmenter interface {
	Cut(text string) ([]string, error)
}

// WhitespaceSegmenter splits on Unicode whitespace.
type WhitespaceSegmenter struct{}

var _ Segmenter = WhitespaceSegmenter{}

// Cut splits text on whitespace.
func (WhitespaceSegmenter) Cut(text string) ([]string, error) {
	return strings.Fields(text), nil
}

// DictionarySegmenter segments text with the gse dictionary embedded in the
// binary, which splits Chinese into dictionary words. The dictionary is loaded once per process on
// first use; a load failure is remembered and returned on every call.
type DictionarySegmenter struct{}

var _ Segmenter = DictionarySegmenter{}

var (
	dictOnce sync.Once
	dict     *gse.Segmenter
	dictErr  error
)

func loadDictionary() (*gse.Segmenter, error) {
	dictOnce.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				dictErr = fmt.Errorf("loading segmentation dictionary: %v", r)
			}
			if dictErr != nil {
				slog.Default().Warn("segmentation dictionary unavailable, using whitespace tokens",
					"component", "search", "err", dictErr)
			}
		}()

		var seg gse.Segmenter
		if err := seg.LoadDictEmbed(); err != nil {
			dictErr = fmt.Errorf("loading segmentation dictionary: %w", err)
			return
		}
		dict = &seg
	})
	return dict, dictErr
}

// Cut segments text with hidden-Markov-model discovery of unknown words enabled.
func (DictionarySegmenter) Cut(text string) ([]string, error) {
	seg, err := loadDictionary()
	if err != nil {
		return nil, err
	}
	return seg.Cut(text, true), nil
}
