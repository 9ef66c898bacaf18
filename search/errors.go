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
	"errors"
	"fmt"

	"github.com/poiesic/notekeep/storage"
)

var (
	// ErrUserRepositoryRequired is returned when a user repository is not provided.
	ErrUserRepositoryRequired = errors.New("user repository required")

	// ErrNoteRepositoryRequired is returned when a note repository is not provided.
	ErrNoteRepositoryRequired = errors.New("note repository required")

	// ErrSegmenterRequired is returned when WithSegmenter is given nil.
	ErrSegmenterRequired = errors.New("segmenter required")

	// ErrUserNotFound is returned when the searching user does not exist.
	// It matches storage.ErrNotFound with errors.Is.
	ErrUserNotFound = fmt.Errorf("user %w", storage.ErrNotFound)
)
