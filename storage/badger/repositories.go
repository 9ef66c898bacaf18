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

package badger

import (
	"errors"
)

// Repositories bundles every repository opened over one backend.
type Repositories struct {
	Backend     *Backend
	Users       *UserRepository
	Notes       *NoteRepository
	Folders     *FolderRepository
	Tags        *TagRepository
	Checkpoints *CheckpointRepository
}

// NewRepositories creates all repositories on backend. On failure the
// repositories created so far are closed; the backend is left open.
func NewRepositories(backend *Backend) (*Repositories, error) {
	repos := &Repositories{
		Backend:     backend,
		Tags:        NewTagRepository(backend),
		Checkpoints: NewCheckpointRepository(backend),
	}

	var err error
	if repos.Users, err = NewUserRepository(backend); err != nil {
		return nil, err
	}
	if repos.Notes, err = NewNoteRepository(backend); err != nil {
		repos.Users.Close()
		return nil, err
	}
	if repos.Folders, err = NewFolderRepository(backend); err != nil {
		repos.Notes.Close()
		repos.Users.Close()
		return nil, err
	}
	return repos, nil
}

// CloseRepositories releases the repositories' sequences without closing the backend.
func (r *Repositories) CloseRepositories() error {
	return errors.Join(
		r.Folders.Close(),
		r.Notes.Close(),
		r.Users.Close(),
		r.Tags.Close(),
	)
}

// Close releases the repositories and then closes the backend.
func (r *Repositories) Close() error {
	return errors.Join(r.CloseRepositories(), r.Backend.Close())
}
