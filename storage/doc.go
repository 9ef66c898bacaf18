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

// Package storage provides the storage abstraction layer for notekeep.
//
// This package defines repository interfaces that decouple storage implementation
// from business logic. The BadgerDB implementation lives in storage/badger.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - Repository: transaction support and lifecycle
//   - UserRepository: accounts and the username index
//   - NoteRepository: notes, including the substring scan used by search
//   - FolderRepository: the folder hierarchy
//   - TagRepository: per-user tags
//   - CheckpointRepository: progress markers for bulk processors
//
// # Ownership
//
// Every note, folder and tag belongs to one user. Repository methods that take a
// user ID treat a record owned by someone else exactly like a missing record and
// return ErrNotFound, so callers cannot probe for other users' data.
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	repos, err := badger.NewMemoryRepositories()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repos.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
