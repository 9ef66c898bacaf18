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
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/storage"
)

// FolderRepository implements storage.FolderRepository for BadgerDB.
type FolderRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.FolderRepository = (*FolderRepository)(nil)

// NewFolderRepository creates a new FolderRepository.
func NewFolderRepository(backend *Backend) (*FolderRepository, error) {
	idSeq, err := backend.GetSequence(folderIDSeq)
	if err != nil {
		return nil, err
	}

	return &FolderRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *FolderRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *FolderRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddFolder stores a new folder.
func (r *FolderRepository) AddFolder(ctx context.Context, folder *core.Folder) (*core.Folder, error) {
	if folder != nil && folder.Color == "" {
		folder.Color = core.DefaultFolderColor
	}
	if err := core.ValidateFolder(folder); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if _, err := readOwnedFolder(tx, folder.UserId, folder.ParentId); err != nil {
			return err
		}

		id, err := nextID(r.idSeq)
		if err != nil {
			return err
		}
		folder.Id = id
		folder.InsertedAt = now()

		if err := writeFolder(tx, folder); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return folder, nil
}

// UpdateFolder renames, recolors or moves a folder.
func (r *FolderRepository) UpdateFolder(ctx context.Context, folder *core.Folder) (*core.Folder, error) {
	if folder != nil && folder.Color == "" {
		folder.Color = core.DefaultFolderColor
	}
	if err := core.ValidateFolder(folder); err != nil {
		if folder != nil && folder.Id != 0 && folder.ParentId == folder.Id {
			return nil, fmt.Errorf("%w: %w", storage.ErrFolderCycle, err)
		}
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		old, err := readOwnedFolder(tx, folder.UserId, folder.Id)
		if err != nil {
			return err
		}
		if old == nil {
			return notFound("folder", folder.Id)
		}

		if folder.ParentId != old.ParentId {
			if err := checkFolderAncestry(tx, folder.UserId, folder.Id, folder.ParentId); err != nil {
				return err
			}
			if err := tx.Delete(makeFolderParentKey(old.UserId, old.ParentId, old.Id)); err != nil {
				return err
			}
		}

		folder.InsertedAt = old.InsertedAt
		if err := writeFolder(tx, folder); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return folder, nil
}

// DeleteFolder removes a folder without subfolders and moves its notes to the root.
func (r *FolderRepository) DeleteFolder(ctx context.Context, userID, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		folder, err := readOwnedFolder(tx, userID, id)
		if err != nil {
			return err
		}
		if folder == nil {
			return notFound("folder", id)
		}

		children, err := scanIndex(ctx, tx, makeIndexKey(folderParentPrefix, userID, id))
		if err != nil {
			return err
		}
		if len(children) > 0 {
			return fmt.Errorf("%w: folder %d has %d", storage.ErrFolderHasChildren, id, len(children))
		}

		noteIDs, err := scanIndex(ctx, tx, makeIndexKey(noteFolderPrefix, userID, id))
		if err != nil {
			return err
		}
		for _, noteID := range noteIDs {
			note, err := readRecord(tx, makeNoteKey(noteID), storage.UnmarshalNote)
			if err != nil {
				return err
			}
			if note == nil {
				continue
			}
			if err := tx.Delete(makeNoteFolderKey(userID, id, noteID)); err != nil {
				return err
			}
			note.FolderId = 0
			if err := tx.Set(makeNoteKey(noteID), storage.MarshalNote(note)); err != nil {
				return err
			}
			if err := setIndex(tx, makeNoteFolderKey(userID, 0, noteID), noteID); err != nil {
				return err
			}
		}

		for _, key := range [][]byte{
			makeFolderKey(id),
			makeFolderOwnerKey(userID, id),
			makeFolderParentKey(userID, folder.ParentId, id),
		} {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetFolder retrieves a folder owned by userID.
func (r *FolderRepository) GetFolder(ctx context.Context, userID, id core.ID) (*core.Folder, error) {
	var result *core.Folder
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readOwnedFolder(tx, userID, id)
		if err != nil {
			return err
		}
		if result == nil {
			return notFound("folder", id)
		}
		return nil
	}, false)
	return result, err
}

// ListFolders returns every folder of a user in ascending ID order.
func (r *FolderRepository) ListFolders(ctx context.Context, userID core.ID) ([]*core.Folder, error) {
	var results []*core.Folder
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		results, err = listFolders(ctx, tx, userID)
		return err
	}, false)
	return results, err
}

// FolderTree returns the user's top-level folders with their descendants.
// Children are ordered by ID.
func (r *FolderRepository) FolderTree(ctx context.Context, userID core.ID) ([]*core.FolderNode, error) {
	folders, err := r.ListFolders(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildFolderTree(folders), nil
}

// BuildFolderTree arranges folders into nodes by ParentId, preserving input
// order among siblings. Folders whose parent is absent are returned as roots.
func BuildFolderTree(folders []*core.Folder) []*core.FolderNode {
	nodes := make(map[core.ID]*core.FolderNode, len(folders))
	for _, folder := range folders {
		nodes[folder.Id] = &core.FolderNode{Folder: folder}
	}

	roots := make([]*core.FolderNode, 0)
	for _, folder := range folders {
		node := nodes[folder.Id]
		parent, ok := nodes[folder.ParentId]
		if folder.ParentId == 0 || !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

// readOwnedFolder reads a folder and checks its owner.
// A zero id means the root and returns nil, nil.
func readOwnedFolder(tx *badger.Txn, userID, id core.ID) (*core.Folder, error) {
	if id == 0 {
		return nil, nil
	}
	folder, err := readRecord(tx, makeFolderKey(id), storage.UnmarshalFolder)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, notFound("folder", id)
	}
	if folder.UserId != userID {
		return nil, forbidden("folder", id)
	}
	return folder, nil
}

// checkFolderAncestry walks up from parentID and rejects a chain that reaches id.
func checkFolderAncestry(tx *badger.Txn, userID, id, parentID core.ID) error {
	seen := make(map[core.ID]bool)
	for current := parentID; current != 0; {
		if current == id {
			return fmt.Errorf("%w: folder %d cannot move under %d", storage.ErrFolderCycle, id, parentID)
		}
		if seen[current] {
			return fmt.Errorf("%w: existing loop at folder %d", storage.ErrFolderCycle, current)
		}
		seen[current] = true

		folder, err := readOwnedFolder(tx, userID, current)
		if err != nil {
			return err
		}
		current = folder.ParentId
	}
	return nil
}

func writeFolder(tx *badger.Txn, folder *core.Folder) error {
	if err := tx.Set(makeFolderKey(folder.Id), storage.MarshalFolder(folder)); err != nil {
		return err
	}
	if err := setIndex(tx, makeFolderOwnerKey(folder.UserId, folder.Id), folder.Id); err != nil {
		return err
	}
	return setIndex(tx, makeFolderParentKey(folder.UserId, folder.ParentId, folder.Id), folder.Id)
}

func listFolders(ctx context.Context, tx *badger.Txn, userID core.ID) ([]*core.Folder, error) {
	ids, err := scanIndex(ctx, tx, makeIndexKey(folderOwnerPrefix, userID))
	if err != nil {
		return nil, err
	}
	var results []*core.Folder
	for _, id := range ids {
		folder, err := readRecord(tx, makeFolderKey(id), storage.UnmarshalFolder)
		if err != nil {
			return nil, err
		}
		if folder != nil {
			results = append(results, folder)
		}
	}
	return results, nil
}
