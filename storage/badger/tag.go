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
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/storage"
)

// TagRepository implements storage.TagRepository for BadgerDB.
// Tag IDs are derived from (user, name), so no sequence is needed.
type TagRepository struct {
	backend *Backend
}

var _ storage.TagRepository = (*TagRepository)(nil)

// NewTagRepository creates a new TagRepository.
func NewTagRepository(backend *Backend) *TagRepository {
	return &TagRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend owns all resources.
func (r *TagRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *TagRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// GetOrCreateTag returns the user's tag with this name, creating it when missing.
func (r *TagRepository) GetOrCreateTag(ctx context.Context, userID core.ID, name, color string) (*core.Tag, error) {
	var result *core.Tag
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var created bool
		var err error
		result, created, err = ensureTag(tx, userID, name, color)
		if err != nil {
			return err
		}
		if !created {
			return nil
		}
		return tx.Commit()
	}, true)
	return result, err
}

// GetTag retrieves a tag owned by userID.
func (r *TagRepository) GetTag(ctx context.Context, userID, id core.ID) (*core.Tag, error) {
	var result *core.Tag
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		tag, err := readRecord(tx, makeTagKey(id), storage.UnmarshalTag)
		if err != nil {
			return err
		}
		if tag == nil {
			return notFound("tag", id)
		}
		if tag.UserId != userID {
			return forbidden("tag", id)
		}
		result = tag
		return nil
	}, false)
	return result, err
}

// FindTagByName retrieves the user's tag with this name.
func (r *TagRepository) FindTagByName(ctx context.Context, userID core.ID, name string) (*core.Tag, error) {
	var result *core.Tag
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readRecord(tx, makeTagKey(core.TagID(userID, name)), storage.UnmarshalTag)
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: tag %q", storage.ErrNotFound, name)
		}
		return nil
	}, false)
	return result, err
}

// ListTags returns every tag of a user ordered by name.
func (r *TagRepository) ListTags(ctx context.Context, userID core.ID) ([]*core.Tag, error) {
	var results []*core.Tag
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		ids, err := scanIndex(ctx, tx, makeIndexKey(tagOwnerPrefix, userID))
		if err != nil {
			return err
		}
		for _, id := range ids {
			tag, err := readRecord(tx, makeTagKey(id), storage.UnmarshalTag)
			if err != nil {
				return err
			}
			if tag != nil {
				results = append(results, tag)
			}
		}
		return nil
	}, false)
	return results, err
}

// ensureTag reads the user's tag by name and writes it when missing.
// The caller commits tx when created is true.
func ensureTag(tx *badger.Txn, userID core.ID, name, color string) (tag *core.Tag, created bool, err error) {
	name = strings.TrimSpace(name)
	if color == "" {
		color = core.DefaultTagColor
	}
	tag = &core.Tag{
		Id:     core.TagID(userID, name),
		UserId: userID,
		Name:   name,
		Color:  color,
	}
	if err := core.ValidateTag(tag); err != nil {
		return nil, false, err
	}

	existing, err := readRecord(tx, makeTagKey(tag.Id), storage.UnmarshalTag)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	tag.InsertedAt = now()
	if err := tx.Set(makeTagKey(tag.Id), storage.MarshalTag(tag)); err != nil {
		return nil, false, err
	}
	if err := setIndex(tx, makeTagOwnerKey(userID, name), tag.Id); err != nil {
		return nil, false, err
	}
	return tag, true, nil
}
