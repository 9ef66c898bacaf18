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

// UserRepository implements storage.UserRepository for BadgerDB.
type UserRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository.
func NewUserRepository(backend *Backend) (*UserRepository, error) {
	idSeq, err := backend.GetSequence(userIDSeq)
	if err != nil {
		return nil, err
	}

	return &UserRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *UserRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *UserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddUser stores a new user.
func (r *UserRepository) AddUser(ctx context.Context, user *core.User) (*core.User, error) {
	if err := core.ValidateUser(user); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nameKey := makeUserNameKey(user.Username)
		existing, err := readRecord(tx, nameKey, unmarshalIDRef)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: username %q", storage.ErrDuplicateKey, user.Username)
		}

		id, err := nextID(r.idSeq)
		if err != nil {
			return err
		}
		user.Id = id
		user.InsertedAt = now()
		user.UpdatedAt = user.InsertedAt

		if err := tx.Set(makeUserKey(user.Id), storage.MarshalUser(user)); err != nil {
			return err
		}
		if err := setIndex(tx, nameKey, user.Id); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser replaces a stored user.
func (r *UserRepository) UpdateUser(ctx context.Context, user *core.User) (*core.User, error) {
	if err := core.ValidateUser(user); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeUserKey(user.Id)
		old, err := readRecord(tx, key, storage.UnmarshalUser)
		if err != nil {
			return err
		}
		if old == nil {
			return notFound("user", user.Id)
		}

		if old.Username != user.Username {
			newNameKey := makeUserNameKey(user.Username)
			taken, err := readRecord(tx, newNameKey, unmarshalIDRef)
			if err != nil {
				return err
			}
			if taken != nil {
				return fmt.Errorf("%w: username %q", storage.ErrDuplicateKey, user.Username)
			}
			if err := tx.Delete(makeUserNameKey(old.Username)); err != nil {
				return err
			}
			if err := setIndex(tx, newNameKey, user.Id); err != nil {
				return err
			}
		}

		user.InsertedAt = old.InsertedAt
		user.UpdatedAt = now()
		if err := tx.Set(key, storage.MarshalUser(user)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (r *UserRepository) GetUser(ctx context.Context, id core.ID) (*core.User, error) {
	var result *core.User
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readRecord(tx, makeUserKey(id), storage.UnmarshalUser)
		if err != nil {
			return err
		}
		if result == nil {
			return notFound("user", id)
		}
		return nil
	}, false)
	return result, err
}

// GetUserByName retrieves a user by username.
func (r *UserRepository) GetUserByName(ctx context.Context, username string) (*core.User, error) {
	var result *core.User
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		id, err := readRecord(tx, makeUserNameKey(username), unmarshalIDRef)
		if err != nil {
			return err
		}
		if id == nil {
			return fmt.Errorf("%w: user %q", storage.ErrNotFound, username)
		}
		result, err = readRecord(tx, makeUserKey(*id), storage.UnmarshalUser)
		if err != nil {
			return err
		}
		if result == nil {
			return notFound("user", *id)
		}
		return nil
	}, false)
	return result, err
}
