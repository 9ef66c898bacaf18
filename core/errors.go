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

package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidUser indicates a User failed validation.
	ErrInvalidUser = errors.New("invalid user")

	// ErrInvalidNote indicates a Note failed validation.
	ErrInvalidNote = errors.New("invalid note")

	// ErrInvalidFolder indicates a Folder failed validation.
	ErrInvalidFolder = errors.New("invalid folder")

	// ErrInvalidTag indicates a Tag failed validation.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrInvalidCheckpoint indicates a Checkpoint failed validation.
	ErrInvalidCheckpoint = errors.New("invalid checkpoint")

	// ErrEmptyUsername indicates the Username field is empty.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrEmptyPassword indicates a password or password hash is empty.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrEmptyName indicates a folder or tag Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidColor indicates a color is not of the form #rrggbb.
	ErrInvalidColor = errors.New("color must be of the form #rrggbb")

	// ErrMissingOwner indicates a record has no owning user.
	ErrMissingOwner = errors.New("owner is required")

	// ErrSelfParent indicates a folder names itself as parent.
	ErrSelfParent = errors.New("folder cannot be its own parent")

	// ErrMalformedRecord indicates encoded record bytes could not be decoded.
	ErrMalformedRecord = errors.New("malformed record")
)
