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

import (
	"fmt"
	"strings"
)

// ValidateUser validates a User according to domain rules.
//
// Validation rules:
//   - Username must not be empty or only whitespace
//   - PasswordHash must not be empty
//
// NOT validated:
//   - ID (0 is valid before the database assigns one)
func ValidateUser(user *User) error {
	if user == nil {
		return fmt.Errorf("%w: user is nil", ErrInvalidUser)
	}

	if strings.TrimSpace(user.Username) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUser, ErrEmptyUsername)
	}

	if user.PasswordHash == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUser, ErrEmptyPassword)
	}

	return nil
}

// ValidateNote validates a Note according to domain rules.
//
// Validation rules:
//   - UserId must be set
//   - Tag names must not be empty
//
// Title and Content may both be empty; an empty note is still a note.
// Folder ownership is checked by the storage layer, which can see the folder.
func ValidateNote(note *Note) error {
	if note == nil {
		return fmt.Errorf("%w: note is nil", ErrInvalidNote)
	}

	if note.UserId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrMissingOwner)
	}

	for _, tag := range note.Tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: tag %w", ErrInvalidNote, ErrEmptyName)
		}
	}

	return nil
}

// ValidateFolder validates a Folder according to domain rules.
//
// Validation rules:
//   - UserId must be set
//   - Name must not be empty
//   - Color must be #rrggbb
//   - ParentId must not equal Id
//
// Deeper cycles are rejected by the storage layer, which can walk the ancestors.
func ValidateFolder(folder *Folder) error {
	if folder == nil {
		return fmt.Errorf("%w: folder is nil", ErrInvalidFolder)
	}

	if folder.UserId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidFolder, ErrMissingOwner)
	}

	if strings.TrimSpace(folder.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFolder, ErrEmptyName)
	}

	if err := ValidateColor(folder.Color); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFolder, err)
	}

	if folder.Id != 0 && folder.ParentId == folder.Id {
		return fmt.Errorf("%w: %w", ErrInvalidFolder, ErrSelfParent)
	}

	return nil
}

// ValidateTag validates a Tag according to domain rules.
func ValidateTag(tag *Tag) error {
	if tag == nil {
		return fmt.Errorf("%w: tag is nil", ErrInvalidTag)
	}

	if tag.UserId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTag, ErrMissingOwner)
	}

	if strings.TrimSpace(tag.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTag, ErrEmptyName)
	}

	if err := ValidateColor(tag.Color); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTag, err)
	}

	return nil
}

// ValidateCheckpoint requires a processor type, which keys the checkpoint.
func ValidateCheckpoint(checkpoint *Checkpoint) error {
	if checkpoint == nil {
		return fmt.Errorf("%w: checkpoint is nil", ErrInvalidCheckpoint)
	}
	if strings.TrimSpace(checkpoint.ProcessorType) == "" {
		return fmt.Errorf("%w: processor type is required", ErrInvalidCheckpoint)
	}
	return nil
}

// ValidateColor checks that a color is a #rrggbb hex string.
func ValidateColor(color string) error {
	if len(color) != 7 || color[0] != '#' {
		return fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	for _, c := range color[1:] {
		if !isHexDigit(c) {
			return fmt.Errorf("%w: %q", ErrInvalidColor, color)
		}
	}
	return nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
