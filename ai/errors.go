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

package ai

import "errors"

var (
	// ErrContentTooShort is returned when text is too short to summarize.
	ErrContentTooShort = errors.New("content too short to summarize")

	// ErrProviderClosed is returned by services of a closed provider.
	ErrProviderClosed = errors.New("AI provider closed")

	// ErrFactoryRequired is returned when a lazy provider has no factory.
	ErrFactoryRequired = errors.New("AI provider factory required")
)
