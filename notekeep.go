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

// Package notekeep wires storage, accounts, search and the optional AI
// services into one handle.
package notekeep

import (
	"errors"
	"io"
	"log/slog"

	"github.com/poiesic/notekeep/account"
	"github.com/poiesic/notekeep/ai"
	"github.com/poiesic/notekeep/ai/openai"
	"github.com/poiesic/notekeep/search"
	"github.com/poiesic/notekeep/storage"
	"github.com/poiesic/notekeep/storage/badger"
	"github.com/poiesic/notekeep/tagging"
)

type Database struct {
	repos    *badger.Repositories
	accounts *account.Service
	provider *ai.LazyProvider
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig    *ai.Config
	provider    ai.AIProvider
	inMemory    bool
	accountOpts []account.Option
}

// WithAIConfig sets the configuration of the OpenAI-compatible provider.
func WithAIConfig(cfg *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = cfg
	}
}

// WithAIProvider uses provider instead of building one from the AI config.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemory keeps all data in memory. The path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithAccountOptions configures the account service.
func WithAccountOptions(opts ...account.Option) DatabaseOption {
	return func(o *databaseOptions) {
		o.accountOpts = append(o.accountOpts, opts...)
	}
}

// NewDatabase opens the database at filePath. The AI provider is not built
// until a service first uses it.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repos, err := badger.NewRepositories(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	accounts, err := account.NewService(repos.Users, options.accountOpts...)
	if err != nil {
		repos.Close()
		return nil, err
	}

	injected, aiConfig := options.provider, options.aiConfig
	provider := ai.NewLazyProvider(func() (ai.AIProvider, error) {
		if injected != nil {
			return injected, nil
		}
		return openai.NewProvider(aiConfig)
	})

	return &Database{
		repos:    repos,
		accounts: accounts,
		provider: provider,
		logger:   slog.Default().With("component", "database"),
	}, nil
}

// Close shuts down the AI provider, the repositories and the backend, in
// that order. Every failure is logged; all of them are returned joined.
func (db *Database) Close() error {
	var errs []error

	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
		errs = append(errs, err)
	}

	// Close repositories
	if err := db.repos.CloseRepositories(); err != nil {
		db.logger.Error("error closing repositories", "err", err)
		errs = append(errs, err)
	}

	// Close backend
	if err := db.repos.Backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (db *Database) Users() storage.UserRepository {
	return db.repos.Users
}

func (db *Database) Notes() storage.NoteRepository {
	return db.repos.Notes
}

func (db *Database) Folders() storage.FolderRepository {
	return db.repos.Folders
}

func (db *Database) Tags() storage.TagRepository {
	return db.repos.Tags
}

func (db *Database) Checkpoints() storage.CheckpointRepository {
	return db.repos.Checkpoints
}

func (db *Database) Accounts() *account.Service {
	return db.accounts
}

// AI returns the lazily built AI provider.
func (db *Database) AI() *ai.LazyProvider {
	return db.provider
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.repos.Users, db.repos.Notes, opts...)
}

func (db *Database) NewTaggingPipeline(opts ...tagging.Option) (*tagging.Pipeline, error) {
	return tagging.NewPipeline(db.repos.Notes, db.provider, opts...)
}

// NewRetagger creates a bulk retagger writing progress to w. A nil cfg selects the defaults.
func (db *Database) NewRetagger(cfg *tagging.Config, w io.Writer) (*tagging.Retagger, error) {
	return tagging.NewRetagger(db.repos.Notes, db.repos.Checkpoints, db.provider.KeywordExtractor(), cfg, w)
}
