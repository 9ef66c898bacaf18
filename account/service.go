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

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/storage"
	"golang.org/x/crypto/bcrypt"
)

// Service registers users and checks their credentials.
type Service struct {
	users  storage.UserRepository
	cost   int
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithCost sets the bcrypt cost factor.
func WithCost(cost int) Option {
	return func(s *Service) error {
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		s.cost = cost
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		s.logger = logger
		return nil
	}
}

// NewService creates an account service over users.
func NewService(users storage.UserRepository, opts ...Option) (*Service, error) {
	if users == nil {
		return nil, ErrUserRepositoryRequired
	}
	s := &Service{
		users:  users,
		cost:   bcrypt.DefaultCost,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "account")
	return s, nil
}

// Register creates a user with a hashed password.
func (s *Service) Register(ctx context.Context, username, password string) (*core.User, error) {
	username = strings.TrimSpace(username)
	if err := checkInput(username, password); err != nil {
		return nil, err
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.AddUser(ctx, &core.User{Username: username, PasswordHash: hash})
	if errors.Is(err, storage.ErrDuplicateKey) {
		return nil, fmt.Errorf("%w: %q", ErrUsernameTaken, username)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("registered user", "username", username, "id", user.Id)
	return user, nil
}

// Login returns the user when password matches.
func (s *Service) Login(ctx context.Context, username, password string) (*core.User, error) {
	username = strings.TrimSpace(username)
	if err := checkInput(username, password); err != nil {
		return nil, err
	}

	user, err := s.verify(ctx, username, password)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("login succeeded", "username", username)
	return user, nil
}

// ChangePassword replaces the password after checking the old one.
func (s *Service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (*core.User, error) {
	username = strings.TrimSpace(username)
	if err := checkInput(username, oldPassword); err != nil {
		return nil, err
	}
	if err := checkInput(username, newPassword); err != nil {
		return nil, err
	}

	user, err := s.verify(ctx, username, oldPassword)
	if err != nil {
		return nil, err
	}

	hash, err := s.hash(newPassword)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	updated, err := s.users.UpdateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("changed password", "username", username)
	return updated, nil
}

func (s *Service) verify(ctx context.Context, username, password string) (*core.User, error) {
	user, err := s.users.GetUserByName(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Debug("login failed", "username", username, "reason", "unknown user")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("login failed", "username", username, "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrInvalidUser, err)
	}
	return string(hash), nil
}

func checkInput(username, password string) error {
	if username == "" {
		return fmt.Errorf("%w: %w", core.ErrInvalidUser, core.ErrEmptyUsername)
	}
	if password == "" {
		return fmt.Errorf("%w: %w", core.ErrInvalidUser, core.ErrEmptyPassword)
	}
	return nil
}
