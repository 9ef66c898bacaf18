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

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/poiesic/notekeep"
	"github.com/poiesic/notekeep/config"
	"github.com/poiesic/notekeep/core"
	"github.com/urfave/cli/v2"
)

const (
	configKey    = "config"
	dbOptionsKey = "dbOptions"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(dbOptions ...notekeep.DatabaseOption) *cli.App {
	return &cli.App{
		Name:  "notekeep",
		Usage: "Personal notes with folders, tags and ranked search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML config file",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file with NOTEKEEP_* variables",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
		},
		Before:   setup,
		Metadata: map[string]any{dbOptionsKey: dbOptions},
		Commands: []*cli.Command{
			userCommand(),
			noteCommand(),
			folderCommand(),
			tagCommand(),
			searchCommand(),
			aiCommand(),
		},
	}
}

// setup resolves the configuration and installs the logger.
// Precedence, highest first: flags, environment, config file, defaults.
func setup(c *cli.Context) error {
	cfg, err := config.Resolve(c.String("config"), c.String("env-file"))
	if err != nil {
		return err
	}
	if c.IsSet("db") {
		cfg.Database.Path = c.String("db")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	errWriter := c.App.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(errWriter, &slog.HandlerOptions{
		Level: level,
	})))

	c.App.Metadata[configKey] = cfg
	return nil
}

func appConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// withDatabase opens the configured database for the duration of fn.
func withDatabase(c *cli.Context, fn func(ctx context.Context, db *notekeep.Database) error) error {
	cfg := appConfig(c)
	opts := []notekeep.DatabaseOption{notekeep.WithAIConfig(cfg.AIConfig())}
	if extra, ok := c.App.Metadata[dbOptionsKey].([]notekeep.DatabaseOption); ok {
		opts = append(opts, extra...)
	}

	db, err := notekeep.NewDatabase(cfg.Database.Path, opts...)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return fn(c.Context, db)
}

// withUser opens the database and resolves the --user flag.
func withUser(c *cli.Context, fn func(ctx context.Context, db *notekeep.Database, user *core.User) error) error {
	return withDatabase(c, func(ctx context.Context, db *notekeep.Database) error {
		user, err := db.Users().GetUserByName(ctx, c.String("user"))
		if err != nil {
			return fmt.Errorf("failed to find user %q: %w", c.String("user"), err)
		}
		return fn(ctx, db, user)
	})
}

func userFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "user",
		Aliases:  []string{"u"},
		Usage:    "Username that owns the data",
		Required: true,
	}
}

func parseID(s string) (core.ID, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return core.ID(id), nil
}

// argIDs parses every positional argument as an ID.
func argIDs(c *cli.Context) ([]core.ID, error) {
	if c.NArg() == 0 {
		return nil, fmt.Errorf("at least one id is required")
	}
	ids := make([]core.ID, 0, c.NArg())
	for _, arg := range c.Args().Slice() {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// argID parses the single positional ID argument.
func argID(c *cli.Context) (core.ID, error) {
	if c.NArg() != 1 {
		return 0, fmt.Errorf("exactly one id is required")
	}
	return parseID(c.Args().First())
}

// optionalID parses an ID flag where 0 means "none".
func optionalID(c *cli.Context, name string) (core.ID, error) {
	if !c.IsSet(name) || c.String(name) == "0" {
		return 0, nil
	}
	return parseID(c.String(name))
}
