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

	"github.com/poiesic/notekeep"
	"github.com/poiesic/notekeep/core"
	"github.com/urfave/cli/v2"
)

func tagCommand() *cli.Command {
	nameFlag := &cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Tag name", Required: true}

	return &cli.Command{
		Name:  "tag",
		Usage: "Manage tags",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create a tag, or print it if it exists",
				Flags: []cli.Flag{
					userFlag(),
					nameFlag,
					&cli.StringFlag{Name: "color", Usage: "Color as #rrggbb"},
				},
				Action: tagAddCommand,
			},
			{
				Name:   "list",
				Usage:  "List tags",
				Flags:  []cli.Flag{userFlag()},
				Action: tagListCommand,
			},
			{
				Name:   "notes",
				Usage:  "List the notes carrying a tag",
				Flags:  []cli.Flag{userFlag(), nameFlag},
				Action: tagNotesCommand,
			},
		},
	}
}

func tagAddCommand(c *cli.Context) error {
	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		tag, err := db.Tags().GetOrCreateTag(ctx, user.Id, c.String("name"), c.String("color"))
		if err != nil {
			return fmt.Errorf("failed to add tag: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "tag %s %s\n", tag.Name, tag.Color)
		return nil
	})
}

func tagListCommand(c *cli.Context) error {
	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		tags, err := db.Tags().ListTags(ctx, user.Id)
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
		if len(tags) == 0 {
			fmt.Fprintln(c.App.Writer, "no tags")
			return nil
		}
		for _, tag := range tags {
			fmt.Fprintf(c.App.Writer, "%s\t%s\n", tag.Name, tag.Color)
		}
		return nil
	})
}

func tagNotesCommand(c *cli.Context) error {
	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		if _, err := db.Tags().FindTagByName(ctx, user.Id, c.String("name")); err != nil {
			return fmt.Errorf("failed to find tag: %w", err)
		}
		notes, err := db.Notes().ListNotesByTag(ctx, user.Id, c.String("name"))
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}
		printNoteLines(c.App.Writer, notes)
		return nil
	})
}
