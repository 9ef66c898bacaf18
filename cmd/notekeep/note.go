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
	"io"
	"strings"

	"github.com/poiesic/notekeep"
	"github.com/poiesic/notekeep/core"
	"github.com/urfave/cli/v2"
)

func noteCommand() *cli.Command {
	return &cli.Command{
		Name:  "note",
		Usage: "Manage notes",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create a note",
				Flags: []cli.Flag{
					userFlag(),
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Note title"},
					&cli.StringFlag{Name: "content", Usage: "Note body"},
					&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Folder id (root when unset)"},
					&cli.StringSliceFlag{Name: "tag", Usage: "Tag name (repeatable)"},
				},
				Action: noteAddCommand,
			},
			{
				Name:  "list",
				Usage: "List notes",
				Flags: []cli.Flag{
					userFlag(),
					&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Only notes filed directly in this folder id (0 for root)"},
					&cli.StringFlag{Name: "tag", Usage: "Only notes with this tag"},
					&cli.StringFlag{Name: "contains", Usage: "Only notes whose title or content contains this text"},
				},
				Action: noteListCommand,
			},
			{
				Name:      "show",
				Usage:     "Print a note",
				ArgsUsage: "ID",
				Flags:     []cli.Flag{userFlag()},
				Action:    noteShowCommand,
			},
			{
				Name:      "edit",
				Usage:     "Change a note's title, content or folder",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					userFlag(),
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
					&cli.StringFlag{Name: "content", Usage: "New body"},
					&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "New folder id (0 for root)"},
				},
				Action: noteEditCommand,
			},
			{
				Name:      "rm",
				Usage:     "Delete notes",
				ArgsUsage: "ID...",
				Flags:     []cli.Flag{userFlag()},
				Action:    noteRemoveCommand,
			},
			{
				Name:      "tag",
				Usage:     "Add tags to a note, or replace them with --replace",
				ArgsUsage: "ID TAG...",
				Flags: []cli.Flag{
					userFlag(),
					&cli.BoolFlag{Name: "replace", Usage: "Replace the note's tags instead of adding"},
				},
				Action: noteTagCommand,
			},
		},
	}
}

func noteAddCommand(c *cli.Context) error {
	folderID, err := optionalID(c, "folder")
	if err != nil {
		return err
	}
	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		added, err := db.Notes().AddNotes(ctx, &core.Note{
			UserId:   user.Id,
			Title:    c.String("title"),
			Content:  c.String("content"),
			FolderId: folderID,
			Tags:     c.StringSlice("tag"),
		})
		if err != nil {
			return fmt.Errorf("failed to add note: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "added note %d\n", added[0].Id)
		return nil
	})
}

func noteListCommand(c *cli.Context) error {
	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		var notes []*core.Note
		var err error
		switch {
		case c.IsSet("folder"):
			var folderID core.ID
			if folderID, err = optionalID(c, "folder"); err != nil {
				return err
			}
			notes, err = db.Notes().ListNotesInFolder(ctx, user.Id, folderID)
		case c.IsSet("tag"):
			notes, err = db.Notes().ListNotesByTag(ctx, user.Id, c.String("tag"))
		case c.IsSet("contains"):
			notes, err = db.Notes().ListNotesContaining(ctx, user.Id, c.String("contains"))
		default:
			notes, err = db.Notes().ListNotes(ctx, user.Id)
		}
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}
		printNoteLines(c.App.Writer, notes)
		return nil
	})
}

func noteShowCommand(c *cli.Context) error {
	id, err := argID(c)
	if err != nil {
		return err
	}
	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		note, err := db.Notes().GetNote(ctx, user.Id, id)
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}
		printNote(c.App.Writer, note)
		return nil
	})
}

func noteEditCommand(c *cli.Context) error {
	id, err := argID(c)
	if err != nil {
		return err
	}
	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		note, err := db.Notes().GetNote(ctx, user.Id, id)
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}
		if c.IsSet("title") {
			note.Title = c.String("title")
		}
		if c.IsSet("content") {
			note.Content = c.String("content")
		}
		if c.IsSet("folder") {
			if note.FolderId, err = optionalID(c, "folder"); err != nil {
				return err
			}
		}
		if _, err := db.Notes().UpdateNotes(ctx, note); err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "updated note %d\n", note.Id)
		return nil
	})
}

func noteRemoveCommand(c *cli.Context) error {
	ids, err := argIDs(c)
	if err != nil {
		return err
	}
	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		if err := db.Notes().DeleteNotes(ctx, user.Id, ids...); err != nil {
			return fmt.Errorf("failed to delete notes: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "deleted %d note(s)\n", len(ids))
		return nil
	})
}

func noteTagCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("a note id is required")
	}
	id, err := parseID(c.Args().First())
	if err != nil {
		return err
	}
	names := c.Args().Tail()
	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		var note *core.Note
		var err error
		if c.Bool("replace") {
			note, err = db.Notes().SetNoteTags(ctx, user.Id, id, names...)
		} else {
			note, err = db.Notes().AddTagsToNote(ctx, user.Id, id, names...)
		}
		if err != nil {
			return fmt.Errorf("failed to tag note: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "note %d tags: %s\n", note.Id, strings.Join(note.Tags, ", "))
		return nil
	})
}

func printNoteLines(w io.Writer, notes []*core.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "no notes")
		return
	}
	for _, note := range notes {
		fmt.Fprintf(w, "%d\t%s%s\n", note.Id, displayTitle(note), formatTags(note.Tags))
	}
}

func printNote(w io.Writer, note *core.Note) {
	fmt.Fprintf(w, "id:      %d\n", note.Id)
	fmt.Fprintf(w, "title:   %s\n", note.Title)
	if note.FolderId != 0 {
		fmt.Fprintf(w, "folder:  %d\n", note.FolderId)
	}
	if len(note.Tags) > 0 {
		fmt.Fprintf(w, "tags:    %s\n", strings.Join(note.Tags, ", "))
	}
	fmt.Fprintf(w, "updated: %s\n\n", note.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, note.Content)
}

func displayTitle(note *core.Note) string {
	if note.Title == "" {
		return "(untitled)"
	}
	return note.Title
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return " [" + strings.Join(tags, ", ") + "]"
}
