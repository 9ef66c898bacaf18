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

func folderCommand() *cli.Command {
	return &cli.Command{
		Name:  "folder",
		Usage: "Manage folders",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create a folder",
				Flags: []cli.Flag{
					userFlag(),
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Folder name", Required: true},
					&cli.StringFlag{Name: "parent", Usage: "Parent folder id (top level when unset)"},
					&cli.StringFlag{Name: "color", Usage: "Color as #rrggbb"},
				},
				Action: folderAddCommand,
			},
			{
				Name:   "list",
				Usage:  "List folders",
				Flags:  []cli.Flag{userFlag()},
				Action: folderListCommand,
			},
			{
				Name:   "tree",
				Usage:  "Print the folder hierarchy",
				Flags:  []cli.Flag{userFlag()},
				Action: folderTreeCommand,
			},
			{
				Name:      "edit",
				Usage:     "Rename, recolor or move a folder",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					userFlag(),
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "New name"},
					&cli.StringFlag{Name: "parent", Usage: "New parent folder id (0 for top level)"},
					&cli.StringFlag{Name: "color", Usage: "New color as #rrggbb"},
				},
				Action: folderEditCommand,
			},
			{
				Name:      "rm",
				Usage:     "Delete an empty folder; its notes move to the root",
				ArgsUsage: "ID",
				Flags:     []cli.Flag{userFlag()},
				Action:    folderRemoveCommand,
			},
			{
				Name:      "notes",
				Usage:     "List the notes filed in a folder",
				ArgsUsage: "ID",
				Flags:     []cli.Flag{userFlag()},
				Action:    folderNotesCommand,
			},
		},
	}
}

func folderAddCommand(c *cli.Context) error {
	parentID, err := optionalID(c, "parent")
	if err != nil {
		return err
	}
	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		folder, err := db.Folders().AddFolder(ctx, &core.Folder{
			UserId:   user.Id,
			ParentId: parentID,
			Name:     c.String("name"),
			Color:    c.String("color"),
		})
		if err != nil {
			return fmt.Errorf("failed to add folder: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "added folder %d\n", folder.Id)
		return nil
	})
}

func folderListCommand(c *cli.Context) error {
	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		folders, err := db.Folders().ListFolders(ctx, user.Id)
		if err != nil {
			return fmt.Errorf("failed to list folders: %w", err)
		}
		if len(folders) == 0 {
			fmt.Fprintln(c.App.Writer, "no folders")
			return nil
		}
		for _, folder := range folders {
			fmt.Fprintf(c.App.Writer, "%d\t%s\t%s\tparent=%d\n", folder.Id, folder.Name, folder.Color, folder.ParentId)
		}
		return nil
	})
}

func folderTreeCommand(c *cli.Context) error {
	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		tree, err := db.Folders().FolderTree(ctx, user.Id)
		if err != nil {
			return fmt.Errorf("failed to build folder tree: %w", err)
		}
		if len(tree) == 0 {
			fmt.Fprintln(c.App.Writer, "no folders")
			return nil
		}
		printTree(c.App.Writer, tree, 0)
		return nil
	})
}

func printTree(w io.Writer, nodes []*core.FolderNode, depth int) {
	for _, node := range nodes {
		fmt.Fprintf(w, "%s%s (%d)\n", strings.Repeat("  ", depth), node.Folder.Name, node.Folder.Id)
		printTree(w, node.Children, depth+1)
	}
}

func folderEditCommand(c *cli.Context) error {
	id, err := argID(c)
	if err != nil {
		return err
	}
	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		folder, err := db.Folders().GetFolder(ctx, user.Id, id)
		if err != nil {
			return fmt.Errorf("failed to get folder: %w", err)
		}
		if c.IsSet("name") {
			folder.Name = c.String("name")
		}
		if c.IsSet("color") {
			folder.Color = c.String("color")
		}
		if c.IsSet("parent") {
			if folder.ParentId, err = optionalID(c, "parent"); err != nil {
				return err
			}
		}
		if _, err := db.Folders().UpdateFolder(ctx, folder); err != nil {
			return fmt.Errorf("failed to update folder: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "updated folder %d\n", folder.Id)
		return nil
	})
}

func folderRemoveCommand(c *cli.Context) error {
	id, err := argID(c)
	if err != nil {
		return err
	}
	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		if err := db.Folders().DeleteFolder(ctx, user.Id, id); err != nil {
			return fmt.Errorf("failed to delete folder: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "deleted folder %d\n", id)
		return nil
	})
}

func folderNotesCommand(c *cli.Context) error {
	id, err := argID(c)
	if err != nil {
		return err
	}
	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		if _, err := db.Folders().GetFolder(ctx, user.Id, id); err != nil {
			return fmt.Errorf("failed to get folder: %w", err)
		}
		notes, err := db.Notes().ListNotesInFolder(ctx, user.Id, id)
		if err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}
		printNoteLines(c.App.Writer, notes)
		return nil
	})
}
