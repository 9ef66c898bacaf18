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
	"github.com/urfave/cli/v2"
)

func userCommand() *cli.Command {
	passwordFlag := &cli.StringFlag{
		Name:     "password",
		Aliases:  []string{"p"},
		Usage:    "Account password",
		Required: true,
	}

	return &cli.Command{
		Name:  "user",
		Usage: "Manage accounts",
		Subcommands: []*cli.Command{
			{
				Name:   "register",
				Usage:  "Create an account",
				Flags:  []cli.Flag{userFlag(), passwordFlag},
				Action: registerCommand,
			},
			{
				Name:   "login",
				Usage:  "Check an account's credentials",
				Flags:  []cli.Flag{userFlag(), passwordFlag},
				Action: loginCommand,
			},
			{
				Name:  "passwd",
				Usage: "Change an account's password",
				Flags: []cli.Flag{
					userFlag(),
					&cli.StringFlag{Name: "old", Usage: "Current password", Required: true},
					&cli.StringFlag{Name: "new", Usage: "New password", Required: true},
				},
				Action: passwdCommand,
			},
		},
	}
}

func registerCommand(c *cli.Context) error {
	return withDatabase(c, func(ctx context.Context, db *notekeep.Database) error {
		user, err := db.Accounts().Register(ctx, c.String("user"), c.String("password"))
		if err != nil {
			return fmt.Errorf("failed to register: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "registered %s (id %d)\n", user.Username, user.Id)
		return nil
	})
}

func loginCommand(c *cli.Context) error {
	return withDatabase(c, func(ctx context.Context, db *notekeep.Database) error {
		user, err := db.Accounts().Login(ctx, c.String("user"), c.String("password"))
		if err != nil {
			return fmt.Errorf("failed to log in: %w", err)
		}
		fmt.Fprintf(c.App.Writer, "logged in as %s (id %d)\n", user.Username, user.Id)
		return nil
	})
}

func passwdCommand(c *cli.Context) error {
	return withDatabase(c, func(ctx context.Context, db *notekeep.Database) error {
		if _, err := db.Accounts().ChangePassword(ctx, c.String("user"), c.String("old"), c.String("new")); err != nil {
			return fmt.Errorf("failed to change password: %w", err)
		}
		fmt.Fprintln(c.App.Writer, "password changed")
		return nil
	})
}
