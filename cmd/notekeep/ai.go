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
	"strings"
	"time"

	"github.com/poiesic/notekeep"
	"github.com/poiesic/notekeep/ai"
	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/tagging"
	"github.com/urfave/cli/v2"
)

func aiCommand() *cli.Command {
	sourceFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Usage: "Owner of the note given as ID"},
			&cli.StringFlag{Name: "text", Usage: "Text to process instead of a note"},
		}
	}

	return &cli.Command{
		Name:  "ai",
		Usage: "Summaries and keyword tags from an OpenAI-compatible model",
		Subcommands: []*cli.Command{
			{
				Name:      "summarize",
				Usage:     "Summarize a note or some text",
				ArgsUsage: "[ID]",
				Flags: append(sourceFlags(),
					&cli.IntFlag{Name: "max", Usage: "Maximum summary length in words"},
					&cli.IntFlag{Name: "min", Usage: "Minimum summary length in words"},
				),
				Action: summarizeCommand,
			},
			{
				Name:      "keywords",
				Usage:     "Extract keywords from a note or some text",
				ArgsUsage: "[ID]",
				Flags: append(sourceFlags(),
					&cli.IntFlag{Name: "top", Aliases: []string{"n"}, Usage: "Number of keywords", Value: ai.DefaultKeywordCount},
				),
				Action: keywordsCommand,
			},
			{
				Name:      "tag",
				Usage:     "Replace the tags of notes with their keywords",
				ArgsUsage: "ID...",
				Flags: []cli.Flag{
					userFlag(),
					&cli.IntFlag{Name: "pool-size", Usage: "Concurrent tagging workers (default NumCPU/2)"},
				},
				Action: aiTagCommand,
			},
			{
				Name:  "retag",
				Usage: "Replace the tags of every note of a user, resuming an interrupted run",
				Flags: []cli.Flag{
					userFlag(),
					&cli.BoolFlag{Name: "reset", Usage: "Forget the checkpoint and start from the first note"},
					&cli.IntFlag{Name: "batch-size", Usage: "Number of notes to process in each batch"},
					&cli.IntFlag{Name: "report-interval", Usage: "Report progress every N notes"},
					&cli.IntFlag{Name: "max-retries", Usage: "Maximum attempts for each extraction"},
					&cli.DurationFlag{Name: "retry-delay", Usage: "Base delay for exponential backoff"},
				},
				Action: retagCommand,
			},
		},
	}
}

// sourceText returns the --text flag or the content of the note given as argument.
func sourceText(ctx context.Context, c *cli.Context, db *notekeep.Database) (string, error) {
	if c.IsSet("text") {
		return c.String("text"), nil
	}
	if !c.IsSet("user") {
		return "", fmt.Errorf("either --text or --user with a note id is required")
	}
	id, err := argID(c)
	if err != nil {
		return "", err
	}
	user, err := db.Users().GetUserByName(ctx, c.String("user"))
	if err != nil {
		return "", fmt.Errorf("failed to find user %q: %w", c.String("user"), err)
	}
	note, err := db.Notes().GetNote(ctx, user.Id, id)
	if err != nil {
		return "", fmt.Errorf("failed to get note: %w", err)
	}
	return note.Content, nil
}

func summarizeCommand(c *cli.Context) error {
	return withDatabase(c, func(ctx context.Context, db *notekeep.Database) error {
		text, err := sourceText(ctx, c, db)
		if err != nil {
			return err
		}
		opts := ai.SummaryOptions{MaxLength: c.Int("max"), MinLength: c.Int("min")}
		summary, err := db.AI().Summarizer().Summarize(ctx, text, opts)
		if err != nil {
			return fmt.Errorf("failed to summarize: %w", err)
		}
		fmt.Fprintln(c.App.Writer, summary)
		return nil
	})
}

func keywordsCommand(c *cli.Context) error {
	return withDatabase(c, func(ctx context.Context, db *notekeep.Database) error {
		text, err := sourceText(ctx, c, db)
		if err != nil {
			return err
		}
		keywords, err := db.AI().KeywordExtractor().ExtractKeywords(ctx, text, c.Int("top"))
		if err != nil {
			return fmt.Errorf("failed to extract keywords: %w", err)
		}
		fmt.Fprintln(c.App.Writer, strings.Join(keywords, ", "))
		return nil
	})
}

func aiTagCommand(c *cli.Context) error {
	ids, err := argIDs(c)
	if err != nil {
		return err
	}
	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		opts := []tagging.Option{tagging.WithTopN(appConfig(c).AI.KeywordCount)}
		poolSize := appConfig(c).Tagging.PoolSize
		if c.IsSet("pool-size") {
			poolSize = c.Int("pool-size")
		}
		if poolSize > 0 {
			opts = append(opts, tagging.WithPoolSize(poolSize))
		}

		pipeline, err := db.NewTaggingPipeline(opts...)
		if err != nil {
			return fmt.Errorf("failed to create tagging pipeline: %w", err)
		}
		defer pipeline.Release()

		if err := pipeline.Submit(user.Id, ids...); err != nil {
			return err
		}
		pipeline.Wait()

		notes, err := db.Notes().GetNotes(ctx, user.Id, ids...)
		if err != nil {
			return fmt.Errorf("failed to reload notes: %w", err)
		}
		printNoteLines(c.App.Writer, notes)
		return nil
	})
}

func retagCommand(c *cli.Context) error {
	cfg := appConfig(c).RetaggerConfig()
	if c.IsSet("batch-size") {
		cfg.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("report-interval") {
		cfg.ReportInterval = c.Int("report-interval")
	}
	if c.IsSet("max-retries") {
		cfg.MaxRetries = c.Int("max-retries")
	}
	if c.IsSet("retry-delay") {
		cfg.RetryDelay = c.Duration("retry-delay")
	}

	// Validate config
	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if cfg.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if cfg.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}
	if cfg.RetryDelay < 0 {
		return fmt.Errorf("retry-delay cannot be negative")
	}

	return withUser(c, func(ctx context.Context, db *notekeep.Database, user *core.User) error {
		retagger, err := db.NewRetagger(cfg, c.App.ErrWriter)
		if err != nil {
			return fmt.Errorf("failed to create retagger: %w", err)
		}
		if c.Bool("reset") {
			if err := retagger.Reset(ctx, user.Id); err != nil {
				return fmt.Errorf("failed to reset checkpoint: %w", err)
			}
		}

		start := time.Now()
		count, err := retagger.Run(ctx, user.Id)
		if err != nil {
			return fmt.Errorf("retagging failed after %d notes: %w", count, err)
		}
		fmt.Fprintf(c.App.Writer, "retagged %d notes in %v\n", count, time.Since(start).Round(time.Millisecond))
		return nil
	})
}
