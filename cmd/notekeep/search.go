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
	"time"

	"github.com/poiesic/notekeep"
	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/search"
	"github.com/urfave/cli/v2"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Rank a user's notes against a query",
		ArgsUsage: "[QUERY...]",
		Flags: []cli.Flag{
			userFlag(),
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Print at most N results (0 for all)"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Print per-stage timings"},
		},
		Action: searchAction,
	}
}

func searchAction(c *cli.Context) error {
	// An empty query lists every note of the user, each scored 0.
	query := strings.Join(c.Args().Slice(), " ")

	return withDatabase(c, func(ctx context.Context, db *notekeep.Database) error {
		searcher, err := db.NewSearcher()
		if err != nil {
			return fmt.Errorf("failed to create searcher: %w", err)
		}

		var monitor search.SearchMonitor
		if c.Bool("verbose") {
			monitor = &timingMonitor{w: c.App.ErrWriter}
		}

		resp, err := searcher.SearchWithMonitor(ctx, c.String("user"), query, monitor)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		fmt.Fprintf(c.App.Writer, "Found %d hits\n", resp.Count)
		results := resp.Results
		if limit := c.Int("limit"); limit > 0 && limit < len(results) {
			results = results[:limit]
		}
		for i, hit := range results {
			fmt.Fprintf(c.App.Writer, "%d: %s (%d)[%0.3f]%s\n",
				i+1, displayTitle(hit.Note), hit.Note.Id, hit.Score, formatTags(hit.Note.Tags))
		}
		return nil
	})
}

// timingMonitor prints how long each search stage took.
type timingMonitor struct {
	w      io.Writer
	start  time.Time
	last   time.Time
	scored int
}

var _ search.SearchMonitor = (*timingMonitor)(nil)

func (m *timingMonitor) lap(stage string, detail string) {
	now := time.Now()
	fmt.Fprintf(m.w, "%-16s %10s  %s\n", stage, now.Sub(m.last).Round(time.Microsecond), detail)
	m.last = now
}

func (m *timingMonitor) Start(username, query string) {
	m.start = time.Now()
	m.last = m.start
	fmt.Fprintf(m.w, "searching %q for %s\n", query, username)
}

func (m *timingMonitor) AfterUserLookup(user *core.User) {
	m.lap("user lookup", fmt.Sprintf("id %d", user.Id))
}

func (m *timingMonitor) AfterCandidateFetch(candidates []*core.Note) {
	m.lap("candidates", fmt.Sprintf("%d notes", len(candidates)))
}

func (m *timingMonitor) Scored(_ *core.ScoredNote) {
	m.scored++
}

func (m *timingMonitor) Finish(response *core.SearchResponse) {
	m.lap("ranking", fmt.Sprintf("%d scored", m.scored))
	fmt.Fprintf(m.w, "%-16s %10s\n", "total", time.Since(m.start).Round(time.Microsecond))
}
