package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/notekeep"
	"github.com/poiesic/notekeep/account"
	"github.com/poiesic/notekeep/core"
	"github.com/urfave/cli/v2"
)

var sentences = []string{
	"The quick brown fox jumps over the lazy dog.",
	"A gentle breeze rustled the leaves of the old oak tree.",
	"Rain drummed on the rooftop, creating a soothing rhythm.",
	"The lighthouse beam cut through fog, guiding sailors safely.",
	"Buy milk, eggs and a loaf of rye bread on the way home.",
	"Dentist appointment moved to Thursday at 10am.",
	"Book flights for the October conference before prices go up.",
	"Go channels are typed conduits; closing one signals that no more values will be sent.",
	"Badger stores keys in an LSM tree and values in a separate value log.",
	"Use context.Context to cancel long running database scans.",
	"The cat debugged the production database at 3 AM.",
	"The meeting could have been an email, but the email refused.",
	"Retrospective: deploys were slow because the build cache kept getting invalidated.",
	"Idea: a reading list that sorts itself by how often I mention each book.",
	"今天下午三点和产品团队开会，讨论下个版本的发布计划。",
	"周末去菜市场买西红柿、黄瓜和一些新鲜的水果。",
	"学习 Go 语言的并发模型：goroutine 和 channel 是核心。",
	"读书笔记：《百年孤独》的叙事结构非常独特。",
	"明天早上记得给妈妈打电话，祝她生日快乐。",
	"数据库索引可以显著提高查询速度，但会增加写入开销。",
	"旅行计划：十月去杭州看西湖，顺便品尝龙井茶。",
	"The abandoned lighthouse still broadcasts its warning every third Tuesday.",
	"Seventeen geese unanimously voted to relocate the pond.",
	"Coffee tastes better when nobody's watching.",
}

// folders the seeded notes are spread across, in order.
var folders = []string{"Journal", "Errands", "Tech", "随笔"}

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

// linesFromFile returns an iterator over the non-blank lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// titleFor uses the first few words of a line, or the first runes of
// text without spaces.
func titleFor(line string) string {
	words := strings.Fields(line)
	if len(words) > 1 {
		if len(words) > 5 {
			words = words[:5]
		}
		return strings.TrimRight(strings.Join(words, " "), ".,;:")
	}
	if utf8.RuneCountInString(line) > 8 {
		return string([]rune(line)[:8])
	}
	return line
}

func ensureUser(ctx context.Context, db *notekeep.Database, username, password string) (*core.User, error) {
	user, err := db.Accounts().Register(ctx, username, password)
	if errors.Is(err, account.ErrUsernameTaken) {
		return db.Users().GetUserByName(ctx, username)
	}
	return user, err
}

func ensureFolders(ctx context.Context, db *notekeep.Database, userID core.ID) ([]core.ID, error) {
	existing, err := db.Folders().ListFolders(ctx, userID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]core.ID, len(existing))
	for _, f := range existing {
		if f.ParentId == 0 {
			byName[f.Name] = f.Id
		}
	}

	ids := make([]core.ID, 0, len(folders))
	for _, name := range folders {
		if id, ok := byName[name]; ok {
			ids = append(ids, id)
			continue
		}
		folder, err := db.Folders().AddFolder(ctx, &core.Folder{UserId: userID, Name: name})
		if err != nil {
			return nil, err
		}
		ids = append(ids, folder.Id)
	}
	return ids, nil
}

// addBatched reads from a source iterator and adds notes in batches,
// spreading them across folderIDs.
func addBatched(ctx context.Context, db *notekeep.Database, userID core.ID, folderIDs []core.ID, source iter.Seq[string], size int) (int, error) {
	batch := make([]*core.Note, 0, size)
	total := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if _, err := db.Notes().AddNotes(ctx, batch...); err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	i := 0
	for line := range source {
		batch = append(batch, &core.Note{
			UserId:   userID,
			Title:    titleFor(line),
			Content:  line,
			FolderId: folderIDs[i%len(folderIDs)],
		})
		i++
		if len(batch) == size {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}

	// Add any remaining notes
	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}

func main() {
	app := &cli.App{
		Name:  "seeder",
		Usage: "Fill a database with a demo account, folders and notes",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Usage: "Path to the database directory", Value: "./notes_db"},
			&cli.StringFlag{Name: "src", Usage: "File of seed data, one note per line"},
			&cli.StringFlag{Name: "user", Usage: "Account that owns the seeded notes", Value: "demo"},
			&cli.StringFlag{Name: "password", Usage: "Password used when the account is created", Value: "demo"},
			&cli.IntFlag{Name: "batch", Usage: "Notes written per transaction", Value: 5},
		},
		Action: seed,
	}
	if err := app.Run(os.Args); err != nil {
		slog.Error("seeding failed", "err", err)
		os.Exit(1)
	}
}

func seed(c *cli.Context) error {
	db, err := notekeep.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := c.Context

	user, err := ensureUser(ctx, db, c.String("user"), c.String("password"))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	folderIDs, err := ensureFolders(ctx, db, user.Id)
	if err != nil {
		return fmt.Errorf("failed to create folders: %w", err)
	}

	// Determine source of seed data
	var source iter.Seq[string]
	if c.String("src") != "" {
		source, err = linesFromFile(c.String("src"))
		if err != nil {
			return err
		}
	} else {
		source = linesFromSlice(sentences)
	}

	count, err := addBatched(ctx, db, user.Id, folderIDs, source, max(c.Int("batch"), 1))
	if err != nil {
		return fmt.Errorf("failed after %d notes: %w", count, err)
	}
	slog.Info("seeded notes", "user", user.Username, "notes", count, "folders", len(folderIDs))
	return nil
}
