package main

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/poiesic/notekeep"
	"github.com/poiesic/notekeep/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTitleFor(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"Dentist appointment moved to Thursday at 10am.", "Dentist appointment moved to Thursday"},
		{"Memory leaks formed a union.", "Memory leaks formed a union"},
		{"周末去菜市场买西红柿、黄瓜和一些新鲜的水果。", "周末去菜市场买西"},
		{"短句", "短句"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, titleFor(tt.line))
	}
}

func TestLinesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.txt")
	require.NoError(t, os.WriteFile(path, []byte("first\n\n  second  \nthird\n"), 0o644))

	lines, err := linesFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, slices.Collect(lines))

	_, err = linesFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	db, err := notekeep.NewDatabase("",
		notekeep.WithInMemory(),
		notekeep.WithAccountOptions(account.WithCost(bcrypt.MinCost)))
	require.NoError(t, err)
	defer db.Close()

	user, err := ensureUser(ctx, db, "demo", "demo")
	require.NoError(t, err)
	again, err := ensureUser(ctx, db, "demo", "ignored")
	require.NoError(t, err)
	assert.Equal(t, user.Id, again.Id)

	folderIDs, err := ensureFolders(ctx, db, user.Id)
	require.NoError(t, err)
	require.Len(t, folderIDs, len(folders))
	reused, err := ensureFolders(ctx, db, user.Id)
	require.NoError(t, err)
	assert.Equal(t, folderIDs, reused)

	count, err := addBatched(ctx, db, user.Id, folderIDs, linesFromSlice(sentences), 5)
	require.NoError(t, err)
	assert.Equal(t, len(sentences), count)

	notes, err := db.Notes().ListNotes(ctx, user.Id)
	require.NoError(t, err)
	require.Len(t, notes, len(sentences))
	assert.Equal(t, sentences[0], notes[0].Content)
	assert.Equal(t, folderIDs[0], notes[0].FolderId)
	assert.Equal(t, folderIDs[1], notes[1].FolderId)

	inTech, err := db.Notes().ListNotesInFolder(ctx, user.Id, folderIDs[2])
	require.NoError(t, err)
	assert.Len(t, inTech, len(sentences)/len(folders))
}
