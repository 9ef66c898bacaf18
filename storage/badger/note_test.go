package badger

import (
	"context"
	"testing"

	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noteIDs(notes []*core.Note) []core.ID {
	ids := make([]core.ID, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.Id)
	}
	return ids
}

func TestNoteRepository_AddAndGet(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	user := newTestUser(t, repos, "alice")

	added, err := repos.Notes.AddNotes(ctx,
		&core.Note{UserId: user.Id, Title: "First", Content: "one"},
		&core.Note{UserId: user.Id, Title: "Second", Content: "two", Tags: []string{" go ", "go", "db"}},
	)
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Less(t, added[0].Id, added[1].Id)
	assert.Equal(t, []string{"go", "db"}, added[1].Tags)

	got, err := repos.Notes.GetNote(ctx, user.Id, added[1].Id)
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Title)
	assert.Equal(t, []string{"go", "db"}, got.Tags)

	tag, err := repos.Tags.FindTagByName(ctx, user.Id, "go")
	require.NoError(t, err)
	assert.Equal(t, core.DefaultTagColor, tag.Color)
}

func TestNoteRepository_Ownership(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	alice := newTestUser(t, repos, "alice")
	bob := newTestUser(t, repos, "bob")

	added, err := repos.Notes.AddNotes(ctx, &core.Note{UserId: alice.Id, Title: "secret"})
	require.NoError(t, err)
	id := added[0].Id

	_, err = repos.Notes.GetNote(ctx, bob.Id, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, err, storage.ErrForbidden)

	_, err = repos.Notes.UpdateNotes(ctx, &core.Note{Id: id, UserId: bob.Id, Title: "stolen"})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = repos.Notes.DeleteNotes(ctx, bob.Id, id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	notes, err := repos.Notes.GetNotes(ctx, bob.Id, id)
	require.NoError(t, err)
	assert.Empty(t, notes)

	bobFolder, err := repos.Folders.AddFolder(ctx, &core.Folder{UserId: bob.Id, Name: "Bob's"})
	require.NoError(t, err)
	_, err = repos.Notes.AddNotes(ctx, &core.Note{UserId: alice.Id, Title: "x", FolderId: bobFolder.Id})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNoteRepository_ListNotesContaining(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	alice := newTestUser(t, repos, "alice")
	bob := newTestUser(t, repos, "bob")

	added, err := repos.Notes.AddNotes(ctx,
		&core.Note{UserId: alice.Id, Title: "Go tips", Content: "channels"},
		&core.Note{UserId: alice.Id, Title: "Shopping", Content: "buy go-kart"},
		&core.Note{UserId: alice.Id, Title: "GO loud", Content: "caps"},
		&core.Note{UserId: alice.Id, Title: "学习笔记", Content: "中文内容"},
	)
	require.NoError(t, err)
	_, err = repos.Notes.AddNotes(ctx, &core.Note{UserId: bob.Id, Title: "go away"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  []core.ID
	}{
		{"case-sensitive title and content", "go", []core.ID{added[1].Id}},
		{"title match", "Go", []core.ID{added[0].Id}},
		{"upper case only", "GO", []core.ID{added[2].Id}},
		{"multibyte", "笔记", []core.ID{added[3].Id}},
		{"no match", "rust", []core.ID{}},
		{"empty matches everything", "", noteIDs(added)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, err := repos.Notes.ListNotesContaining(ctx, alice.Id, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, noteIDs(notes))
		})
	}
}

func TestNoteRepository_UpdateAndDelete(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	user := newTestUser(t, repos, "alice")

	added, err := repos.Notes.AddNotes(ctx, &core.Note{UserId: user.Id, Title: "draft", Tags: []string{"old"}})
	require.NoError(t, err)
	note := added[0]
	inserted := note.InsertedAt

	folder, err := repos.Folders.AddFolder(ctx, &core.Folder{UserId: user.Id, Name: "Work"})
	require.NoError(t, err)

	note.Title = "final"
	note.FolderId = folder.Id
	note.Tags = []string{"new"}
	_, err = repos.Notes.UpdateNotes(ctx, note)
	require.NoError(t, err)
	assert.True(t, note.InsertedAt.Equal(inserted))
	assert.False(t, note.UpdatedAt.Before(inserted))

	inFolder, err := repos.Notes.ListNotesInFolder(ctx, user.Id, folder.Id)
	require.NoError(t, err)
	assert.Equal(t, []core.ID{note.Id}, noteIDs(inFolder))

	atRoot, err := repos.Notes.ListNotesInFolder(ctx, user.Id, 0)
	require.NoError(t, err)
	assert.Empty(t, atRoot)

	byOld, err := repos.Notes.ListNotesByTag(ctx, user.Id, "old")
	require.NoError(t, err)
	assert.Empty(t, byOld)

	byNew, err := repos.Notes.ListNotesByTag(ctx, user.Id, "new")
	require.NoError(t, err)
	assert.Len(t, byNew, 1)

	require.NoError(t, repos.Notes.DeleteNotes(ctx, user.Id, note.Id))

	_, err = repos.Notes.GetNote(ctx, user.Id, note.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	all, err := repos.Notes.ListNotes(ctx, user.Id)
	require.NoError(t, err)
	assert.Empty(t, all)

	byNew, err = repos.Notes.ListNotesByTag(ctx, user.Id, "new")
	require.NoError(t, err)
	assert.Empty(t, byNew)
}

func TestNoteRepository_Tagging(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	user := newTestUser(t, repos, "alice")

	added, err := repos.Notes.AddNotes(ctx, &core.Note{UserId: user.Id, Title: "n", Tags: []string{"a"}})
	require.NoError(t, err)
	id := added[0].Id

	note, err := repos.Notes.AddTagsToNote(ctx, user.Id, id, "b", "a", "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, note.Tags)

	note, err = repos.Notes.SetNoteTags(ctx, user.Id, id, "z")
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, note.Tags)

	byA, err := repos.Notes.ListNotesByTag(ctx, user.Id, "a")
	require.NoError(t, err)
	assert.Empty(t, byA)

	tags, err := repos.Tags.ListTags(ctx, user.Id)
	require.NoError(t, err)
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	assert.Equal(t, []string{"a", "b", "c", "z"}, names)

	note, err = repos.Notes.SetNoteTags(ctx, user.Id, id)
	require.NoError(t, err)
	assert.Empty(t, note.Tags)

	_, err = repos.Notes.SetNoteTags(ctx, user.Id, id, "")
	assert.ErrorIs(t, err, core.ErrEmptyName)
}
