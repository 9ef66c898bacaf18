package badger

import (
	"context"
	"testing"

	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addFolder(t *testing.T, repos *Repositories, userID, parentID core.ID, name string) *core.Folder {
	t.Helper()
	folder, err := repos.Folders.AddFolder(context.Background(), &core.Folder{UserId: userID, ParentId: parentID, Name: name})
	require.NoError(t, err)
	return folder
}

func TestFolderRepository_AddDefaults(t *testing.T) {
	repos := newTestRepos(t)
	user := newTestUser(t, repos, "alice")

	folder := addFolder(t, repos, user.Id, 0, "Work")
	assert.NotZero(t, folder.Id)
	assert.Equal(t, core.DefaultFolderColor, folder.Color)

	got, err := repos.Folders.GetFolder(context.Background(), user.Id, folder.Id)
	require.NoError(t, err)
	assert.Equal(t, "Work", got.Name)
}

func TestFolderRepository_ParentMustBeOwned(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	alice := newTestUser(t, repos, "alice")
	bob := newTestUser(t, repos, "bob")
	aliceRoot := addFolder(t, repos, alice.Id, 0, "Alice")

	_, err := repos.Folders.AddFolder(ctx, &core.Folder{UserId: bob.Id, ParentId: aliceRoot.Id, Name: "Sneaky"})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repos.Folders.AddFolder(ctx, &core.Folder{UserId: alice.Id, ParentId: 12345, Name: "Orphan"})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repos.Folders.GetFolder(ctx, bob.Id, aliceRoot.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFolderRepository_RejectsCycles(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	user := newTestUser(t, repos, "alice")

	a := addFolder(t, repos, user.Id, 0, "A")
	b := addFolder(t, repos, user.Id, a.Id, "B")
	c := addFolder(t, repos, user.Id, b.Id, "C")

	tests := []struct {
		name   string
		folder *core.Folder
	}{
		{"self parent", &core.Folder{Id: a.Id, UserId: user.Id, ParentId: a.Id, Name: "A"}},
		{"move under child", &core.Folder{Id: a.Id, UserId: user.Id, ParentId: b.Id, Name: "A"}},
		{"move under grandchild", &core.Folder{Id: a.Id, UserId: user.Id, ParentId: c.Id, Name: "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repos.Folders.UpdateFolder(ctx, tt.folder)
			assert.ErrorIs(t, err, storage.ErrFolderCycle)
		})
	}

	moved, err := repos.Folders.UpdateFolder(ctx, &core.Folder{Id: c.Id, UserId: user.Id, ParentId: 0, Name: "C2", Color: "#000000"})
	require.NoError(t, err)
	assert.Equal(t, "C2", moved.Name)
	assert.True(t, moved.InsertedAt.Equal(c.InsertedAt))
}

func TestFolderRepository_Tree(t *testing.T) {
	repos := newTestRepos(t)
	user := newTestUser(t, repos, "alice")
	other := newTestUser(t, repos, "bob")

	a := addFolder(t, repos, user.Id, 0, "A")
	b := addFolder(t, repos, user.Id, a.Id, "B")
	addFolder(t, repos, user.Id, b.Id, "C")
	addFolder(t, repos, user.Id, 0, "D")
	addFolder(t, repos, other.Id, 0, "Other")

	tree, err := repos.Folders.FolderTree(context.Background(), user.Id)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "A", tree[0].Folder.Name)
	assert.Equal(t, "D", tree[1].Folder.Name)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "B", tree[0].Children[0].Folder.Name)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "C", tree[0].Children[0].Children[0].Folder.Name)
}

func TestBuildFolderTree_Empty(t *testing.T) {
	tree := BuildFolderTree(nil)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestFolderRepository_Delete(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	user := newTestUser(t, repos, "alice")

	parent := addFolder(t, repos, user.Id, 0, "Parent")
	child := addFolder(t, repos, user.Id, parent.Id, "Child")

	added, err := repos.Notes.AddNotes(ctx, &core.Note{UserId: user.Id, Title: "filed", FolderId: child.Id})
	require.NoError(t, err)

	err = repos.Folders.DeleteFolder(ctx, user.Id, parent.Id)
	assert.ErrorIs(t, err, storage.ErrFolderHasChildren)

	require.NoError(t, repos.Folders.DeleteFolder(ctx, user.Id, child.Id))

	note, err := repos.Notes.GetNote(ctx, user.Id, added[0].Id)
	require.NoError(t, err)
	assert.Zero(t, note.FolderId)

	atRoot, err := repos.Notes.ListNotesInFolder(ctx, user.Id, 0)
	require.NoError(t, err)
	assert.Len(t, atRoot, 1)

	require.NoError(t, repos.Folders.DeleteFolder(ctx, user.Id, parent.Id))

	folders, err := repos.Folders.ListFolders(ctx, user.Id)
	require.NoError(t, err)
	assert.Empty(t, folders)
}
