package badger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		repos.Close()
	})
	return repos
}

func newTestUser(t *testing.T, repos *Repositories, name string) *core.User {
	t.Helper()
	user, err := repos.Users.AddUser(context.Background(), &core.User{Username: name, PasswordHash: "hash"})
	require.NoError(t, err)
	return user
}

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "nested", "db")
	backend, err := OpenBackend(tmpDir, false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	info, err := os.Stat(tmpDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenBackend_PathIsFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(tmpFile, []byte("x"), 0644))

	_, err := OpenBackend(tmpFile, false)
	assert.Error(t, err)
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())

	err = backend.WithTx(nil, false)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestMakeIndexKey_Ordering(t *testing.T) {
	low := makeNoteOwnerKey(1, 9)
	high := makeNoteOwnerKey(1, 10)
	otherUser := makeNoteOwnerKey(2, 1)

	assert.Negative(t, bytes.Compare(low, high), "big-endian IDs must sort numerically")
	assert.Negative(t, bytes.Compare(high, otherUser))
	assert.True(t, bytes.HasPrefix(low, makeIndexKey(noteOwnerPrefix, 1)))
	assert.False(t, bytes.HasPrefix(otherUser, makeIndexKey(noteOwnerPrefix, 1)))
}

func TestMakeKeys_Distinct(t *testing.T) {
	assert.Equal(t, []byte("note:5"), makeNoteKey(5))
	assert.Equal(t, []byte("retag:chkpt"), makeCheckpointKey("retag"))
	assert.NotEqual(t, makeNoteKey(5), makeFolderKey(5))
	assert.True(t, bytes.HasPrefix(makeTagOwnerKey(3, "go"), makeIndexKey(tagOwnerPrefix, 3)))
}

func TestNewMemoryRepositories(t *testing.T) {
	repos, err := NewMemoryRepositories()
	require.NoError(t, err)

	assert.NotNil(t, repos.Users)
	assert.NotNil(t, repos.Notes)
	assert.NotNil(t, repos.Folders)
	assert.NotNil(t, repos.Tags)
	assert.NotNil(t, repos.Checkpoints)

	require.NoError(t, repos.Close())
	assert.True(t, repos.Backend.IsClosed())
}
