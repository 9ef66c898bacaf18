package tagging

import (
	"context"
	"fmt"
	"testing"

	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/storage/badger"
	"github.com/stretchr/testify/require"
)

func newTestRepos(t *testing.T) *badger.Repositories {
	t.Helper()
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		repos.Close()
	})
	return repos
}

func seedNotes(t *testing.T, repos *badger.Repositories, name string, contents ...string) (*core.User, []*core.Note) {
	t.Helper()
	ctx := context.Background()
	user, err := repos.Users.AddUser(ctx, &core.User{Username: name, PasswordHash: "hash"})
	require.NoError(t, err)

	notes := make([]*core.Note, len(contents))
	for i, content := range contents {
		notes[i] = &core.Note{
			UserId:  user.Id,
			Title:   fmt.Sprintf("note %d", i+1),
			Content: content,
			Tags:    []string{"old"},
		}
	}
	added, err := repos.Notes.AddNotes(ctx, notes...)
	require.NoError(t, err)
	return user, added
}

func noteIDs(notes []*core.Note) []core.ID {
	ids := make([]core.ID, len(notes))
	for i, n := range notes {
		ids[i] = n.Id
	}
	return ids
}
