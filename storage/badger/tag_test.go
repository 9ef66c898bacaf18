package badger

import (
	"context"
	"testing"

	"github.com/poiesic/notekeep/core"
	"github.com/poiesic/notekeep/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRepository_GetOrCreate(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	user := newTestUser(t, repos, "alice")

	tag, err := repos.Tags.GetOrCreateTag(ctx, user.Id, "ideas", "#ff0000")
	require.NoError(t, err)
	assert.Equal(t, core.TagID(user.Id, "ideas"), tag.Id)
	assert.Equal(t, "#ff0000", tag.Color)

	again, err := repos.Tags.GetOrCreateTag(ctx, user.Id, "ideas", "#00ff00")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", again.Color, "existing tags are returned unchanged")

	got, err := repos.Tags.GetTag(ctx, user.Id, tag.Id)
	require.NoError(t, err)
	assert.Equal(t, "ideas", got.Name)
}

func TestTagRepository_PerUser(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	alice := newTestUser(t, repos, "alice")
	bob := newTestUser(t, repos, "bob")

	aliceTag, err := repos.Tags.GetOrCreateTag(ctx, alice.Id, "work", "")
	require.NoError(t, err)
	bobTag, err := repos.Tags.GetOrCreateTag(ctx, bob.Id, "work", "")
	require.NoError(t, err)
	assert.NotEqual(t, aliceTag.Id, bobTag.Id)

	_, err = repos.Tags.GetTag(ctx, bob.Id, aliceTag.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repos.Tags.FindTagByName(ctx, bob.Id, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	tags, err := repos.Tags.ListTags(ctx, alice.Id)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestTagRepository_Invalid(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	user := newTestUser(t, repos, "alice")

	_, err := repos.Tags.GetOrCreateTag(ctx, user.Id, "  ", "")
	assert.ErrorIs(t, err, core.ErrEmptyName)

	_, err = repos.Tags.GetOrCreateTag(ctx, user.Id, "x", "red")
	assert.ErrorIs(t, err, core.ErrInvalidColor)
}
